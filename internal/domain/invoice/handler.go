package invoice

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sisalud/ripsval/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/factura/validar", h.ValidateFull)
	api.POST("/factura/validar_pyp", h.ValidateFull)
	api.POST("/factura/validar_morb", h.ValidateMorbidity)
	api.GET("/factura/errores/:numFactura", h.GetReport)
	api.GET("/factura/reportes", h.ListReports)
}

// ValidateFull handles POST /api/factura/validar and /validar_pyp.
func (h *Handler) ValidateFull(c echo.Context) error {
	return h.validate(c, ProfileFull)
}

// ValidateMorbidity handles POST /api/factura/validar_morb.
func (h *Handler) ValidateMorbidity(c echo.Context) error {
	return h.validate(c, ProfileMorbidity)
}

func (h *Handler) validate(c echo.Context, profile Profile) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rep := h.svc.Validate(c.Request().Context(), &inv, profile)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", rep.FileName()))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(rep.Render()))
}

// GetReport handles GET /api/factura/errores/:numFactura and returns the
// most recently computed report for that invoice number.
func (h *Handler) GetReport(c echo.Context) error {
	numFactura := c.Param("numFactura")
	text, err := h.svc.ReportFor(c.Request().Context(), numFactura)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound,
				"No se encontraron errores para esta factura")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(text))
}

// ListReports handles GET /api/factura/reportes over the archive.
func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	reports, total, err := h.svc.ListReports(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(reports, total, pg.Limit, pg.Offset))
}
