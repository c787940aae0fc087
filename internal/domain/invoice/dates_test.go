package invoice

import (
	"errors"
	"testing"
	"time"
)

func TestResolveAttentionDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"minute precision", "2024-03-15 10:30", "2024-03-15", nil},
		{"second precision", "2024-03-15 10:30:45", "2024-03-15", nil},
		{"iso timestamp", "2024-03-15T10:30:45", "2024-03-15", nil},
		{"date only prefix", "2024-03-15", "2024-03-15", nil},
		{"prefix with trailing junk", "2024-03-15 mediodía", "2024-03-15", nil},
		{"empty", "", "", ErrEmptyDate},
		{"blank", "   ", "", ErrEmptyDate},
		{"garbage", "15/03/2024", "", ErrInvalidDateFormat},
		{"short garbage", "ayer", "", ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAttentionDate(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestParseBirthDate(t *testing.T) {
	got, err := ParseBirthDate("1990-05-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 1990 || got.Month() != time.May || got.Day() != 10 {
		t.Errorf("unexpected date: %v", got)
	}

	if _, err := ParseBirthDate("10/05/1990"); !errors.Is(err, ErrInvalidBirthDate) {
		t.Errorf("expected ErrInvalidBirthDate, got %v", err)
	}
	if _, err := ParseBirthDate(""); !errors.Is(err, ErrInvalidBirthDate) {
		t.Errorf("expected ErrInvalidBirthDate for empty input, got %v", err)
	}
}

func TestAgeAt_Years(t *testing.T) {
	tests := []struct {
		name      string
		birth     string
		attention string
		want      int
	}{
		{"birthday passed", "1990-05-10", "2024-06-01", 34},
		{"birthday not reached", "1990-05-10", "2024-04-01", 33},
		{"birthday same day", "1990-05-10", "2024-05-10", 34},
		{"day before birthday", "1990-05-10", "2024-05-09", 33},
		{"newborn", "2024-03-01", "2024-03-15", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birth, _ := time.Parse("2006-01-02", tt.birth)
			attention, _ := time.Parse("2006-01-02", tt.attention)
			years, _ := AgeAt(birth, attention)
			if years != tt.want {
				t.Errorf("expected %d years, got %d", tt.want, years)
			}
		})
	}
}

func TestAgeAt_Days(t *testing.T) {
	tests := []struct {
		name      string
		birth     string
		attention string
		want      int
	}{
		{"thirty days", "2024-01-01", "2024-01-31", 30},
		{"thirty one days", "2024-01-01", "2024-02-01", 31},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"across leap day", "2024-02-28", "2024-03-01", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birth, _ := time.Parse("2006-01-02", tt.birth)
			attention, _ := time.Parse("2006-01-02", tt.attention)
			_, days := AgeAt(birth, attention)
			if days != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, days)
			}
		})
	}
}

func TestDateKeyOf(t *testing.T) {
	if got := dateKeyOf("2024-03-15 10:30"); got != "2024-03-15" {
		t.Errorf("expected 2024-03-15, got %s", got)
	}
	if got := dateKeyOf("corto"); got != "corto" {
		t.Errorf("expected raw value for short input, got %s", got)
	}
}
