package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/wirebiz/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Formatos de fecha aceptados en requests.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// ParseDate interpreta "2006-01-02" (medianoche en loc) o RFC3339.
// Vacío devuelve el tiempo cero sin error.
func ParseDate(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateTimeLayout, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, domain.Invalid(field, "fecha inválida, use AAAA-MM-DD o RFC3339")
}

// FormatDateTime formatea t en loc (RFC3339).
func FormatDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DateTimeLayout)
}

// FormatDate formatea solo la fecha de t en loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}
