package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/wirebiz/internal/domain"
)

// Códigos de salida.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // entrada inválida, duplicado, no encontrado
	ExitCommandError = 2 // almacén no disponible, conflicto de migración, flags
)

// ExitCode código de salida para err.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrNotFound):
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// OutputFormatter escribe resultados en JSON o texto tabulado.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse sobre de la salida JSON.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" | "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError detalle de error en la salida JSON.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Success escribe data. En texto delega en text, que recibe un tabwriter.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

// Error escribe err con el código que corresponde a su tipo.
func (f *OutputFormatter) Error(err error) error {
	e := toCLIError(err)
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: e})
	}
	_, werr := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message)
	return werr
}

func toCLIError(err error) *CLIError {
	var (
		ve *domain.ValidationError
		uv *domain.UniquenessViolation
	)
	switch {
	case errors.As(err, &ve):
		return &CLIError{Code: "VALIDATION", Message: ve.Error(), Field: ve.Field}
	case errors.As(err, &uv):
		return &CLIError{Code: "DUPLICATE", Message: uv.Error(), Field: uv.Index}
	case errors.Is(err, domain.ErrNotFound):
		return &CLIError{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrSchemaUnavailable), errors.Is(err, domain.ErrMigrationConflict):
		return &CLIError{Code: "STORE_UNAVAILABLE", Message: err.Error()}
	default:
		return &CLIError{Code: "INTERNAL", Message: err.Error()}
	}
}
