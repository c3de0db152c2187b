package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrSchemaUnavailable = errors.New("almacenamiento persistente no disponible")
	ErrMigrationConflict = errors.New("conflicto al migrar el esquema")
	ErrTransactionFailed = errors.New("transacción fallida")
	ErrOutOfScope        = errors.New("colección fuera del alcance de la transacción")
)

// ValidationError indica un campo requerido ausente o con valor no permitido.
// Field usa el nombre JSON del campo (ej. "name", "items[0].product_id").
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("campo %q requerido", e.Field)
	}
	return fmt.Sprintf("campo %q: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Required construye un ValidationError de campo requerido.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// Invalid construye un ValidationError con motivo.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UniquenessViolation indica que un índice único rechazó la inserción.
// Index es el nombre lógico del índice (ej. "phone"), no el nombre SQL.
type UniquenessViolation struct {
	Collection string
	Index      string
	Value      string
}

func (e *UniquenessViolation) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: valor duplicado en índice único %q", e.Collection, e.Index)
	}
	return fmt.Sprintf("%s: valor duplicado %q en índice único %q", e.Collection, e.Value, e.Index)
}

// Is permite errors.Is(err, ErrDuplicate).
func (e *UniquenessViolation) Is(target error) bool { return target == ErrDuplicate }

// MigrationConflict indica que la migración del esquema no puede completarse sin
// violar una restricción (o que la versión almacenada es más nueva que la esperada).
type MigrationConflict struct {
	Index  string
	Reason string
}

func (e *MigrationConflict) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("%s: %s", ErrMigrationConflict, e.Reason)
	}
	return fmt.Sprintf("%s: índice %q: %s", ErrMigrationConflict, e.Index, e.Reason)
}

// Is permite errors.Is(err, ErrMigrationConflict).
func (e *MigrationConflict) Is(target error) bool { return target == ErrMigrationConflict }
