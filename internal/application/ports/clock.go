package ports

import "time"

// Clock puerto de salida para la hora actual (sellos createdAt, "hoy", "mes actual").
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema.
type SystemClock struct{}

// Now hora actual.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapta una función a Clock (útil en tests).
type ClockFunc func() time.Time

// Now invoca f.
func (f ClockFunc) Now() time.Time { return f() }
