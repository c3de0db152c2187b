package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wirebiz/internal/application/analytics"
	"github.com/jhoicas/wirebiz/internal/application/dto"
	"github.com/jhoicas/wirebiz/internal/domain"
)

// SummaryHandler expone los resúmenes mensual y diario.
type SummaryHandler struct {
	uc  *analytics.SummaryUseCase
	loc *time.Location
}

// NewSummaryHandler construye el handler. loc es la zona para interpretar ?date=.
func NewSummaryHandler(uc *analytics.SummaryUseCase, loc *time.Location) *SummaryHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryHandler{uc: uc, loc: loc}
}

// Monthly GET /api/summary/monthly?year=2024&month=3
// Sin year/month = mes en curso.
func (h *SummaryHandler) Monthly(c *fiber.Ctx) error {
	if c.Query("year") == "" && c.Query("month") == "" {
		summary, err := h.uc.CurrentMonthlySummary(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(summary)
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return writeError(c, domain.Invalid("year", "debe ser numérico"))
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return writeError(c, domain.Invalid("month", "debe ser numérico"))
	}
	summary, err := h.uc.MonthlySummary(c.Context(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Daily GET /api/summary/daily?date=2024-03-15
// Sin date = hoy.
func (h *SummaryHandler) Daily(c *fiber.Ctx) error {
	date, err := dto.ParseDate("date", c.Query("date"), h.loc)
	if err != nil {
		return writeError(c, err)
	}
	var summary *dto.DailySummaryDTO
	if date.IsZero() {
		summary, err = h.uc.TodaySummary(c.Context())
	} else {
		summary, err = h.uc.DailySummary(c.Context(), date)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
