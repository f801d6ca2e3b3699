package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/application/report"
	"github.com/ecotreat/portal-api/internal/domain"
)

// ReportHandler exports calculator results as downloadable PDF reports.
type ReportHandler struct {
	exportUC *report.ExportUseCase
}

// NewReportHandler builds the report handler.
func NewReportHandler(exportUC *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{exportUC: exportUC}
}

// Export godoc
// @Summary      Export a calculator result as a PDF report
// @Tags         reports
// @Accept       json
// @Produce      application/pdf
// @Param        kind  path  string  true  "report kind (biogas, nutrient-dosing)"
// @Param        body  body  object  true  "calculator parameters with optional nested results"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind := c.Params("kind")

	var res report.CalculatorResult
	if err := c.BodyParser(&res); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	data, filename, err := h.exportUC.Export(c.Context(), kind, res)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReportKind):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_KIND", Message: "no report template for this kind"})
		default:
			// Build/render failures: report the cause and point at the manual
			// fallback; the same input will not succeed on a retry.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "EXPORT_FAILED",
				Message: err.Error() + " — please contact support",
			})
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
