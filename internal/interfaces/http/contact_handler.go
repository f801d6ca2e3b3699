package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ecotreat/portal-api/internal/application/contact"
	"github.com/ecotreat/portal-api/internal/application/dto"
)

// ContactHandler receives public contact-form submissions.
type ContactHandler struct {
	uc       *contact.UseCase
	validate *validator.Validate
}

// NewContactHandler builds the contact handler.
func NewContactHandler(uc *contact.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc, validate: validator.New()}
}

// Submit godoc
// @Summary      Submit a contact inquiry
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "inquiry"
// @Success      202
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	if err := h.uc.Submit(c.Context(), in); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DELIVERY_FAILED", Message: "could not deliver the inquiry, please try again later"})
	}
	return c.SendStatus(fiber.StatusAccepted)
}
