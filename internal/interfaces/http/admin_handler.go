package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/dashboard"
	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain"
)

// AdminHandler exposes the review queue and dashboard. All routes are behind
// RequireRole(admin); the acting role is still passed down so the use case
// enforces authorization on its own.
type AdminHandler struct {
	accessUC    *access.UseCase
	dashboardUC *dashboard.UseCase
	validate    *validator.Validate
}

// NewAdminHandler builds the admin handler.
func NewAdminHandler(accessUC *access.UseCase, dashboardUC *dashboard.UseCase) *AdminHandler {
	return &AdminHandler{accessUC: accessUC, dashboardUC: dashboardUC, validate: validator.New()}
}

// ListAccounts godoc
// @Summary      List accounts (newest first)
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "page size"
// @Param        offset  query  int  false  "page offset"
// @Success      200  {object}  dto.AccountListResponse
// @Router       /api/admin/accounts [get]
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "malformed pagination"})
	}
	page.DefaultPage()

	accounts, err := h.accessUC.ListAccounts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.AccountListResponse{Limit: page.Limit, Offset: page.Offset, Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for _, acc := range accounts {
		out.Accounts = append(out.Accounts, dto.ToAccountResponse(acc))
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Usage statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardUC.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}

// Approve godoc
// @Summary      Approve an account and start its subscription term
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "account id"
// @Param        body  body  dto.ApproveRequest  false  "plan term"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/accounts/{id}/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
		}
		if err := h.validate.Struct(in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
		}
	}
	return h.lifecycle(c, func() error {
		return h.accessUC.Approve(c.Context(), c.Params("id"), GetRole(c), in.PlanMonths)
	})
}

// Reject godoc
// @Summary      Reject a pending account
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "account id"
// @Success      204
// @Router       /api/admin/accounts/{id}/reject [post]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	return h.lifecycle(c, func() error {
		return h.accessUC.Reject(c.Context(), c.Params("id"), GetRole(c))
	})
}

// Disable godoc
// @Summary      Disable an account
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "account id"
// @Success      204
// @Router       /api/admin/accounts/{id}/disable [post]
func (h *AdminHandler) Disable(c *fiber.Ctx) error {
	return h.lifecycle(c, func() error {
		return h.accessUC.Disable(c.Context(), c.Params("id"), GetRole(c))
	})
}

// lifecycle maps the shared error surface of the admin transitions.
func (h *AdminHandler) lifecycle(c *fiber.Ctx, op func() error) error {
	if err := op(); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "admin role required"})
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ACCOUNT_NOT_FOUND", Message: "account does not exist"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
