package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain/entity"
)

// accessService is the minimal contract this middleware needs; *access.UseCase
// implements it. The interface here avoids a hard handler/use-case coupling.
type accessService interface {
	GetAccount(ctx context.Context, id string) (*entity.Account, error)
	CheckAccess(acc *entity.Account) access.Decision
}

// RequireSubscription gates the calculator tools. It loads the account fresh
// on every request (admin edits and lazy expiry must take effect immediately)
// and maps the access decision to an HTTP outcome. Must run after
// AuthMiddleware. The loaded account is stored in locals for the handler.
func RequireSubscription(svc accessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id not found in token"})
		}

		acc, err := svc.GetAccount(c.Context(), userID)
		if err != nil {
			// The decision for an unknown account is not_authenticated; an
			// infrastructure failure must not silently grant access either.
			acc = nil
		}

		decision := svc.CheckAccess(acc)
		if !decision.Allowed {
			status := fiber.StatusForbidden
			code := "DISABLED"
			switch decision.Reason {
			case access.ReasonNotAuthenticated:
				status = fiber.StatusUnauthorized
				code = "UNAUTHORIZED"
			case access.ReasonPendingReview:
				code = "PENDING_REVIEW"
			case access.ReasonRejected:
				code = "REJECTED"
			}
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "subscription does not allow access to this tool"})
		}

		c.Locals(LocalAccount, acc)
		return c.Next()
	}
}

// GetAccount returns the account loaded by RequireSubscription, or nil.
func GetAccount(c *fiber.Ctx) *entity.Account {
	v := c.Locals(LocalAccount)
	if v == nil {
		return nil
	}
	acc, _ := v.(*entity.Account)
	return acc
}
