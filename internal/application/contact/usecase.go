package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	"github.com/ecotreat/portal-api/pkg/logger"
)

// notifier is the minimal contract this use case needs; *access.Notifier
// implementations satisfy it.
type notifier interface {
	Send(ctx context.Context, kind, recipient string, params map[string]string) error
}

// UseCase forwards public contact-form inquiries to the sales inbox. The
// inquiry is not persisted; delivery failure is the only failure mode.
type UseCase struct {
	notifier notifier
	inbox    string
	log      *logger.Logger
}

// NewUseCase builds the contact use case. inbox is the address receiving the
// inquiries.
func NewUseCase(n notifier, inbox string, log *logger.Logger) *UseCase {
	return &UseCase{notifier: n, inbox: inbox, log: log}
}

// Submit forwards one inquiry. Unlike the lifecycle notifications, a send
// failure here is returned to the caller: delivering the message is the whole
// operation.
func (uc *UseCase) Submit(ctx context.Context, in dto.ContactRequest) error {
	inq := entity.ContactInquiry{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	params := map[string]string{
		"name":    inq.Name,
		"email":   inq.Email,
		"company": inq.Company,
		"message": inq.Message,
	}
	if err := uc.notifier.Send(ctx, access.KindContactInquiry, uc.inbox, params); err != nil {
		return fmt.Errorf("contact inquiry: %w", err)
	}
	uc.log.Info().Str("inquiry_id", inq.ID).Str("company", inq.Company).Msg("contact inquiry forwarded")
	return nil
}
