package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	"github.com/ecotreat/portal-api/internal/domain/repository"
)

// UseCase aggregates account usage statistics for the admin dashboard.
type UseCase struct {
	repo        repository.AccountRepository
	warningDays int
	now         func() time.Time
}

// NewUseCase builds the dashboard use case.
func NewUseCase(repo repository.AccountRepository, warningDays int) *UseCase {
	if warningDays <= 0 {
		warningDays = 5
	}
	return &UseCase{repo: repo, warningDays: warningDays, now: time.Now}
}

// Stats returns subscription-status counts plus the number of active
// subscriptions inside the warning window.
func (uc *UseCase) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count by status: %w", err)
	}

	now := uc.now()
	expiring, err := uc.repo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, uc.warningDays))
	if err != nil {
		return nil, fmt.Errorf("dashboard: list expiring: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return &dto.DashboardResponse{
		TotalAccounts: total,
		Pending:       counts[entity.StatusPending],
		Active:        counts[entity.StatusActive],
		Disabled:      counts[entity.StatusDisabled],
		Rejected:      counts[entity.StatusRejected],
		ExpiringSoon:  len(expiring),
	}, nil
}
