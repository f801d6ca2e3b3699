package repository

import (
	"context"
	"time"

	"github.com/ecotreat/portal-api/internal/domain/entity"
)

// AccountRepository is the persistence port for accounts. Implementations
// return (nil, nil) when a lookup finds nothing so callers can distinguish
// absence from infrastructure failure.
type AccountRepository interface {
	Create(ctx context.Context, acc *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Update writes the whole row; concurrent admin edits are last-write-wins.
	Update(ctx context.Context, acc *entity.Account) error
	List(ctx context.Context, limit, offset int) ([]*entity.Account, error)
	// CountByStatus returns subscription-status counts for the admin dashboard.
	CountByStatus(ctx context.Context) (map[string]int, error)
	// ListExpiringBetween returns active accounts whose subscription end falls
	// within [from, to], used by the expiry-warning maintenance run.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Account, error)
}
