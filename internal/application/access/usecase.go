package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	"github.com/ecotreat/portal-api/internal/domain/repository"
	"github.com/ecotreat/portal-api/pkg/jwt"
	"github.com/ecotreat/portal-api/pkg/logger"
)

// JWTConfig token-generation settings for sessions and approval access tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SubscriptionConfig lifecycle settings.
type SubscriptionConfig struct {
	WarningDays int // expiry-warning window in days
	PlanMonths  int // default plan term applied on approve
}

// UseCase owns the account lifecycle and authorization decisions: who may
// reach the calculator tools, the admin dashboard and the client profile.
type UseCase struct {
	repo     repository.AccountRepository
	notifier Notifier
	jwtCfg   JWTConfig
	subCfg   SubscriptionConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase builds the access use case.
func NewUseCase(repo repository.AccountRepository, notifier Notifier, jwtCfg JWTConfig, subCfg SubscriptionConfig, log *logger.Logger) *UseCase {
	if subCfg.WarningDays <= 0 {
		subCfg.WarningDays = 5
	}
	if subCfg.PlanMonths <= 0 {
		subCfg.PlanMonths = 12
	}
	return &UseCase{
		repo:     repo,
		notifier: notifier,
		jwtCfg:   jwtCfg,
		subCfg:   subCfg,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the time source; used by tests and the maintenance loop.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Register creates a pending client account. Every profile field is required;
// a missing field rejects the whole registration and nothing is persisted. No
// notification is sent: the account waits for admin review.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.Account, error) {
	if missing := missingFields(in); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := uc.now()
	acc := &entity.Account{
		ID:                 uuid.New().String(),
		Email:              in.Email,
		PasswordHash:       string(hash),
		Name:               in.Username,
		Company:            in.CompanyName,
		Industry:           in.IndustryType,
		Phone:              in.MobileNumber,
		Role:               entity.RoleClient,
		SubscriptionStatus: entity.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	uc.log.Info().Str("account_id", acc.ID).Str("company", acc.Company).Msg("account registered, pending review")
	return acc, nil
}

// Login checks credentials and issues a session token. Subscription status is
// deliberately not checked here: a pending or disabled account may still log
// in and is redirected by the access decision on gated routes.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, *entity.Account, error) {
	acc, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login: lookup email: %w", err)
	}
	if acc == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, acc.ID, acc.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}
	return token, acc, nil
}

// GetAccount loads an account by id for the profile/access endpoints.
func (uc *UseCase) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	acc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// Approve activates an account for planMonths (zero means the configured
// default). Re-approval is permitted and replaces the previous term. The
// verification mail carries an access token and the computed expiry date; a
// send failure is logged and never rolls the activation back.
func (uc *UseCase) Approve(ctx context.Context, accountID, actingRole string, planMonths int) error {
	acc, err := uc.requireAdmin(ctx, accountID, actingRole)
	if err != nil {
		return err
	}
	if planMonths <= 0 {
		planMonths = uc.subCfg.PlanMonths
	}

	now := uc.now()
	end := now.AddDate(0, planMonths, 0)
	acc.SubscriptionStatus = entity.StatusActive
	acc.SubscriptionEnd = &end
	acc.UpdatedAt = now
	if err := uc.repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("approve: update account: %w", err)
	}
	uc.log.Info().Str("account_id", acc.ID).Time("subscription_end", end).Msg("account approved")

	token, err := jwt.Generate(uc.jwtCfg.Secret, acc.ID, acc.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("verification token not generated")
		return nil
	}
	params := map[string]string{
		"name":    acc.Name,
		"email":   acc.Email,
		"token":   token,
		"expires": end.Format("02 Jan 2006"),
	}
	if err := uc.notifier.Send(ctx, KindVerification, acc.Email, params); err != nil {
		uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("verification notification failed")
	}
	return nil
}

// Reject marks a pending account as rejected and notifies the applicant.
func (uc *UseCase) Reject(ctx context.Context, accountID, actingRole string) error {
	acc, err := uc.requireAdmin(ctx, accountID, actingRole)
	if err != nil {
		return err
	}
	acc.SubscriptionStatus = entity.StatusRejected
	acc.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("reject: update account: %w", err)
	}
	uc.log.Info().Str("account_id", acc.ID).Msg("account rejected")

	params := map[string]string{"name": acc.Name, "email": acc.Email}
	if err := uc.notifier.Send(ctx, KindRejection, acc.Email, params); err != nil {
		uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("rejection notification failed")
	}
	return nil
}

// Disable turns off an account's access. No notification is sent.
func (uc *UseCase) Disable(ctx context.Context, accountID, actingRole string) error {
	acc, err := uc.requireAdmin(ctx, accountID, actingRole)
	if err != nil {
		return err
	}
	acc.SubscriptionStatus = entity.StatusDisabled
	acc.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("disable: update account: %w", err)
	}
	uc.log.Info().Str("account_id", acc.ID).Msg("account disabled")
	return nil
}

// CheckAccess decides whether the account may reach the gated tools. Rules,
// in order: no account, admin bypass, active (and not past its end date),
// pending, rejected, otherwise disabled. Expiry is detected here lazily; the
// stored status is never mutated by a read.
func (uc *UseCase) CheckAccess(acc *entity.Account) Decision {
	switch {
	case acc == nil:
		return decisionNotAuthenticated
	case acc.IsAdmin():
		return decisionOK
	case acc.SubscriptionStatus == entity.StatusActive && !acc.SubscriptionExpired(uc.now()):
		return decisionOK
	case acc.SubscriptionStatus == entity.StatusPending:
		return decisionPending
	case acc.SubscriptionStatus == entity.StatusRejected:
		return decisionRejected
	default:
		return decisionDisabled
	}
}

// RunExpiryMaintenance sends an expiry warning to every active account whose
// subscription end falls within the warning window starting at now. Status is
// not mutated; expiry itself is caught lazily by CheckAccess. There is no
// cross-invocation dedup, so overlapping runs inside the same window may
// repeat a warning.
func (uc *UseCase) RunExpiryMaintenance(ctx context.Context, now time.Time) (int, error) {
	to := now.AddDate(0, 0, uc.subCfg.WarningDays)
	accounts, err := uc.repo.ListExpiringBetween(ctx, now, to)
	if err != nil {
		return 0, fmt.Errorf("expiry maintenance: list accounts: %w", err)
	}

	notified := 0
	for _, acc := range accounts {
		if acc.SubscriptionEnd == nil {
			continue
		}
		daysLeft := int(acc.SubscriptionEnd.Sub(now).Hours() / 24)
		params := map[string]string{
			"name":      acc.Name,
			"email":     acc.Email,
			"days_left": fmt.Sprintf("%d", daysLeft),
			"expires":   acc.SubscriptionEnd.Format("02 Jan 2006"),
		}
		if err := uc.notifier.Send(ctx, KindExpiryWarning, acc.Email, params); err != nil {
			uc.log.Warn().Err(err).Str("account_id", acc.ID).Msg("expiry warning failed")
			continue
		}
		notified++
	}
	if notified > 0 {
		uc.log.Info().Int("notified", notified).Msg("expiry warnings sent")
	}
	return notified, nil
}

// ListAccounts returns accounts for the admin screen.
func (uc *UseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	return uc.repo.List(ctx, limit, offset)
}

// requireAdmin loads the target account after verifying the acting role.
func (uc *UseCase) requireAdmin(ctx context.Context, accountID, actingRole string) (*entity.Account, error) {
	if actingRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

func missingFields(in dto.RegisterRequest) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"companyName", in.CompanyName},
		{"industryType", in.IndustryType},
		{"mobileNumber", in.MobileNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
