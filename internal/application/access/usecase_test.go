package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/dto"
	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	pkgjwt "github.com/ecotreat/portal-api/pkg/jwt"
	"github.com/ecotreat/portal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	accounts map[string]*entity.Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeRepo) Create(_ context.Context, acc *entity.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == acc.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *acc
	r.accounts[acc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *acc
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, acc := range r.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, acc *entity.Account) error {
	// Whole-row write, like the real adapter: nothing is merged.
	cp := *acc
	r.accounts[acc.ID] = &cp
	return nil
}

func (r *fakeRepo) List(_ context.Context, limit, offset int) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, acc := range r.accounts {
		cp := *acc
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, acc := range r.accounts {
		counts[acc.SubscriptionStatus]++
	}
	return counts, nil
}

func (r *fakeRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, acc := range r.accounts {
		if acc.SubscriptionStatus != entity.StatusActive || acc.SubscriptionEnd == nil {
			continue
		}
		end := *acc.SubscriptionEnd
		if !end.Before(from) && !end.After(to) {
			cp := *acc
			out = append(out, &cp)
		}
	}
	return out, nil
}

type sentNote struct {
	kind      string
	recipient string
	params    map[string]string
}

type fakeNotifier struct {
	sends []sentNote
	err   error
}

func (n *fakeNotifier) Send(_ context.Context, kind, recipient string, params map[string]string) error {
	if n.err != nil {
		return n.err
	}
	n.sends = append(n.sends, sentNote{kind: kind, recipient: recipient, params: params})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*access.UseCase, *fakeRepo, *fakeNotifier) {
	t.Helper()
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := access.NewUseCase(repo, notifier,
		access.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "portal-test"},
		access.SubscriptionConfig{WarningDays: 5, PlanMonths: 12},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	).WithClock(func() time.Time { return fixedNow })
	return uc, repo, notifier
}

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:     "jdoe",
		Email:        "jdoe@x.com",
		Password:     "secret1",
		CompanyName:  "Acme",
		IndustryType: "Chemical",
		MobileNumber: "+911234567890",
	}
}

func seedAccount(t *testing.T, repo *fakeRepo, id, email, role, status string, end *time.Time) *entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	acc := &entity.Account{
		ID:                 id,
		Email:              email,
		PasswordHash:       string(hash),
		Name:               "Seeded User",
		Company:            "Acme",
		Industry:           "Chemical",
		Phone:              "+911234567890",
		Role:               role,
		SubscriptionStatus: status,
		SubscriptionEnd:    end,
		CreatedAt:          fixedNow.Add(-48 * time.Hour),
		UpdatedAt:          fixedNow.Add(-48 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), acc))
	return acc
}

func timePtr(ts time.Time) *time.Time { return &ts }

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreatesPendingClientAccount(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)

	acc, err := uc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, acc.SubscriptionStatus)
	assert.Equal(t, entity.RoleClient, acc.Role)
	assert.Equal(t, "jdoe", acc.Name)
	assert.Equal(t, "Acme", acc.Company)
	assert.Nil(t, acc.SubscriptionEnd)

	// Password is stored hashed, never in clear.
	assert.NotEqual(t, "secret1", acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("secret1")))

	// Registration never notifies; the account waits for admin review.
	assert.Empty(t, notifier.sends)
	assert.Len(t, repo.accounts, 1)
}

func TestRegister_MissingFieldRejectsWholeRegistration(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)

	in := validRegistration()
	in.CompanyName = "  "
	_, err := uc.Register(context.Background(), in)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "companyName")
	assert.Empty(t, repo.accounts, "no partial account must be created")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)

	_, err := uc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), validRegistration())
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, repo.accounts, 1, "exactly one account must exist")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	token, acc, err := uc.Login(context.Background(), "client@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", acc.ID)

	userID, role, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", userID)
	assert.Equal(t, entity.RoleClient, role)
}

func TestLogin_PendingAccountMayStillLogIn(t *testing.T) {
	// Status gating happens at CheckAccess, not at login.
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	_, _, err := uc.Login(context.Background(), "client@x.com", "secret1")
	assert.NoError(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusActive, nil)

	_, _, err := uc.Login(context.Background(), "client@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAccess_Rules(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	future := timePtr(fixedNow.Add(30 * 24 * time.Hour))
	past := timePtr(fixedNow.Add(-24 * time.Hour))

	cases := []struct {
		name    string
		acc     *entity.Account
		allowed bool
		reason  string
	}{
		{"no account", nil, false, access.ReasonNotAuthenticated},
		{"admin always ok", &entity.Account{Role: entity.RoleAdmin, SubscriptionStatus: entity.StatusDisabled}, true, access.ReasonOK},
		{"admin ok even rejected", &entity.Account{Role: entity.RoleAdmin, SubscriptionStatus: entity.StatusRejected}, true, access.ReasonOK},
		{"active without end date", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusActive}, true, access.ReasonOK},
		{"active with future end", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusActive, SubscriptionEnd: future}, true, access.ReasonOK},
		{"active but expired", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusActive, SubscriptionEnd: past}, false, access.ReasonDisabled},
		{"pending", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusPending}, false, access.ReasonPendingReview},
		{"rejected", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusRejected}, false, access.ReasonRejected},
		{"disabled", &entity.Account{Role: entity.RoleClient, SubscriptionStatus: entity.StatusDisabled}, false, access.ReasonDisabled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := uc.CheckAccess(tc.acc)
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestCheckAccess_NeverMutatesAccount(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	acc := &entity.Account{
		Role:               entity.RoleClient,
		SubscriptionStatus: entity.StatusActive,
		SubscriptionEnd:    timePtr(fixedNow.Add(-time.Hour)),
	}
	before := *acc

	d := uc.CheckAccess(acc)
	assert.False(t, d.Allowed)
	assert.Equal(t, before, *acc, "lazy expiry must not write the status back")
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin transitions
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_ActivatesAndNotifies(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 12))

	acc, err := repo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, acc.SubscriptionStatus)
	require.NotNil(t, acc.SubscriptionEnd)
	assert.Equal(t, fixedNow.AddDate(0, 12, 0), *acc.SubscriptionEnd)

	// Approve followed by CheckAccess yields ok for a non-admin account.
	assert.Equal(t, access.ReasonOK, uc.CheckAccess(acc).Reason)

	require.Len(t, notifier.sends, 1)
	note := notifier.sends[0]
	assert.Equal(t, access.KindVerification, note.kind)
	assert.Equal(t, "client@x.com", note.recipient)
	assert.NotEmpty(t, note.params["token"])
	assert.NotEmpty(t, note.params["expires"])
}

func TestApprove_DeterministicForFixedClock(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 6))
	first, _ := repo.GetByID(context.Background(), "acc-1")

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 6))
	second, _ := repo.GetByID(context.Background(), "acc-1")

	assert.Equal(t, *first.SubscriptionEnd, *second.SubscriptionEnd,
		"same plan term and same now must compute the same end date")
}

func TestApprove_ZeroTermUsesConfiguredDefault(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 0))

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	require.NotNil(t, acc.SubscriptionEnd)
	assert.Equal(t, fixedNow.AddDate(0, 12, 0), *acc.SubscriptionEnd)
}

func TestApprove_ReapprovalReplacesTerm(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusRejected, nil)

	// A fresh approve is the only way back from rejected/disabled.
	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 3))
	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, entity.StatusActive, acc.SubscriptionStatus)
	assert.Equal(t, fixedNow.AddDate(0, 3, 0), *acc.SubscriptionEnd)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	err := uc.Approve(context.Background(), "acc-1", entity.RoleClient, 12)
	require.ErrorIs(t, err, domain.ErrForbidden)

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, entity.StatusPending, acc.SubscriptionStatus, "authorization failure must not mutate state")
	assert.Empty(t, notifier.sends)
}

func TestApprove_UnknownAccount(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	err := uc.Approve(context.Background(), "missing", entity.RoleAdmin, 12)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestApprove_NotifierFailureDoesNotRollBack(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)
	notifier.err = errors.New("smtp unreachable")
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 12),
		"account-state mutation is authoritative, notification delivery is not")

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, entity.StatusActive, acc.SubscriptionStatus)
}

func TestReject_ThenCheckAccess(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Reject(context.Background(), "acc-1", entity.RoleAdmin))

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, entity.StatusRejected, acc.SubscriptionStatus)
	assert.Equal(t, access.ReasonRejected, uc.CheckAccess(acc).Reason)

	require.Len(t, notifier.sends, 1)
	assert.Equal(t, access.KindRejection, notifier.sends[0].kind)
}

func TestDisable_ThenCheckAccess(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusActive,
		timePtr(fixedNow.AddDate(0, 6, 0)))

	require.NoError(t, uc.Disable(context.Background(), "acc-1", entity.RoleAdmin))

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, entity.StatusDisabled, acc.SubscriptionStatus)
	assert.Equal(t, access.ReasonDisabled, uc.CheckAccess(acc).Reason)
	assert.Empty(t, notifier.sends, "disable sends no notification")
}

func TestAdminTransitionsPreserveProfileFields(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "acc-1", "client@x.com", entity.RoleClient, entity.StatusPending, nil)

	require.NoError(t, uc.Approve(context.Background(), "acc-1", entity.RoleAdmin, 12))
	require.NoError(t, uc.Disable(context.Background(), "acc-1", entity.RoleAdmin))

	acc, _ := repo.GetByID(context.Background(), "acc-1")
	assert.Equal(t, "client@x.com", acc.Email)
	assert.Equal(t, "Seeded User", acc.Name)
	assert.Equal(t, "Acme", acc.Company)
	assert.Equal(t, "Chemical", acc.Industry)
	assert.Equal(t, "+911234567890", acc.Phone)
	require.NotNil(t, acc.SubscriptionEnd, "disable must not drop the end date written by approve")
}

// ──────────────────────────────────────────────────────────────────────────────
// Expiry maintenance
// ──────────────────────────────────────────────────────────────────────────────

func TestRunExpiryMaintenance_WarnsInsideWindow(t *testing.T) {
	uc, repo, notifier := newTestUseCase(t)

	// Expires in 3 days: inside the 5-day window.
	seedAccount(t, repo, "soon", "soon@x.com", entity.RoleClient, entity.StatusActive,
		timePtr(fixedNow.AddDate(0, 0, 3)))
	// Expires in 10 days: outside the window.
	seedAccount(t, repo, "later", "later@x.com", entity.RoleClient, entity.StatusActive,
		timePtr(fixedNow.AddDate(0, 0, 10)))
	// Inside the window but disabled: not an active subscription.
	seedAccount(t, repo, "off", "off@x.com", entity.RoleClient, entity.StatusDisabled,
		timePtr(fixedNow.AddDate(0, 0, 2)))

	notified, err := uc.RunExpiryMaintenance(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	require.Len(t, notifier.sends, 1)
	note := notifier.sends[0]
	assert.Equal(t, access.KindExpiryWarning, note.kind)
	assert.Equal(t, "soon@x.com", note.recipient)
	assert.Equal(t, "3", note.params["days_left"])
}

func TestRunExpiryMaintenance_NoStatusMutation(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	seedAccount(t, repo, "soon", "soon@x.com", entity.RoleClient, entity.StatusActive,
		timePtr(fixedNow.AddDate(0, 0, 1)))

	_, err := uc.RunExpiryMaintenance(context.Background(), fixedNow)
	require.NoError(t, err)

	acc, _ := repo.GetByID(context.Background(), "soon")
	assert.Equal(t, entity.StatusActive, acc.SubscriptionStatus)
}
