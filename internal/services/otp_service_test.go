package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saaaathvik/consultansease/internal/config"
	"github.com/saaaathvik/consultansease/internal/models"
	"github.com/saaaathvik/consultansease/internal/utils"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	user, ok := r.users[email]
	if !ok {
		return fmt.Errorf("no user for %s", email)
	}
	user.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) add(t *testing.T, name, email, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	r.users[email] = &models.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: hash,
	}
	return hash
}

type fakeMailSender struct {
	lastEmail string
	lastCode  string
	sends     int
	fail      bool
}

func (m *fakeMailSender) SendOTP(_ context.Context, toEmail, code string) error {
	m.sends++
	if m.fail {
		return fmt.Errorf("%w: sendgrid rejected the message", utils.ErrExternalServiceFailure)
	}
	m.lastEmail = toEmail
	m.lastCode = code
	return nil
}

func newOTPFixture(t *testing.T) (*otpService, *fakeUserRepo, *OTPStore, *fakeMailSender) {
	t.Helper()
	users := newFakeUserRepo()
	store := NewOTPStore()
	mailer := &fakeMailSender{}
	cfg := &config.Config{OTPExpiry: config.DefaultOTPExpiry}
	svc := NewOTPService(users, store, mailer, cfg).(*otpService)
	return svc, users, store, mailer
}

// =============================================================================
// TESTS
// =============================================================================

func TestVerifyWithoutPriorRequest(t *testing.T) {
	svc, _, _, _ := newOTPFixture(t)

	err := svc.Verify("nobody@example.com", "123456")
	require.ErrorIs(t, err, utils.ErrOTPNotRequested)
}

func TestRequestUnknownEmail(t *testing.T) {
	svc, _, store, mailer := newOTPFixture(t)

	err := svc.Request(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, utils.ErrUserNotFound)

	_, ok := store.Get("ghost@example.com")
	assert.False(t, ok, "no entry should be stored for unknown users")
	assert.Zero(t, mailer.sends)
}

func TestRequestThenVerify(t *testing.T) {
	svc, users, _, mailer := newOTPFixture(t)
	users.add(t, "Alice", "alice@example.com", "hunter2")

	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))
	require.Equal(t, "alice@example.com", mailer.lastEmail)
	require.Len(t, mailer.lastCode, 6)

	// The entry survives a successful verify, so verifying again with the
	// same code succeeds as well.
	require.NoError(t, svc.Verify("alice@example.com", mailer.lastCode))
	require.NoError(t, svc.Verify("alice@example.com", mailer.lastCode))
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, users, _, mailer := newOTPFixture(t)
	users.add(t, "Alice", "alice@example.com", "hunter2")

	base := time.Now()
	svc.now = func() time.Time { return base }
	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))

	svc.now = func() time.Time { return base.Add(5*time.Minute + time.Second) }
	err := svc.Verify("alice@example.com", mailer.lastCode)
	require.ErrorIs(t, err, utils.ErrOTPExpired)

	// Expiry deletes the entry, so a retry now reports no request at all.
	err = svc.Verify("alice@example.com", mailer.lastCode)
	require.ErrorIs(t, err, utils.ErrOTPNotRequested)
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	svc, users, _, mailer := newOTPFixture(t)
	users.add(t, "Alice", "alice@example.com", "hunter2")

	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))
	first := mailer.lastCode

	// Codes are random; reissue until we get a distinct one.
	second := first
	for i := 0; i < 5 && second == first; i++ {
		require.NoError(t, svc.Request(context.Background(), "alice@example.com"))
		second = mailer.lastCode
	}
	require.NotEqual(t, first, second)

	require.ErrorIs(t, svc.Verify("alice@example.com", first), utils.ErrOTPMismatch)
	require.NoError(t, svc.Verify("alice@example.com", second))
}

func TestMismatchKeepsEntry(t *testing.T) {
	svc, users, _, mailer := newOTPFixture(t)
	users.add(t, "Alice", "alice@example.com", "hunter2")

	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))

	require.ErrorIs(t, svc.Verify("alice@example.com", "000000"), utils.ErrOTPMismatch)
	require.ErrorIs(t, svc.Verify("alice@example.com", "000001"), utils.ErrOTPMismatch)
	require.NoError(t, svc.Verify("alice@example.com", mailer.lastCode))
}

func TestDeliveryFailureKeepsStoredCode(t *testing.T) {
	svc, users, store, mailer := newOTPFixture(t)
	users.add(t, "Alice", "alice@example.com", "hunter2")
	mailer.fail = true

	err := svc.Request(context.Background(), "alice@example.com")
	require.ErrorIs(t, err, utils.ErrExternalServiceFailure)

	// The undelivered code is still stored and still verifies.
	entry, ok := store.Get("alice@example.com")
	require.True(t, ok)
	require.NoError(t, svc.Verify("alice@example.com", entry.Code))
}

func TestCompleteResetClearsEntryWithoutVerify(t *testing.T) {
	svc, users, store, _ := newOTPFixture(t)
	oldHash := users.add(t, "Alice", "alice@example.com", "hunter2")

	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))
	// No Verify call before the reset.
	require.NoError(t, svc.CompleteReset(context.Background(), "alice@example.com", "correct horse"))

	_, ok := store.Get("alice@example.com")
	assert.False(t, ok, "reset must clear any pending entry")

	updated := users.users["alice@example.com"]
	assert.NotEqual(t, oldHash, updated.Password)
	assert.True(t, utils.CheckPasswordHash("correct horse", updated.Password))
}

func TestCompleteResetUnknownEmail(t *testing.T) {
	svc, _, _, _ := newOTPFixture(t)

	err := svc.CompleteReset(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestEndToEndPasswordReset(t *testing.T) {
	svc, users, _, mailer := newOTPFixture(t)
	auth := NewAuthService(users)

	_, err := auth.Register(context.Background(), "Alice", "alice@example.com", "old-password")
	require.NoError(t, err)

	require.NoError(t, svc.Request(context.Background(), "alice@example.com"))
	require.NoError(t, svc.Verify("alice@example.com", mailer.lastCode))
	require.NoError(t, svc.CompleteReset(context.Background(), "alice@example.com", "new-password"))

	_, err = auth.Login(context.Background(), "alice@example.com", "new-password")
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), "alice@example.com", "old-password")
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
