package services

import (
	"context"
	"time"

	"github.com/saaaathvik/consultansease/internal/config"
	"github.com/saaaathvik/consultansease/internal/repositories"
	"github.com/saaaathvik/consultansease/internal/utils"
)

// OTPService implements the password-reset flow: issue a code, check a
// submitted code, and finally replace the stored password hash.
//
// A submitted code moves through NoOtp -> Issued -> {Verified, Expired,
// Mismatch}; only expiry and CompleteReset delete the entry. A successful
// Verify intentionally keeps the entry alive, because the reset step is
// still keyed by email. CompleteReset does not require a prior successful
// Verify; see DESIGN.md.
type OTPService interface {
	Request(ctx context.Context, email string) error
	Verify(email, code string) error
	CompleteReset(ctx context.Context, email, newPassword string) error
}

type otpService struct {
	users  repositories.UserRepository
	store  *OTPStore
	mailer MailSender
	expiry time.Duration
	now    func() time.Time
}

func NewOTPService(
	users repositories.UserRepository,
	store *OTPStore,
	mailer MailSender,
	cfg *config.Config,
) OTPService {
	return &otpService{
		users:  users,
		store:  store,
		mailer: mailer,
		expiry: cfg.OTPExpiry,
		now:    time.Now,
	}
}

// Request issues a fresh code for the email, replacing any outstanding
// one, and dispatches it. The entry is stored before dispatch, so a
// delivery failure leaves a usable code behind (preserved behavior of
// the original system; flagged in DESIGN.md).
func (s *otpService) Request(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	code, err := utils.RandomOTPCode()
	if err != nil {
		return err
	}
	s.store.Put(email, code, s.now().Add(s.expiry))

	return s.mailer.SendOTP(ctx, email, code)
}

func (s *otpService) Verify(email, code string) error {
	entry, ok := s.store.Get(email)
	if !ok {
		return utils.ErrOTPNotRequested
	}
	if s.now().After(entry.ExpiresAt) {
		s.store.Delete(email)
		return utils.ErrOTPExpired
	}
	if entry.Code != code {
		// Entry is retained: attempts are unlimited until expiry.
		return utils.ErrOTPMismatch
	}
	return nil
}

// CompleteReset replaces the stored password hash and clears any pending
// OTP entry for the email.
func (s *otpService) CompleteReset(ctx context.Context, email, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	s.store.Delete(email)
	return nil
}
