package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/mailer"
	"github.com/eliteassociate/realty-service/internal/otp"
	"github.com/eliteassociate/realty-service/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase owns signup, login and the two OTP lifecycles.
type AuthUsecase struct {
	users    UserStore
	profiles ProfileStore
	mailer   mailer.Mailer
	tokens   *auth.Issuer
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthUsecase(users UserStore, profiles ProfileStore, m mailer.Mailer, tokens *auth.Issuer, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		profiles: profiles,
		mailer:   m,
		tokens:   tokens,
		logger:   logger.Named("AuthUsecase"),
		now:      time.Now,
	}
}

// SeedAdmin guarantees the configured admin account exists, so login stays a
// single uniform path with no environment-comparison branch.
func (u *AuthUsecase) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	return u.users.EnsureAdmin(ctx, email, password)
}

// issueOTP mints a fresh challenge, persists it (overwriting any prior one
// for the purpose) and mails the code. The code never travels back to the
// HTTP caller.
func (u *AuthUsecase) issueOTP(ctx context.Context, user *entity.User, purpose otp.Purpose) error {
	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	expiresAt := u.now().Add(otp.TTL)
	if err := u.users.SetOTP(ctx, user.ID, purpose, code, expiresAt); err != nil {
		return err
	}
	if err := u.mailer.SendOTP(user.Email, user.FullName, code, purpose); err != nil {
		u.logger.Error("OTP email delivery failed", zap.String("userID", user.ID.Hex()), zap.String("purpose", string(purpose)), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// Signup creates the account, its profile, and dispatches a verification
// OTP. A profile-creation failure rolls the account back; an email delivery
// failure does not, and is reported via ErrMailDelivery alongside the
// created records (the resend endpoint is the recovery path).
func (u *AuthUsecase) Signup(ctx context.Context, fullName, email, phoneNo, password string) (*entity.User, *entity.Profile, error) {
	if err := validateFullName(fullName); err != nil {
		return nil, nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validatePhone(phoneNo); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}

	user := &entity.User{
		FullName: fullName,
		Email:    email,
		PhoneNo:  phoneNo,
		Password: password,
		Role:     entity.RoleClient,
	}
	userID, err := u.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	profile := &entity.Profile{
		AuthID:   userID,
		FullName: fullName,
		Email:    user.Email,
		PhoneNo:  phoneNo,
	}
	if _, err := u.profiles.Create(ctx, profile); err != nil {
		u.logger.Error("Profile creation failed, rolling back user", zap.String("userID", userID.Hex()), zap.Error(err))
		if delErr := u.users.Delete(ctx, userID); delErr != nil {
			u.logger.Error("Rollback of user after profile failure also failed", zap.String("userID", userID.Hex()), zap.Error(delErr))
		}
		return nil, nil, err
	}

	if err := u.issueOTP(ctx, user, otp.PurposeEmailVerify); err != nil {
		if errors.Is(err, ErrMailDelivery) {
			return user.Sanitized(), profile, err
		}
		return nil, nil, err
	}

	u.logger.Info("User registered", zap.String("userID", userID.Hex()))
	return user.Sanitized(), profile, nil
}

// Login is one uniform path for every account, admin included. Unknown
// email and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, user.Sanitized(), nil
}

func (u *AuthUsecase) challenge(user *entity.User, purpose otp.Purpose) *entity.OTPChallenge {
	if purpose == otp.PurposePasswordReset {
		return user.ResetOTP
	}
	return user.VerifyOTP
}

// validateOTP checks the submitted code against the stored challenge. It
// never mutates stored state, so a wrong attempt can be retried until the
// window closes.
func (u *AuthUsecase) validateOTP(user *entity.User, purpose otp.Purpose, submitted string) error {
	challenge := u.challenge(user, purpose)
	if challenge == nil {
		return otp.ErrInvalidCode
	}
	return otp.Validate(challenge.Code, challenge.ExpiresAt, submitted, u.now())
}

// VerifyEmailOTP consumes the verification challenge on success.
func (u *AuthUsecase) VerifyEmailOTP(ctx context.Context, email, submitted string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := u.validateOTP(user, otp.PurposeEmailVerify, submitted); err != nil {
		return err
	}
	return u.users.ClearOTP(ctx, user.ID, otp.PurposeEmailVerify)
}

// ResendVerificationOTP reissues: fresh code, fresh window, prior challenge
// gone.
func (u *AuthUsecase) ResendVerificationOTP(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.issueOTP(ctx, user, otp.PurposeEmailVerify)
}

// ForgotPassword starts the reset flow by issuing a reset challenge.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.issueOTP(ctx, user, otp.PurposePasswordReset)
}

// VerifyResetOTP pre-checks a reset code without consuming it; the challenge
// is cleared only when the password is actually reset.
func (u *AuthUsecase) VerifyResetOTP(ctx context.Context, email, submitted string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.validateOTP(user, otp.PurposePasswordReset, submitted)
}

// ResetPassword validates the reset challenge, rehashes the password and
// clears the challenge.
func (u *AuthUsecase) ResetPassword(ctx context.Context, email, submitted, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: new password and confirm password do not match", ErrValidation)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := u.validateOTP(user, otp.PurposePasswordReset, submitted); err != nil {
		return err
	}

	if err := u.users.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return err
	}
	if err := u.users.ClearOTP(ctx, user.ID, otp.PurposePasswordReset); err != nil {
		u.logger.Error("Failed to clear reset challenge after password update", zap.String("userID", user.ID.Hex()), zap.Error(err))
		return err
	}
	u.logger.Info("Password reset", zap.String("userID", user.ID.Hex()))
	return nil
}

// ResendResetOTP reissues the reset challenge.
func (u *AuthUsecase) ResendResetOTP(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.issueOTP(ctx, user, otp.PurposePasswordReset)
}
