package handler

import (
	"errors"
	"net/http"

	"github.com/eliteassociate/realty-service/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *usecase.AuthUsecase
	logger *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger.Named("AuthHandler")}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phoneNo"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	user, profile, err := h.auth.Signup(r.Context(), req.FullName, req.Email, req.PhoneNo, req.Password)
	if err != nil && !errors.Is(err, usecase.ErrMailDelivery) {
		fail(w, h.logger, err)
		return
	}

	message := "User registered successfully. Please verify your email with the OTP sent."
	if err != nil {
		// Account stands; only the OTP email failed. The resend endpoint
		// is the recovery path.
		message = "User registered successfully, but the verification email could not be sent. Please request a new OTP."
	}
	ok(w, http.StatusCreated, message, envelope{"user": user, "profile": profile})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Login successful", envelope{"token": token, "user": user})
}

type emailRequest struct {
	Email string `json:"email"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *AuthHandler) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.VerifyEmailOTP(r.Context(), req.Email, req.OTP); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Email verified successfully", nil)
}

func (h *AuthHandler) ResendVerificationOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.ResendVerificationOTP(r.Context(), req.Email); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Verification OTP sent to your email", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Password reset OTP sent to your email", nil)
}

func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.VerifyResetOTP(r.Context(), req.Email, req.OTP); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "OTP verified successfully", nil)
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword, req.ConfirmPassword); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Password reset successfully", nil)
}

func (h *AuthHandler) ResendResetOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.ResendResetOTP(r.Context(), req.Email); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Password reset OTP sent to your email", nil)
}
