package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/saaaathvik/consultansease/internal/dtos"
	"github.com/saaaathvik/consultansease/internal/services"
	"github.com/saaaathvik/consultansease/internal/utils"
)

type AuthController struct {
	authService services.AuthService
	otpService  services.OTPService
}

func NewAuthController(auth services.AuthService, otp services.OTPService) *AuthController {
	return &AuthController{authService: auth, otpService: otp}
}

var authValidate = validator.New()

// -------------------
// Signup / Login
// -------------------

func (c *AuthController) CreateNewUser(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Name, email and password are required", nil, err,
		)
		return
	}

	user, err := c.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeConflict,
				"Email already exists in our database! Try 'Forgot Password'?", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.UserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

func (c *AuthController) ValidateUser(w http.ResponseWriter, r *http.Request) {
	var req dtos.ValidateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Email and password are required", nil, err,
		)
		return
	}

	user, err := c.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found", nil,
			)
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid password", nil,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", nil, err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.UserResponse{
		Message: "Login successful",
		User:    user,
	})
}

// -------------------
// Password reset flow
// -------------------

func (c *AuthController) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req dtos.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid email format", nil, err,
		)
		return
	}

	if err := c.otpService.Request(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found! Try signing up?", nil,
			)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to send OTP", nil, err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", nil, err,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "OTP sent to your email!"})
}

func (c *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dtos.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid code format", nil, err,
		)
		return
	}

	if err := c.otpService.Verify(req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, utils.ErrOTPNotRequested):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeOTPNotRequested, "No OTP requested!", nil,
			)
		case errors.Is(err, utils.ErrOTPExpired):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeOTPExpired, "OTP expired!", nil,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeOTPMismatch, "Incorrect OTP!", nil,
			)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "OTP verified!"})
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Email and password are required.", nil, err,
		)
		return
	}

	if err := c.otpService.CompleteReset(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "User not found!", nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error.", nil, err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Password updated successfully!"})
}
