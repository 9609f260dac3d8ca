package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/application"
	"github.com/bazarhub/catalog-api/pkg/helpers"
	"github.com/bazarhub/catalog-api/pkg/oauth"
	"github.com/bazarhub/catalog-api/pkg/response"
	"github.com/bazarhub/catalog-api/pkg/validation"
)

type AuthHandler struct {
	Svc      *application.AuthService
	Provider oauth.Provider
	RDB      *redis.Client
	Logger   *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, provider oauth.Provider, rdb *redis.Client, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Provider: provider, RDB: rdb, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,pwd"`
	Phone    string `json:"phone"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	switch {
	case err == nil:
	case errors.Is(err, application.ErrUserExists):
		response.Error[any](c, http.StatusBadRequest, "user already exists", nil)
		return
	case errors.Is(err, application.ErrSendFailed):
		// The row is already persisted; the caller can retry sending.
		response.Error[any](c, http.StatusInternalServerError, "user registered, but the verification message could not be sent", nil)
		return
	default:
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "error registering user", nil)
		return
	}

	msg := "user registered successfully"
	switch {
	case res.OTPSent && res.Channel == "phone":
		msg = "user registered successfully, OTP sent to your phone"
	case res.OTPSent:
		msg = "user registered successfully, OTP sent to your email"
	case res.LinkSent:
		msg = "user registered successfully, please check your email to activate your account"
	}
	response.Success(c, http.StatusCreated, gin.H{"user_id": res.UserID, "activated": res.Activated}, msg, nil)
}

// Activate GET /api/auth/activate/:token
func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Param("token")
	err := h.Svc.ActivateByToken(c.Request.Context(), token)
	switch {
	case err == nil:
		response.Success[any](c, http.StatusOK, gin.H{"activated": true}, "account activated successfully", nil)
	case errors.Is(err, application.ErrInvalidActivation):
		response.Error[any](c, http.StatusBadRequest, "invalid or expired activation link", nil)
	default:
		h.Logger.WithError(err).Error("activation failed")
		response.Error[any](c, http.StatusInternalServerError, "error activating account", nil)
	}
}

type verifyOTPRequest struct {
	Contact     string `json:"contact" binding:"required"`
	OTP         string `json:"otp" binding:"required,otp"`
	Params      string `json:"params" binding:"required,oneof=register login reset-password"`
	NewPassword string `json:"newPassword" binding:"required_if=Params reset-password,omitempty,pwd"`
}

// VerifyOTP POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var purpose application.VerifyPurpose
	switch req.Params {
	case "register":
		purpose = application.PurposeRegister()
	case "login":
		purpose = application.PurposeLogin()
	case "reset-password":
		purpose = application.PurposeResetPassword(req.NewPassword)
	}

	res, err := h.Svc.VerifyOTP(c.Request.Context(), req.Contact, req.OTP, purpose)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusBadRequest, "user not found", nil)
		return
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error[any](c, http.StatusBadRequest, "invalid OTP", nil)
		return
	default:
		h.Logger.WithError(err).Error("otp verification failed")
		response.Error[any](c, http.StatusInternalServerError, "error verifying OTP", nil)
		return
	}

	switch {
	case res.Activated:
		response.Success[any](c, http.StatusOK, gin.H{"activated": true}, "account activated successfully", nil)
	case res.PasswordReset:
		response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password reset successfully", nil)
	default:
		response.Success(c, http.StatusOK, gin.H{"token": res.Token}, "login successful",
			map[string]any{"expires_at": res.TokenExpiry})
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Identifier, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusBadRequest, "user not found or not activated", nil)
		return
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, "invalid password", nil)
		return
	case errors.Is(err, application.ErrNotActivated):
		response.Error[any](c, http.StatusBadRequest, "please activate your account via email", nil)
		return
	case errors.Is(err, application.ErrSendFailed):
		response.Error[any](c, http.StatusInternalServerError, "could not send OTP, please try again", nil)
		return
	default:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "error logging in", nil)
		return
	}

	if res.OTPSent {
		response.Success[any](c, http.StatusOK, gin.H{"otp_sent": true}, "OTP sent to your phone", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": res.Token}, "login successful",
		map[string]any{"expires_at": res.TokenExpiry})
}

func genState(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleLogin GET /api/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := genState(24)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "error starting login", nil)
		return
	}
	if err := helpers.SaveOAuthState(c.Request.Context(), h.RDB, state, 10*time.Minute); err != nil {
		h.Logger.WithError(err).Error("oauth state save failed")
		response.Error[any](c, http.StatusInternalServerError, "error starting login", nil)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, h.Provider.AuthCodeURL(state))
}

// GoogleCallback GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		response.Error[any](c, http.StatusBadRequest, "login failed", nil)
		return
	}
	ok, err := helpers.ConsumeOAuthState(c.Request.Context(), h.RDB, state)
	if err != nil || !ok {
		response.Error[any](c, http.StatusBadRequest, "login failed", nil)
		return
	}

	profile, err := h.Provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.Logger.WithError(err).Warn("oauth exchange failed")
		response.Error[any](c, http.StatusBadRequest, "login failed", nil)
		return
	}

	u, res, err := h.Svc.GoogleLogin(c.Request.Context(), profile)
	if err != nil {
		h.Logger.WithError(err).Error("google login failed")
		response.Error[any](c, http.StatusInternalServerError, "error during login", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user": gin.H{
			"id":       u.ID,
			"email":    u.Email,
			"username": u.Username,
		},
	}, "login successful", map[string]any{"expires_at": res.TokenExpiry})
}
