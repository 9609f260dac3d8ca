package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazarhub/catalog-api/internal/container"
	handlers "github.com/bazarhub/catalog-api/internal/interface/http"
	"github.com/bazarhub/catalog-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	otpLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.GET("/auth/activate/:token", m.Handler.Activate)
	rg.POST("/auth/verify-otp", otpLimiter, m.Handler.VerifyOTP)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	rg.GET("/auth/google", m.Handler.GoogleLogin)
	rg.GET("/auth/google/callback", m.Handler.GoogleCallback)
}
