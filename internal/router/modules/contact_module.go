package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazarhub/catalog-api/internal/container"
	handlers "github.com/bazarhub/catalog-api/internal/interface/http"
	"github.com/bazarhub/catalog-api/internal/interface/middleware"
)

// ContactModule exposes contact and enquiry capture routes.
// Submissions are public; listing and deletion require a bearer token.
type ContactModule struct {
	Handler *handlers.ContactHandler
}

func NewContactModule(h *handlers.ContactHandler) *ContactModule {
	return &ContactModule{Handler: h}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contacts", submitLimiter, m.Handler.CreateContact)
	rg.POST("/enquiries", submitLimiter, m.Handler.CreateEnquiry)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetJWT()))
	{
		auth.GET("/contacts", m.Handler.ListContacts)
		auth.GET("/contacts/:id", m.Handler.GetContact)
		auth.DELETE("/contacts/:id", m.Handler.DeleteContact)

		auth.GET("/enquiries", m.Handler.ListEnquiries)
		auth.GET("/enquiries/:id", m.Handler.GetEnquiry)
		auth.DELETE("/enquiries/:id", m.Handler.DeleteEnquiry)
	}
}
