package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bazarhub/catalog-api/pkg/helpers"
)

func authTestRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("userID")})
	})
	return r
}

func TestAuthAcceptsValidBearer(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	r := authTestRouter(jwt)

	token, _, err := jwt.GenerateBearerToken("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	r := authTestRouter(jwt)

	token, _, _ := jwt.GenerateBearerToken("user-1", "")
	cases := map[string]string{
		"missing":      "",
		"no scheme":    token,
		"wrong scheme": "Basic " + token,
		"garbage":      "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	signer := helpers.NewJWTManager("test-secret", -time.Minute, -time.Minute)
	verifier := helpers.NewJWTManager("test-secret", time.Hour, time.Hour)
	r := authTestRouter(verifier)

	token, _, err := signer.GenerateBearerToken("user-1", "")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
