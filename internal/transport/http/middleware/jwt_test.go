package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"legalai-review/internal/pkg/jwtutil"
)

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthJWT(secret), func(c *gin.Context) {
		userID := c.MustGet(ContextUserIDKey).(uint)
		username := c.MustGet(ContextUsernameKey).(string)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return router
}

func TestAuthJWT_ValidToken(t *testing.T) {
	router := newProtectedRouter("secret")
	token, err := jwtutil.GenerateToken("secret", time.Hour, 7, "alice")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"user_id":7`) || !strings.Contains(w.Body.String(), `"username":"alice"`) {
		t.Fatalf("claims must reach the handler context, got %s", w.Body.String())
	}
}

func TestAuthJWT_Rejects(t *testing.T) {
	router := newProtectedRouter("secret")
	wrongSecret, err := jwtutil.GenerateToken("another-secret", time.Hour, 7, "alice")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc123",
		"empty token":    "Bearer   ",
		"wrong secret":   "Bearer " + wrongSecret,
		"garbage token":  "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}
