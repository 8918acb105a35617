package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/pkg/jwt"
)

func authTestRouter(manager *jwt.Manager, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if optional {
		r.Use(OptionalJWTAuth(manager))
	} else {
		r.Use(JWTAuth(manager))
	}
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateToken("u-1", "tester", 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := authTestRouter(manager, false)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	r := authTestRouter(manager, false)
	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	r := authTestRouter(manager, false)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	signer := jwt.NewManager("other-secret", time.Hour)
	token, _ := signer.GenerateToken("u-1", "tester", 1)

	manager := jwt.NewManager("test-secret", time.Hour)
	r := authTestRouter(manager, false)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_NoToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	r := authTestRouter(manager, true)
	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_InvalidTokenStillPasses(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	r := authTestRouter(manager, true)
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
