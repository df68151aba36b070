package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func authTestRouter(auth gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{auth}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuth_MissingHeader(t *testing.T) {
	router := authTestRouter(Auth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Auth() status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := authTestRouter(Auth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "NotBearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Auth() status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	var gotUserID uuid.UUID
	var gotCanManage bool

	router := authTestRouter(Auth(testSecret), func(c *gin.Context) {
		if v, ok := c.Get(ContextUserID); ok {
			gotUserID = v.(uuid.UUID)
		}
		if v, ok := c.Get(ContextCanManage); ok {
			gotCanManage = v.(bool)
		}
		c.Next()
	})

	token := signTestToken(t, jwt.MapClaims{
		"user_id":    userID.String(),
		"name":       "Test Admin",
		"email":      "admin@example.com",
		"can_manage": true,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Auth() status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotUserID != userID {
		t.Errorf("Auth() user_id = %v, want %v", gotUserID, userID)
	}
	if !gotCanManage {
		t.Error("Auth() can_manage = false, want true")
	}
}

func TestAuth_SubClaimFallback(t *testing.T) {
	userID := uuid.New()
	var gotUserID uuid.UUID

	router := authTestRouter(Auth(testSecret), func(c *gin.Context) {
		if v, ok := c.Get(ContextUserID); ok {
			gotUserID = v.(uuid.UUID)
		}
		c.Next()
	})

	token := signTestToken(t, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Auth() status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotUserID != userID {
		t.Errorf("Auth() user_id = %v, want %v", gotUserID, userID)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	router := authTestRouter(Auth(testSecret))

	token := signTestToken(t, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Auth() status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	router := authTestRouter(Auth("a-different-secret"))

	token := signTestToken(t, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Auth() status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

// stubValidator is a TokenValidator test double
type stubValidator struct {
	principal *Principal
	err       error
}

func (s *stubValidator) ValidateToken(ctx context.Context, tokenStr string) (*Principal, error) {
	return s.principal, s.err
}

func TestAuthWithValidator(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token sets the principal", func(t *testing.T) {
		var gotName string
		validator := &stubValidator{principal: &Principal{UserID: userID, Name: "Test Admin", CanManage: true}}
		router := authTestRouter(AuthWithValidator(validator), func(c *gin.Context) {
			if v, ok := c.Get(ContextUserName); ok {
				gotName = v.(string)
			}
			c.Next()
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("AuthWithValidator() status = %v, want %v", w.Code, http.StatusOK)
		}
		if gotName != "Test Admin" {
			t.Errorf("AuthWithValidator() user_name = %q, want Test Admin", gotName)
		}
	})

	t.Run("rejected token aborts", func(t *testing.T) {
		validator := &stubValidator{err: errors.New("token is blacklisted")}
		router := authTestRouter(AuthWithValidator(validator))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("AuthWithValidator() status = %v, want %v", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestRequireManage(t *testing.T) {
	tests := []struct {
		name           string
		setup          gin.HandlerFunc
		expectedStatus int
	}{
		{
			name: "manager passes",
			setup: func(c *gin.Context) {
				c.Set(ContextCanManage, true)
				c.Next()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "non-manager is forbidden",
			setup: func(c *gin.Context) {
				c.Set(ContextCanManage, false)
				c.Next()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing capability is forbidden",
			setup:          func(c *gin.Context) { c.Next() },
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(tt.setup, RequireManage())

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("RequireManage() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}
