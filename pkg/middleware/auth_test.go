package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-booking/pkg/middleware"
	"marketplace-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func identityHandler(t *testing.T, wantID uuid.UUID, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantID, id)

		role, _ := utils.GetRoleFromContext(r.Context())
		assert.Equal(t, wantRole, role)

		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentity_SetsContextFromHeaders(t *testing.T) {
	userID := uuid.New()
	handler := middleware.Identity(zap.NewNop())(identityHandler(t, userID, middleware.RoleVendor))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderUserID, userID.String())
	req.Header.Set(middleware.HeaderUserRole, middleware.RoleVendor)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentity_MalformedUserID(t *testing.T) {
	handler := middleware.Identity(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderUserID, "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentity_AnonymousPassesThrough(t *testing.T) {
	called := false
	handler := middleware.Identity(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := utils.GetUserIDFromContext(r.Context())
		assert.False(t, ok)
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestRequireRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		userID     string
		role       string
		required   string
		wantStatus int
	}{
		{"matching role", uuid.New().String(), middleware.RoleVendor, middleware.RoleVendor, http.StatusOK},
		{"wrong role", uuid.New().String(), middleware.RoleCustomer, middleware.RoleVendor, http.StatusForbidden},
		{"anonymous", "", "", middleware.RoleVendor, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := middleware.Identity(zap.NewNop())(
				middleware.RequireRole(tt.required, zap.NewNop())(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(middleware.HeaderUserID, tt.userID)
				req.Header.Set(middleware.HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			chain.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
