package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(claims *util.Claims, allowed ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("user", claims)
		}
	})
	r.GET("/guarded", RoleMiddleware(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRoleMiddlewareAllowsListedRole(t *testing.T) {
	r := roleRouter(&util.Claims{UserID: 1, Role: model.Tutor}, model.Tutor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareAdminInheritsAll(t *testing.T) {
	r := roleRouter(&util.Claims{UserID: 1, Role: model.Admin}, model.Tutor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareForbidsOtherRoles(t *testing.T) {
	r := roleRouter(&util.Claims{UserID: 1, Role: model.Student}, model.Admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareRejectsMissingClaims(t *testing.T) {
	r := roleRouter(nil, model.Admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
