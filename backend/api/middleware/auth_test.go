package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"papershare/backend/common"
	"papershare/backend/model"
	"papershare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-for-middleware-tests"
	common.RedisEnabled = false
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	router.Use(sessions.Sessions("session", store))
	return router
}

// loginRoute stamps a session the way handler.setupLogin does.
func loginRoute(router *gin.Engine, id int64, username string, role int, status int) {
	router.GET("/test-login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("id", id)
		session.Set("username", username)
		session.Set("role", role)
		session.Set("status", status)
		_ = session.Save()
		c.Status(http.StatusOK)
	})
}

func sessionCookies(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()
	req, _ := http.NewRequest("GET", "/test-login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	return resp.Result().Cookies()
}

func TestUserAuth_NoSession(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUserAuth_WithSession(t *testing.T) {
	router := setupTestRouter()
	loginRoute(router, 7, "sessionuser", common.RoleCommonUser, common.UserStatusEnabled)
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "username": c.GetString("username")})
	})

	cookies := sessionCookies(t, router)

	req, _ := http.NewRequest("GET", "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "sessionuser")
}

func TestUserAuth_DisabledSession(t *testing.T) {
	router := setupTestRouter()
	loginRoute(router, 8, "disableduser", common.RoleCommonUser, common.UserStatusDisabled)
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	cookies := sessionCookies(t, router)

	req, _ := http.NewRequest("GET", "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestUserAuth_ValidBearerToken(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "username": c.GetString("username")})
	})

	token, err := service.GenerateToken(&model.User{Id: 42, Username: "tokenuser", Role: common.RoleCommonUser})
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "tokenuser")
}

func TestUserAuth_InvalidBearerToken(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", UserAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAdminAuth_CommonUserForbidden(t *testing.T) {
	router := setupTestRouter()
	loginRoute(router, 9, "plainuser", common.RoleCommonUser, common.UserStatusEnabled)
	router.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	cookies := sessionCookies(t, router)

	req, _ := http.NewRequest("GET", "/admin", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminAuth_AdminAllowed(t *testing.T) {
	router := setupTestRouter()
	loginRoute(router, 10, "adminuser", common.RoleAdminUser, common.UserStatusEnabled)
	router.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	cookies := sessionCookies(t, router)

	req, _ := http.NewRequest("GET", "/admin", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTryAuth_AnonymousPasses(t *testing.T) {
	router := setupTestRouter()
	router.GET("/open", TryAuth(), func(c *gin.Context) {
		_, hasId := c.Get("id")
		c.JSON(http.StatusOK, gin.H{"has_id": hasId})
	})

	req, _ := http.NewRequest("GET", "/open", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "false")
}
