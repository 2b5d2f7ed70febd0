package middleware

import (
	"net/http"
	"strings"

	"papershare/backend/common"
	"papershare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func authHelper(c *gin.Context, minRole int) {
	session := sessions.Default(c)
	username := session.Get("username")
	role := session.Get("role")
	id := session.Get("id")
	status := session.Get("status")
	authByToken := false
	if username == nil {
		// No session, check for a Bearer token
		claims, ok := bearerClaims(c)
		if !ok {
			common.RespErrorStr(c, http.StatusUnauthorized, "not authenticated")
			c.Abort()
			return
		}
		username = claims.Username
		role = claims.Role
		id = claims.UserID
		status = common.UserStatusEnabled
		authByToken = true
	}
	if status.(int) == common.UserStatusDisabled {
		common.RespErrorStr(c, http.StatusForbidden, "account is disabled")
		c.Abort()
		return
	}
	if role.(int) < minRole {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient privileges")
		c.Abort()
		return
	}
	c.Set("username", username)
	c.Set("role", role)
	c.Set("id", id)
	c.Set("authByToken", authByToken)
	c.Next()
}

func bearerClaims(c *gin.Context) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	tokenString := parts[1]
	if service.IsTokenBlacklisted(tokenString) {
		return nil, false
	}
	claims, err := service.ValidateToken(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func UserAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleCommonUser)
	}
}

func AdminAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleAdminUser)
	}
}

// TryAuth populates the viewer's identity when a session or token is present
// but never rejects the request. Used by endpoints that annotate their
// response for a known viewer and serve anonymous ones too.
func TryAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if username := session.Get("username"); username != nil {
			c.Set("username", username)
			c.Set("role", session.Get("role"))
			c.Set("id", session.Get("id"))
		} else if claims, ok := bearerClaims(c); ok {
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Set("id", claims.UserID)
		}
		c.Next()
	}
}
