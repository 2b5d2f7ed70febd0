package handler

import (
	"net/http"

	"papershare/backend/common"
	"papershare/backend/model"
	"papershare/backend/service"

	"github.com/gin-gonic/gin"
)

func sessionUserId(c *gin.Context) int64 {
	id, exists := c.Get("id")
	if !exists {
		return 0
	}
	userId, ok := id.(int64)
	if !ok {
		return 0
	}
	return userId
}

func GetSelf(c *gin.Context) {
	user, err := model.GetUserById(sessionUserId(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	common.RespSuccess(c, user)
}

// IsAdmin mirrors the frontend check the home page performs; an anonymous
// viewer is simply not an admin.
func IsAdmin(c *gin.Context) {
	role := c.GetInt("role")
	c.JSON(http.StatusOK, gin.H{"isAdmin": role >= common.RoleAdminUser})
}

func UploadProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("profilePicture")
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "no profile picture in request", err)
		return
	}
	picture, err := service.ReplaceProfilePicture(sessionUserId(c), fileHeader)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "upload failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": picture.URL})
}

// GenerateToken mints a JWT access token so the session user can call the
// API with an Authorization header instead of a cookie.
func GenerateToken(c *gin.Context) {
	user, err := model.GetUserById(sessionUserId(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "unable to generate token", err)
		return
	}
	common.RespSuccess(c, token)
}
