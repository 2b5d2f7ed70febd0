package handler

import (
	"errors"
	"net/http"
	"strings"

	"papershare/backend/common"
	"papershare/backend/model"
	"papershare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=30"`
	Email    string `form:"email" json:"email" validate:"required,email,max=50"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=60"`
	IsAdmin  string `form:"is_admin" json:"is_admin"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// wantsHTML reports whether the request came from the rendered form rather
// than an API client, which decides between a re-rendered page and JSON.
func wantsHTML(c *gin.Context) bool {
	if strings.Contains(c.ContentType(), "application/json") {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html") || c.ContentType() == "application/x-www-form-urlencoded" || strings.Contains(c.ContentType(), "multipart/form-data")
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		registerFailed(c, "all fields are required")
		return
	}
	if err := common.Validate.Struct(&req); err != nil {
		registerFailed(c, "invalid signup data: "+err.Error())
		return
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.IsAdmin == "on" {
		user.Role = common.RoleAdminUser
	}
	if err := user.Insert(); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrEmailTaken) {
			registerFailed(c, "username or email already exists")
			return
		}
		registerFailed(c, "error creating account")
		return
	}
	setupLogin(&user, c)
}

func registerFailed(c *gin.Context, message string) {
	if wantsHTML(c) {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": message})
		return
	}
	common.RespErrorStr(c, http.StatusBadRequest, message)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		loginFailed(c, http.StatusBadRequest, "username and password are required")
		return
	}
	user, err := model.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			loginFailed(c, http.StatusUnauthorized, "user not found")
		case errors.Is(err, model.ErrUserDisabled):
			loginFailed(c, http.StatusForbidden, "account is disabled")
		default:
			loginFailed(c, http.StatusUnauthorized, "invalid password")
		}
		return
	}
	setupLogin(user, c)
}

func loginFailed(c *gin.Context, statusCode int, message string) {
	if wantsHTML(c) {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": message})
		return
	}
	common.RespErrorStr(c, statusCode, message)
}

// setupLogin sets the session and returns the user's public profile.
func setupLogin(user *model.User, c *gin.Context) {
	session := sessions.Default(c)
	session.Set("id", user.Id)
	session.Set("username", user.Username)
	session.Set("role", user.Role)
	session.Set("status", user.Status)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "unable to save session", err)
		return
	}
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	cleanUser := model.User{
		Id:             user.Id,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		Status:         user.Status,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
	common.RespSuccess(c, cleanUser)
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "unable to clear session", err)
		return
	}
	// A Bearer token used for API access is blacklisted until it expires
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		service.BlacklistToken(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	common.RespSuccessStr(c, "")
}
