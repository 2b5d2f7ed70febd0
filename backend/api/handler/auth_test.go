package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignupLoginRoundTrip(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)

	resp := client.postJSON(t, "/signup", gin.H{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "alice")

	// A fresh client logs in with the right password
	login := newTestClient(router)
	resp = login.postJSON(t, "/login", gin.H{"username": "alice", "password": "pw123456"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "alice")

	// The session identity backs /api/user/self
	resp = login.do(t, "GET", "/api/user/self", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "alice@x.com")
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)
	client.signupAndLogin(t, "bob", "bob@x.com")

	fresh := newTestClient(router)
	resp := fresh.postJSON(t, "/login", gin.H{"username": "bob", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid password")
}

func TestLoginUnknownUser(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)

	resp := client.postJSON(t, "/login", gin.H{"username": "ghost", "password": "pw123456"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "user not found")
}

func TestSignupDuplicateUsername(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)
	client.signupAndLogin(t, "carol", "carol@x.com")

	second := newTestClient(router)
	resp := second.postJSON(t, "/signup", gin.H{
		"username": "carol",
		"email":    "carol2@x.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "already exists")
}

func TestSignupInvalidEmail(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)

	resp := client.postJSON(t, "/signup", gin.H{
		"username": "badmail",
		"email":    "not-an-email",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	router := newTestRouter()
	client := newTestClient(router)
	client.signupAndLogin(t, "dave", "dave@x.com")

	resp := client.do(t, "GET", "/logout", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = client.do(t, "GET", "/api/user/self", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestIsAdminFlag(t *testing.T) {
	router := newTestRouter()

	anonymous := newTestClient(router)
	resp := anonymous.do(t, "GET", "/api/user/isAdmin", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"isAdmin":false`)

	user := newTestClient(router)
	user.signupAndLogin(t, "plainisadmin", "plainisadmin@x.com")
	resp = user.do(t, "GET", "/api/user/isAdmin", nil, "")
	assert.Contains(t, resp.Body.String(), `"isAdmin":false`)
}
