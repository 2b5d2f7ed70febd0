package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"papershare/backend/api/middleware"
	"papershare/backend/common"
	"papershare/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-for-handler-tests"
	common.RedisEnabled = false
	common.SQLitePath = "file::memory:?cache=shared"

	uploadDir, err := os.MkdirTemp("", "papershare-handler-uploads-*")
	if err != nil {
		panic(err)
	}
	common.UploadPath = uploadDir

	if err := model.InitDB(); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(uploadDir)
	os.Exit(code)
}

// newTestRouter wires the handlers the same way the route package does,
// without importing it.
func newTestRouter() *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	router.Use(sessions.Sessions("session", store))

	router.POST("/signup", Register)
	router.POST("/login", Login)
	router.GET("/logout", Logout)

	router.GET("/api/papers", middleware.TryAuth(), ListPapers)
	router.GET("/api/user/isAdmin", middleware.TryAuth(), IsAdmin)

	authRoute := router.Group("/")
	authRoute.Use(middleware.UserAuth())
	{
		authRoute.POST("/upload-paper", UploadPaper)
		authRoute.GET("/api/download/:fileId", DownloadPaper)
		authRoute.DELETE("/api/papers/:fileId", DeletePaper)
		authRoute.GET("/api/collection", GetCollection)
		authRoute.POST("/api/collection/add/:fileId", AddToCollection)
		authRoute.POST("/api/collection/remove/:fileId", RemoveFromCollection)
		authRoute.GET("/api/user/self", GetSelf)
		authRoute.GET("/api/user/token", GenerateToken)
	}
	return router
}

type testClient struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestClient(router *gin.Engine) *testClient {
	return &testClient{router: router}
}

func (tc *testClient) do(t *testing.T, method string, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	assert.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range tc.cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	tc.router.ServeHTTP(resp, req)
	if newCookies := resp.Result().Cookies(); len(newCookies) > 0 {
		tc.cookies = newCookies
	}
	return resp
}

func (tc *testClient) postJSON(t *testing.T, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	return tc.do(t, "POST", target, bytes.NewReader(data), "application/json")
}

func (tc *testClient) signupAndLogin(t *testing.T, username string, email string) {
	t.Helper()
	resp := tc.postJSON(t, "/signup", gin.H{
		"username": username,
		"email":    email,
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func (tc *testClient) uploadPaper(t *testing.T, title string) int64 {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("title", title))
	assert.NoError(t, writer.WriteField("subject", "Testing"))
	part, err := writer.CreateFormFile("paper", title+".pdf")
	assert.NoError(t, err)
	_, err = part.Write([]byte("pdf content of " + title))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	resp := tc.do(t, "POST", "/upload-paper", body, writer.FormDataContentType())
	assert.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Success bool        `json:"success"`
		File    model.Paper `json:"file"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.NotZero(t, result.File.Id)
	return result.File.Id
}
