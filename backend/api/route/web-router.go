package route

import (
	"papershare/backend/api/handler"
	"papershare/backend/api/middleware"
	"papershare/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

func SetWebRouter(router *gin.Engine) {
	// Uploaded bytes are served as-is under /uploads
	router.Use(static.Serve("/uploads", static.LocalFile(common.UploadPath, false)))

	router.GET("/", handler.Home)
	router.GET("/signup", handler.SignupPage)
	router.GET("/login", handler.LoginPage)
	router.GET("/logout", handler.Logout)

	router.POST("/signup", middleware.CriticalRateLimit(), handler.Register)
	router.POST("/login", middleware.CriticalRateLimit(), handler.Login)

	authRoute := router.Group("/")
	authRoute.Use(middleware.UserAuth())
	{
		authRoute.POST("/upload-profile-picture", handler.UploadProfilePicture)
		authRoute.POST("/upload-paper", handler.UploadPaper)
	}
}
