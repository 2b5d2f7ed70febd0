package route

import (
	"papershare/backend/api/handler"
	"papershare/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine) {
	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		// Public routes (no authentication required)
		apiRouter.GET("/status", handler.GetStatus)

		// Viewer-aware routes: annotated when a session or token is present
		apiRouter.GET("/papers", middleware.TryAuth(), handler.ListPapers)
		apiRouter.GET("/user/isAdmin", middleware.TryAuth(), handler.IsAdmin)

		// Routes that require authentication
		authRoute := apiRouter.Group("/")
		authRoute.Use(middleware.UserAuth())
		{
			authRoute.GET("/download/:fileId", handler.DownloadPaper)
			authRoute.DELETE("/papers/:fileId", handler.DeletePaper)

			authRoute.GET("/collection", handler.GetCollection)
			authRoute.POST("/collection/add/:fileId", handler.AddToCollection)
			authRoute.POST("/collection/remove/:fileId", handler.RemoveFromCollection)

			authRoute.GET("/user/self", handler.GetSelf)
			authRoute.GET("/user/token", handler.GenerateToken)
		}
	}
}
