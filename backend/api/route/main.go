package route

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

func SetRouter(router *gin.Engine, templatesFS embed.FS) {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	SetApiRouter(router)
	SetWebRouter(router)
}
