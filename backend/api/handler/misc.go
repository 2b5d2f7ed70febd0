package handler

import (
	"net/http"

	"papershare/backend/common"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"system_name": common.SystemName,
			"version":     common.Version,
			"start_time":  common.StartTime,
		},
	})
}
