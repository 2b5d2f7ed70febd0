package handler

import (
	"errors"
	"net/http"

	"papershare/backend/common"
	"papershare/backend/model"

	"github.com/gin-gonic/gin"
)

func GetCollection(c *gin.Context) {
	papers, err := model.ListCollection(sessionUserId(c))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to fetch collection", err)
		return
	}
	c.JSON(http.StatusOK, papers)
}

func AddToCollection(c *gin.Context) {
	id, ok := paperIdParam(c)
	if !ok {
		return
	}
	if err := model.AddToCollection(sessionUserId(c), id); err != nil {
		if errors.Is(err, model.ErrPaperNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "file not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to add to collection", err)
		return
	}
	common.RespSuccessStr(c, "")
}

func RemoveFromCollection(c *gin.Context) {
	id, ok := paperIdParam(c)
	if !ok {
		return
	}
	if err := model.RemoveFromCollection(sessionUserId(c), id); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to remove from collection", err)
		return
	}
	common.RespSuccessStr(c, "")
}
