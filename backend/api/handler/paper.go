package handler

import (
	"errors"
	"net/http"
	"strconv"

	"papershare/backend/common"
	"papershare/backend/model"
	"papershare/backend/service"

	"github.com/gin-gonic/gin"
)

func paperIdParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("fileId"), 10, 64)
	if err != nil || id == 0 {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid file id")
		return 0, false
	}
	return id, true
}

func UploadPaper(c *gin.Context) {
	fileHeader, err := c.FormFile("paper")
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "no paper in request", err)
		return
	}
	year, _ := strconv.Atoi(c.PostForm("year"))
	meta := service.PaperMeta{
		Title:          c.PostForm("title"),
		EducationLevel: c.PostForm("educationLevel"),
		Institution:    c.PostForm("institution"),
		Subject:        c.PostForm("subject"),
		Year:           year,
	}
	paper, err := service.UploadAndRecordPaper(sessionUserId(c), fileHeader, meta)
	if err != nil {
		if errors.Is(err, model.ErrPaperMissingFields) {
			common.RespErrorStr(c, http.StatusBadRequest, "title is required")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "upload failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "file": paper})
}

// ListPapers serves the shared listing. Annotation flags are filled in when
// the viewer is known; anonymous requests get the plain listing.
func ListPapers(c *gin.Context) {
	papers, err := model.ListPapers(sessionUserId(c))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to fetch papers", err)
		return
	}
	c.JSON(http.StatusOK, papers)
}

func DownloadPaper(c *gin.Context) {
	id, ok := paperIdParam(c)
	if !ok {
		return
	}
	fullPath, downloadName, err := service.ResolveDownload(id)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, "file not found")
		return
	}
	c.FileAttachment(fullPath, downloadName)
}

func DeletePaper(c *gin.Context) {
	id, ok := paperIdParam(c)
	if !ok {
		return
	}
	err := service.DeletePaper(id, sessionUserId(c), c.GetInt("role"))
	switch {
	case err == nil:
		common.RespSuccessStr(c, "file deleted successfully")
	case errors.Is(err, model.ErrPaperNotFound):
		common.RespErrorStr(c, http.StatusNotFound, "file not found")
	case errors.Is(err, service.ErrNotAllowed):
		common.RespErrorStr(c, http.StatusForbidden, "not authorized to delete this file")
	default:
		common.RespError(c, http.StatusInternalServerError, "failed to delete file", err)
	}
}
