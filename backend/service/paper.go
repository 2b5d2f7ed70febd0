package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"papershare/backend/common"
	pserrors "papershare/backend/common/errors"
	"papershare/backend/model"

	"github.com/google/uuid"
)

var (
	ErrNotAllowed = errors.New(pserrors.ErrForbidden)
	ErrStorage    = errors.New(pserrors.ErrStorage)
)

// PaperMeta carries the classification fields of an upload form.
type PaperMeta struct {
	Title          string
	EducationLevel string
	Institution    string
	Subject        string
	Year           int
}

// saveUpload writes the uploaded bytes under the upload directory using a
// uuid-based name, so concurrent uploads of equally named files cannot
// collide. Returns the stored name (link).
func saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(common.UploadPath, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	link := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(common.UploadPath, link))
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write stored file: %w", err)
	}
	return link, nil
}

// removeStored deletes stored bytes best-effort: a failure is logged, never
// surfaced to the caller.
func removeStored(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		common.SysError(fmt.Sprintf("failed to remove stored file %s: %s", path, err.Error()))
	}
}

// UploadAndRecordPaper stores the bytes and creates the metadata record. If
// the record cannot be persisted the bytes are removed again.
func UploadAndRecordPaper(userId int64, fileHeader *multipart.FileHeader, meta PaperMeta) (*model.Paper, error) {
	link, err := saveUpload(fileHeader)
	if err != nil {
		return nil, ErrStorage
	}

	paper := &model.Paper{
		Title:          meta.Title,
		Filename:       fileHeader.Filename,
		Link:           link,
		Path:           filepath.Join(common.UploadPath, link),
		FileType:       fileHeader.Header.Get("Content-Type"),
		Size:           fileHeader.Size,
		EducationLevel: meta.EducationLevel,
		Institution:    meta.Institution,
		Subject:        meta.Subject,
		Year:           meta.Year,
		UploadedBy:     userId,
	}
	if err := paper.Insert(); err != nil {
		removeStored(paper.Path)
		return nil, err
	}
	return paper, nil
}

// DeletePaper removes a paper on behalf of a requester. Policy: the uploader
// or an admin may delete. The metadata delete and the collection cascade are
// one transaction; the disk removal that follows is best-effort.
func DeletePaper(paperId int64, requesterId int64, requesterRole int) error {
	paper, err := model.GetPaperById(paperId)
	if err != nil {
		return err
	}
	if requesterRole < common.RoleAdminUser && paper.UploadedBy != requesterId {
		return ErrNotAllowed
	}
	if err := model.DeletePaperWithReferences(paper.Id); err != nil {
		return err
	}
	removeStored(paper.Path)
	return nil
}

// ResolveDownload maps a paper id to the on-disk path and the filename the
// browser should save it as. Refuses paths that escape the upload directory.
func ResolveDownload(paperId int64) (string, string, error) {
	paper, err := model.GetPaperById(paperId)
	if err != nil {
		return "", "", err
	}
	fullPath := filepath.Join(common.UploadPath, paper.Link)
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(common.UploadPath)) {
		return "", "", ErrStorage
	}
	if _, err := os.Stat(fullPath); err != nil {
		return "", "", model.ErrPaperNotFound
	}
	return fullPath, paper.Filename, nil
}

// ReplaceProfilePicture stores the new picture, updates the user's
// descriptor, and removes the previous picture's bytes best-effort.
func ReplaceProfilePicture(userId int64, fileHeader *multipart.FileHeader) (*model.ProfilePicture, error) {
	user, err := model.GetUserById(userId)
	if err != nil {
		return nil, err
	}

	link, err := saveUpload(fileHeader)
	if err != nil {
		return nil, ErrStorage
	}

	previous := user.ProfilePicture
	user.ProfilePicture = model.ProfilePicture{
		Filename: link,
		Path:     filepath.Join(common.UploadPath, link),
		URL:      "/uploads/" + link,
	}
	if err := user.Update(false); err != nil {
		removeStored(filepath.Join(common.UploadPath, link))
		return nil, err
	}

	removeStored(previous.Path)
	return &user.ProfilePicture, nil
}
