package model

import (
	"errors"
	"time"

	pserrors "papershare/backend/common/errors"

	"gorm.io/gorm"
)

var (
	ErrPaperNotFound      = errors.New(pserrors.ErrPaperNotFound)
	ErrPaperMissingFields = errors.New(pserrors.ErrInvalidParam)
)

// Paper is the metadata record of an uploaded document. Filename is the name
// the uploader gave the file; Link is the collision-resistant stored name
// under the upload directory. Records are immutable after creation.
type Paper struct {
	Id             int64     `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"size:255;not null"`
	Filename       string    `json:"filename" gorm:"size:255;not null"`
	Link           string    `json:"link" gorm:"uniqueIndex;size:100;not null"`
	Path           string    `json:"path" gorm:"size:255"`
	FileType       string    `json:"file_type" gorm:"size:100"`
	Size           int64     `json:"size"`
	EducationLevel string    `json:"education_level" gorm:"size:50"`
	Institution    string    `json:"institution" gorm:"size:100"`
	Subject        string    `json:"subject" gorm:"size:100"`
	Year           int       `json:"year"`
	UploadedBy     int64     `json:"uploaded_by" gorm:"index;not null"`
	CreatedAt      time.Time `json:"upload_date"`
}

// Uploader is the subset of user fields exposed next to a paper.
type Uploader struct {
	Id                int64  `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// PaperView is a Paper annotated for a specific viewer.
type PaperView struct {
	Paper
	Uploader     Uploader `json:"uploader"`
	InCollection bool     `json:"in_collection"`
	IsUploader   bool     `json:"is_uploader"`
}

func (paper *Paper) Insert() error {
	if paper.Title == "" || paper.Link == "" || paper.UploadedBy == 0 {
		return ErrPaperMissingFields
	}
	return DB.Create(paper).Error
}

func GetPaperById(id int64) (*Paper, error) {
	if id == 0 {
		return nil, ErrPaperNotFound
	}
	var paper Paper
	if err := DB.First(&paper, id).Error; err != nil {
		return nil, ErrPaperNotFound
	}
	return &paper, nil
}

func GetPaperByLink(link string) (*Paper, error) {
	var paper Paper
	if err := DB.Where("link = ?", link).First(&paper).Error; err != nil {
		return nil, ErrPaperNotFound
	}
	return &paper, nil
}

// DeletePaperWithReferences removes the metadata record and every collection
// entry pointing at it in one transaction, so no dangling reference is
// observable once the delete returns.
func DeletePaperWithReferences(id int64) error {
	paper, err := GetPaperById(id)
	if err != nil {
		return err
	}
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", paper.Id).Delete(&SavedPaper{}).Error; err != nil {
			return err
		}
		return tx.Delete(paper).Error
	})
}

// ListPapers returns all papers, newest upload first, with uploader info.
// When viewerId is non-zero each entry carries the in_collection and
// is_uploader flags for that viewer. A deleted uploader leaves a zero-value
// Uploader rather than failing the listing.
func ListPapers(viewerId int64) ([]*PaperView, error) {
	var papers []Paper
	if err := DB.Order("created_at DESC, id DESC").Find(&papers).Error; err != nil {
		return nil, err
	}

	uploaders, err := uploadersByIds(papers)
	if err != nil {
		return nil, err
	}

	var saved map[int64]bool
	if viewerId != 0 {
		saved, err = SavedPaperIds(viewerId)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*PaperView, 0, len(papers))
	for _, paper := range papers {
		view := &PaperView{
			Paper:    paper,
			Uploader: uploaders[paper.UploadedBy],
		}
		if viewerId != 0 {
			view.InCollection = saved[paper.Id]
			view.IsUploader = paper.UploadedBy == viewerId
		}
		views = append(views, view)
	}
	return views, nil
}

func uploadersByIds(papers []Paper) (map[int64]Uploader, error) {
	ids := make([]int64, 0, len(papers))
	seen := make(map[int64]bool, len(papers))
	for _, paper := range papers {
		if !seen[paper.UploadedBy] {
			seen[paper.UploadedBy] = true
			ids = append(ids, paper.UploadedBy)
		}
	}
	uploaders := make(map[int64]Uploader, len(ids))
	if len(ids) == 0 {
		return uploaders, nil
	}
	var users []User
	if err := DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		uploaders[user.Id] = Uploader{
			Id:                user.Id,
			Username:          user.Username,
			ProfilePictureURL: user.ProfilePicture.URL,
		}
	}
	return uploaders, nil
}
