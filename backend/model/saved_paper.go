package model

import (
	"time"

	"gorm.io/gorm/clause"
)

// SavedPaper is one entry of a user's collection. The composite unique index
// is what makes Add idempotent: a duplicate insert hits the index and is
// ignored instead of producing a second row. CreatedAt preserves the order
// papers were saved in.
type SavedPaper struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UserId    int64     `json:"user_id" gorm:"uniqueIndex:idx_saved_user_paper;not null"`
	PaperId   int64     `json:"paper_id" gorm:"uniqueIndex:idx_saved_user_paper;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// AddToCollection appends a paper to the user's collection. Saving the same
// paper twice is a no-op, resolved by the database rather than a
// read-modify-write in the handler.
func AddToCollection(userId int64, paperId int64) error {
	if _, err := GetPaperById(paperId); err != nil {
		return err
	}
	entry := SavedPaper{UserId: userId, PaperId: paperId}
	return DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// RemoveFromCollection is idempotent: removing an absent paper is a no-op.
func RemoveFromCollection(userId int64, paperId int64) error {
	return DB.Where("user_id = ? AND paper_id = ?", userId, paperId).Delete(&SavedPaper{}).Error
}

// SavedPaperIds returns the set of paper ids in the user's collection.
func SavedPaperIds(userId int64) (map[int64]bool, error) {
	var entries []SavedPaper
	if err := DB.Where("user_id = ?", userId).Find(&entries).Error; err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(entries))
	for _, entry := range entries {
		ids[entry.PaperId] = true
	}
	return ids, nil
}

// CountSavedPaper reports how many collection rows reference the pair. Only
// used by tests to assert the no-duplicate invariant.
func CountSavedPaper(userId int64, paperId int64) (int64, error) {
	var count int64
	err := DB.Model(&SavedPaper{}).Where("user_id = ? AND paper_id = ?", userId, paperId).Count(&count).Error
	return count, err
}

// ListCollection returns the user's saved papers in the order they were
// saved, each with uploader info.
func ListCollection(userId int64) ([]*PaperView, error) {
	var entries []SavedPaper
	if err := DB.Where("user_id = ?", userId).Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []*PaperView{}, nil
	}

	paperIds := make([]int64, 0, len(entries))
	for _, entry := range entries {
		paperIds = append(paperIds, entry.PaperId)
	}
	var papers []Paper
	if err := DB.Where("id IN ?", paperIds).Find(&papers).Error; err != nil {
		return nil, err
	}
	byId := make(map[int64]Paper, len(papers))
	for _, paper := range papers {
		byId[paper.Id] = paper
	}

	uploaders, err := uploadersByIds(papers)
	if err != nil {
		return nil, err
	}

	views := make([]*PaperView, 0, len(entries))
	for _, entry := range entries {
		paper, ok := byId[entry.PaperId]
		if !ok {
			continue
		}
		views = append(views, &PaperView{
			Paper:        paper,
			Uploader:     uploaders[paper.UploadedBy],
			InCollection: true,
			IsUploader:   paper.UploadedBy == userId,
		})
	}
	return views, nil
}
