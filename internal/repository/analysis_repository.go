package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"legalai-review/internal/model"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(record *model.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create analysis record failed: %w", err)
	}
	return nil
}

// ListByUserID returns the user's records newest first. The id tie-break keeps
// the order deterministic for records created within the same second.
func (r *AnalysisRepository) ListByUserID(userID uint) ([]model.AnalysisRecord, error) {
	var records []model.AnalysisRecord
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list analysis records failed: %w", err)
	}
	return records, nil
}

func (r *AnalysisRepository) GetByIDAndUserID(id, userID uint) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis record failed: %w", err)
	}
	return &record, nil
}

// LatestByFilename returns the most recent record with the given filename.
// Filenames are not unique; older records with the same name are not reachable
// through this lookup.
func (r *AnalysisRepository) LatestByFilename(userID uint, filename string) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	if err := r.db.Where("user_id = ? AND filename = ?", userID, filename).
		Order("created_at DESC").Order("id DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis record by filename failed: %w", err)
	}
	return &record, nil
}
