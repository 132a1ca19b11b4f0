package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shulecoach/shule_api/model"
)

// RateLimitRepository handles fixed-window rate limit counters.
type RateLimitRepository struct {
	BaseRepository
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *RateLimitRepository) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var record model.RateLimit
	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (ds *RateLimitRepository) CreateRateLimit(record *model.RateLimit) (*model.RateLimit, error) {
	id, _ := uuid.NewV7()
	record.ID = id.String()
	if err := ds.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (ds *RateLimitRepository) UpdateRateLimit(record *model.RateLimit) error {
	record.UpdatedAt = time.Now()
	return ds.db.Save(record).Error
}

// DeleteExpired drops counters whose window and block have both lapsed.
func (ds *RateLimitRepository) DeleteExpired(before time.Time) error {
	return ds.db.Where("window_start < ? AND (blocked_until IS NULL OR blocked_until < ?)", before, time.Now()).
		Delete(&model.RateLimit{}).Error
}
