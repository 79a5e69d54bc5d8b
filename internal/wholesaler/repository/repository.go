package repository

import (
	"time"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"gorm.io/gorm"
)

type GormWholesalerRepository struct {
	db *gorm.DB
}

func NewGormWholesalerRepository(db *gorm.DB) *GormWholesalerRepository {
	return &GormWholesalerRepository{db: db}
}

func (r *GormWholesalerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Wholesaler{})
}

func (r *GormWholesalerRepository) Create(wholesaler *domain.Wholesaler) error {
	return r.db.Create(wholesaler).Error
}

func (r *GormWholesalerRepository) FindByID(id uint) (*domain.Wholesaler, error) {
	var wholesaler domain.Wholesaler
	err := r.db.First(&wholesaler, id).Error
	if err != nil {
		return nil, err
	}
	return &wholesaler, nil
}

func (r *GormWholesalerRepository) FindAll() ([]domain.Wholesaler, error) {
	var wholesalers []domain.Wholesaler
	err := r.db.Order("id ASC").Find(&wholesalers).Error
	return wholesalers, err
}

func (r *GormWholesalerRepository) FindActive() ([]domain.Wholesaler, error) {
	var wholesalers []domain.Wholesaler
	err := r.db.Where("active = ?", true).Order("id ASC").Find(&wholesalers).Error
	return wholesalers, err
}

func (r *GormWholesalerRepository) Update(wholesaler *domain.Wholesaler) error {
	return r.db.Save(wholesaler).Error
}

func (r *GormWholesalerRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Wholesaler{}, id).Error
}

func (r *GormWholesalerRepository) UpdateSyncResult(id uint, status string, productCount int, syncedAt time.Time) error {
	return r.db.Model(&domain.Wholesaler{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"product_count": productCount,
		"last_sync_at":  syncedAt,
	}).Error
}
