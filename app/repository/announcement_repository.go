package repository

import (
	"p3m-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnouncementRepository: persistensi pengumuman (data referensi).
type AnnouncementRepository interface {
	Create(a *model.Announcement) error
	Update(a *model.Announcement) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Announcement, error)
	FindAll(page, limit int) ([]model.Announcement, int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *model.Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) Update(a *model.Announcement) error {
	return r.db.Save(a).Error
}

func (r *announcementRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Announcement{}, "id = ?", id).Error
}

func (r *announcementRepository) FindByID(id uuid.UUID) (*model.Announcement, error) {
	var a model.Announcement
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) FindAll(page, limit int) ([]model.Announcement, int64, error) {
	var list []model.Announcement
	var total int64

	if err := r.db.Model(&model.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}
