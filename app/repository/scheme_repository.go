package repository

import (
	"p3m-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemeRepository mendefinisikan operasi database untuk skema pendanaan.
type SchemeRepository interface {
	Create(scheme *model.Scheme) error
	Update(scheme *model.Scheme) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Scheme, error)
	FindByKode(kode string) (*model.Scheme, error)
	FindAll(page, limit int, status string) ([]model.Scheme, int64, error)

	// CountProposals menghitung proposal yang masih mereferensikan skema.
	// Skema tidak boleh dihapus selama hitungan > 0.
	CountProposals(schemeID uuid.UUID) (int64, error)
}

type schemeRepository struct {
	db *gorm.DB
}

// NewSchemeRepository membuat instance baru SchemeRepository.
func NewSchemeRepository(db *gorm.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) Create(scheme *model.Scheme) error {
	return r.db.Create(scheme).Error
}

func (r *schemeRepository) Update(scheme *model.Scheme) error {
	return r.db.Save(scheme).Error
}

func (r *schemeRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Scheme{}, "id = ?", id).Error
}

func (r *schemeRepository) FindByID(id uuid.UUID) (*model.Scheme, error) {
	var scheme model.Scheme
	if err := r.db.Where("id = ?", id).First(&scheme).Error; err != nil {
		return nil, err
	}
	return &scheme, nil
}

func (r *schemeRepository) FindByKode(kode string) (*model.Scheme, error) {
	var scheme model.Scheme
	if err := r.db.Where("kode = ?", kode).First(&scheme).Error; err != nil {
		return nil, err
	}
	return &scheme, nil
}

// FindAll mengambil daftar skema, opsional difilter status (aktif/nonaktif).
func (r *schemeRepository) FindAll(page, limit int, status string) ([]model.Scheme, int64, error) {
	var schemes []model.Scheme
	var total int64

	q := r.db.Model(&model.Scheme{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Order("kode ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&schemes).Error
	return schemes, total, err
}

func (r *schemeRepository) CountProposals(schemeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Proposal{}).
		Where("scheme_id = ?", schemeID).
		Count(&count).Error
	return count, err
}
