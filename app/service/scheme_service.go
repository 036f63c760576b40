package service

import (
	"errors"
	"time"

	"p3m-backend/app/model"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemeInput adalah payload create/update skema pendanaan.
type SchemeInput struct {
	Kode         string
	Nama         string
	Kategori     model.SchemeCategory
	DanaMin      float64
	DanaMax      float64
	TanggalBuka  time.Time
	TanggalTutup *time.Time
	BatasAnggota int
	Status       string
}

// SchemeService mengelola data referensi skema pendanaan (CUD khusus admin,
// read untuk semua role terautentikasi).
type SchemeService interface {
	Create(in SchemeInput) (*model.Scheme, error)
	Update(id uuid.UUID, in SchemeInput) (*model.Scheme, error)
	Delete(id uuid.UUID) error
	Detail(id uuid.UUID) (*model.Scheme, error)
	List(page, limit int, status string) ([]model.Scheme, int64, error)
}

type schemeService struct {
	schemeRepo repository.SchemeRepository
}

// NewSchemeService membuat instance SchemeService.
func NewSchemeService(schemeRepo repository.SchemeRepository) SchemeService {
	return &schemeService{schemeRepo: schemeRepo}
}

func validateSchemeInput(in SchemeInput) error {
	switch in.Kategori {
	case model.CategoryPenelitian, model.CategoryPengabdian,
		model.CategoryHibahInternal, model.CategoryHibahExternal:
	default:
		return utils.NewValidationError("Kategori skema tidak dikenal")
	}

	if in.DanaMax > 0 && in.DanaMin > in.DanaMax {
		return utils.NewValidationError("Dana minimum melebihi dana maksimum")
	}
	if in.TanggalTutup != nil && in.TanggalTutup.Before(in.TanggalBuka) {
		return utils.NewValidationError("Tanggal tutup mendahului tanggal buka")
	}
	if in.BatasAnggota < 1 {
		return utils.NewValidationError("Batas anggota minimal 1")
	}
	if in.Status != model.SchemeAktif && in.Status != model.SchemeNonaktif {
		return utils.NewValidationError("Status skema harus aktif atau nonaktif")
	}
	return nil
}

func (s *schemeService) Create(in SchemeInput) (*model.Scheme, error) {
	if err := validateSchemeInput(in); err != nil {
		return nil, err
	}

	// Kode skema harus unik.
	if _, err := s.schemeRepo.FindByKode(in.Kode); err == nil {
		return nil, utils.NewConflictError("Kode skema sudah dipakai")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	scheme := &model.Scheme{
		ID:           uuid.New(),
		Kode:         in.Kode,
		Nama:         in.Nama,
		Kategori:     in.Kategori,
		DanaMin:      in.DanaMin,
		DanaMax:      in.DanaMax,
		TanggalBuka:  in.TanggalBuka,
		TanggalTutup: in.TanggalTutup,
		BatasAnggota: in.BatasAnggota,
		Status:       in.Status,
	}

	if err := s.schemeRepo.Create(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *schemeService) Update(id uuid.UUID, in SchemeInput) (*model.Scheme, error) {
	scheme, err := s.findScheme(id)
	if err != nil {
		return nil, err
	}

	if err := validateSchemeInput(in); err != nil {
		return nil, err
	}

	if in.Kode != scheme.Kode {
		if _, err := s.schemeRepo.FindByKode(in.Kode); err == nil {
			return nil, utils.NewConflictError("Kode skema sudah dipakai")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	scheme.Kode = in.Kode
	scheme.Nama = in.Nama
	scheme.Kategori = in.Kategori
	scheme.DanaMin = in.DanaMin
	scheme.DanaMax = in.DanaMax
	scheme.TanggalBuka = in.TanggalBuka
	scheme.TanggalTutup = in.TanggalTutup
	scheme.BatasAnggota = in.BatasAnggota
	scheme.Status = in.Status

	if err := s.schemeRepo.Update(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (s *schemeService) Delete(id uuid.UUID) error {
	if _, err := s.findScheme(id); err != nil {
		return err
	}

	// Skema tidak boleh dihapus selama masih direferensikan proposal.
	count, err := s.schemeRepo.CountProposals(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.NewConflictError("Skema masih dipakai oleh proposal")
	}

	return s.schemeRepo.Delete(id)
}

func (s *schemeService) Detail(id uuid.UUID) (*model.Scheme, error) {
	return s.findScheme(id)
}

func (s *schemeService) List(page, limit int, status string) ([]model.Scheme, int64, error) {
	return s.schemeRepo.FindAll(page, limit, status)
}

func (s *schemeService) findScheme(id uuid.UUID) (*model.Scheme, error) {
	scheme, err := s.schemeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Skema tidak ditemukan")
		}
		return nil, err
	}
	return scheme, nil
}
