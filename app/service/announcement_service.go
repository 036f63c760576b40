package service

import (
	"errors"

	"p3m-backend/app/model"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnouncementService: CRUD pengumuman (CUD admin, read semua role).
type AnnouncementService interface {
	Create(actorID uuid.UUID, judul, isi string) (*model.Announcement, error)
	Update(id uuid.UUID, judul, isi string) (*model.Announcement, error)
	Delete(id uuid.UUID) error
	Detail(id uuid.UUID) (*model.Announcement, error)
	List(page, limit int) ([]model.Announcement, int64, error)
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) Create(actorID uuid.UUID, judul, isi string) (*model.Announcement, error) {
	a := &model.Announcement{
		ID:        uuid.New(),
		Judul:     judul,
		Isi:       isi,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Update(id uuid.UUID, judul, isi string) (*model.Announcement, error) {
	a, err := s.find(id)
	if err != nil {
		return nil, err
	}
	a.Judul = judul
	a.Isi = isi
	if err := s.repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Delete(id uuid.UUID) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *announcementService) Detail(id uuid.UUID) (*model.Announcement, error) {
	return s.find(id)
}

func (s *announcementService) List(page, limit int) ([]model.Announcement, int64, error) {
	return s.repo.FindAll(page, limit)
}

func (s *announcementService) find(id uuid.UUID) (*model.Announcement, error) {
	a, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Pengumuman tidak ditemukan")
		}
		return nil, err
	}
	return a, nil
}
