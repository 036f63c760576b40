package service

import (
	"errors"

	"p3m-backend/app/model"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput adalah payload pembuatan akun oleh admin.
type UserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     model.Role
	NIDN     *string
	NIM      *string
}

// UserService: manajemen akun oleh admin. Penghapusan selalu soft-disable
// (flip is_active) karena akun bisa memiliki proposal/review terkait.
type UserService interface {
	Create(in UserInput) (*model.User, error)
	Update(id uuid.UUID, fullName, email string) (*model.User, error)
	UpdateRole(id uuid.UUID, role model.Role, nidn, nim *string) (*model.User, error)
	Deactivate(id uuid.UUID) error
	Detail(id uuid.UUID) (*model.User, error)
	List(page, limit int) ([]model.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService membuat instance UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// validateIdentifiers menegakkan invariant identitas per role:
// dosen/reviewer wajib NIDN (tanpa NIM), mahasiswa wajib NIM (tanpa NIDN),
// admin tanpa keduanya.
func validateIdentifiers(role model.Role, nidn, nim *string) error {
	hasNIDN := nidn != nil && *nidn != ""
	hasNIM := nim != nil && *nim != ""

	switch role {
	case model.RoleDosen, model.RoleReviewer:
		if !hasNIDN {
			return utils.NewValidationError("NIDN wajib diisi untuk dosen dan reviewer")
		}
		if hasNIM {
			return utils.NewValidationError("NIM tidak berlaku untuk dosen dan reviewer")
		}
	case model.RoleMahasiswa:
		if !hasNIM {
			return utils.NewValidationError("NIM wajib diisi untuk mahasiswa")
		}
		if hasNIDN {
			return utils.NewValidationError("NIDN tidak berlaku untuk mahasiswa")
		}
	case model.RoleAdmin:
		if hasNIDN || hasNIM {
			return utils.NewValidationError("Admin tidak memakai NIDN/NIM")
		}
	default:
		return utils.NewValidationError("Role tidak dikenal")
	}
	return nil
}

func (s *userService) Create(in UserInput) (*model.User, error) {
	if err := validateIdentifiers(in.Role, in.NIDN, in.NIM); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, utils.NewConflictError("Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(in.Username); err == nil {
		return nil, utils.NewConflictError("Username sudah dipakai")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		NIDN:         in.NIDN,
		NIM:          in.NIM,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(id uuid.UUID, fullName, email string) (*model.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if email != "" && email != user.Email {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, utils.NewConflictError("Email sudah terdaftar")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRole(id uuid.UUID, role model.Role, nidn, nim *string) (*model.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if err := validateIdentifiers(role, nidn, nim); err != nil {
		return nil, err
	}

	user.Role = role
	user.NIDN = nidn
	user.NIM = nim

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Deactivate(id uuid.UUID) error {
	if _, err := s.findUser(id); err != nil {
		return err
	}
	return s.userRepo.SetActive(id, false)
}

func (s *userService) Detail(id uuid.UUID) (*model.User, error) {
	return s.findUser(id)
}

func (s *userService) List(page, limit int) ([]model.User, int64, error) {
	return s.userRepo.FindAll(page, limit)
}

func (s *userService) findUser(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User tidak ditemukan")
		}
		return nil, err
	}
	return user, nil
}
