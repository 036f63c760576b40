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

// RegisterInput adalah payload pendaftaran mandiri.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     model.Role
	NIDN     *string
	NIM      *string
}

// AuthService mendefinisikan layanan autentikasi.
type AuthService interface {
	// Register mendaftarkan akun baru. Pendaftaran mandiri terbatas untuk
	// dosen dan mahasiswa; akun admin/reviewer dibuat lewat manajemen user.
	Register(in RegisterInput) (*model.User, error)

	// Login memeriksa email+password dan mengembalikan user aktif.
	Login(email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService menghubungkan Service dengan Repository.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(in RegisterInput) (*model.User, error) {
	if in.Role != model.RoleDosen && in.Role != model.RoleMahasiswa {
		return nil, utils.NewValidationError("Pendaftaran mandiri hanya untuk dosen dan mahasiswa")
	}
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

	// Hash password supaya tidak pernah tersimpan mentah.
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

func (s *authService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("email tidak ditemukan")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("password salah")
	}

	if !user.IsActive {
		return nil, errors.New("akun anda dinonaktifkan")
	}

	return user, nil
}
