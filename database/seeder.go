package database

import (
	"log"
	"time"

	"p3m-backend/app/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil sekali di main.go setelah InitDB berhasil. Idempotent, skip
// kalau data sudah ada.
func RunSeeders(db *gorm.DB) {
	SeedUsers(db)
	SeedSchemes(db)
}

// SeedUsers menambahkan satu user per role:
// admin, dosen, mahasiswa, reviewer (password: 123123).
func SeedUsers(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] User sudah ada, skip seeding.")
		return
	}

	password := "123123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)

	nidnDosen := "0012345601"
	nidnReviewer := "0012345602"
	nim := "230001"

	users := []model.User{
		{
			ID:           uuid.New(),
			Username:     "admin",
			Email:        "admin@kampus.ac.id",
			PasswordHash: string(hash),
			FullName:     "Admin P3M",
			Role:         model.RoleAdmin,
		},
		{
			ID:           uuid.New(),
			Username:     "dosen1",
			Email:        "dosen1@kampus.ac.id",
			PasswordHash: string(hash),
			FullName:     "Dosen Satu",
			Role:         model.RoleDosen,
			NIDN:         &nidnDosen,
		},
		{
			ID:           uuid.New(),
			Username:     "mahasiswa1",
			Email:        "mahasiswa1@kampus.ac.id",
			PasswordHash: string(hash),
			FullName:     "Mahasiswa Satu",
			Role:         model.RoleMahasiswa,
			NIM:          &nim,
		},
		{
			ID:           uuid.New(),
			Username:     "reviewer1",
			Email:        "reviewer1@kampus.ac.id",
			PasswordHash: string(hash),
			FullName:     "Reviewer Satu",
			Role:         model.RoleReviewer,
			NIDN:         &nidnReviewer,
		},
	}

	for i := range users {
		users[i].IsActive = true
	}

	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed users: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 4 user (admin, dosen1, mahasiswa1, reviewer1), password: 123123")
}

// SeedSchemes menambahkan dua skema awal supaya proposal bisa langsung
// dibuat setelah instalasi.
func SeedSchemes(db *gorm.DB) {
	var count int64
	db.Model(&model.Scheme{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Skema sudah ada, skip seeding.")
		return
	}

	now := time.Now()
	tutup := now.AddDate(1, 0, 0)

	schemes := []model.Scheme{
		{
			ID:           uuid.New(),
			Kode:         "PDP",
			Nama:         "Penelitian Dosen Pemula",
			Kategori:     model.CategoryPenelitian,
			DanaMin:      5000000,
			DanaMax:      20000000,
			TanggalBuka:  now,
			TanggalTutup: &tutup,
			BatasAnggota: 3,
			Status:       model.SchemeAktif,
		},
		{
			ID:           uuid.New(),
			Kode:         "PKM",
			Nama:         "Pengabdian Kepada Masyarakat",
			Kategori:     model.CategoryPengabdian,
			DanaMin:      3000000,
			DanaMax:      10000000,
			TanggalBuka:  now,
			BatasAnggota: 5,
			Status:       model.SchemeAktif,
		},
	}

	if err := db.Create(&schemes).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed schemes: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed skema PDP dan PKM")
}
