package model

import (
	"time"

	"github.com/google/uuid"
)

// User merepresentasikan akun sistem P3M (admin, dosen, mahasiswa, reviewer).
// Invariant identitas: dosen/reviewer wajib punya NIDN, mahasiswa wajib punya NIM.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"fullName"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	NIDN         *string   `gorm:"type:varchar(20)" json:"nidn,omitempty"` // dosen/reviewer
	NIM          *string   `gorm:"type:varchar(20)" json:"nim,omitempty"`  // mahasiswa
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Scheme (skema pendanaan) adalah kategori hibah tempat proposal diajukan.
// Tidak boleh dihapus selama masih direferensikan proposal.
type Scheme struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Kode         string         `gorm:"unique;not null" json:"kode"`
	Nama         string         `gorm:"not null" json:"nama"`
	Kategori     SchemeCategory `gorm:"type:varchar(30);not null" json:"kategori"`
	DanaMin      float64        `json:"danaMin"`
	DanaMax      float64        `json:"danaMax"` // 0 = tanpa batas atas
	TanggalBuka  time.Time      `json:"tanggalBuka"`
	TanggalTutup *time.Time     `json:"tanggalTutup,omitempty"` // nil = selalu buka
	BatasAnggota int            `gorm:"not null;default:5" json:"batasAnggota"`
	Status       string         `gorm:"type:varchar(10);not null;default:'aktif';check:status IN ('aktif','nonaktif')" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Proposal adalah entitas utama P3M.
type Proposal struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Judul     string    `gorm:"not null" json:"judul"`
	Abstrak   string    `gorm:"type:text" json:"abstrak"`
	KataKunci string    `json:"kataKunci"`

	SchemeID uuid.UUID `gorm:"type:uuid;not null" json:"schemeId"`
	Scheme   Scheme    `gorm:"foreignKey:SchemeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"scheme"`

	// Ketua (lead), pembuat dan pemilik utama proposal.
	KetuaID uuid.UUID `gorm:"type:uuid;not null" json:"ketuaId"`
	Ketua   User      `gorm:"foreignKey:KetuaID" json:"ketua"`

	// Reviewer yang ditugaskan admin (nil selama belum ada).
	ReviewerID *uuid.UUID `gorm:"type:uuid" json:"reviewerId,omitempty"`
	Reviewer   *User      `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`

	// Relasi bimbingan. Diisi oleh manajemen user/tim, dipakai untuk
	// filter visibilitas review milik dosen.
	DosenPembimbingID *uuid.UUID `gorm:"type:uuid" json:"dosenPembimbingId,omitempty"`

	Tahun         int            `json:"tahun"`
	DanaDiusulkan *float64       `json:"danaDiusulkan,omitempty"`
	Status        ProposalStatus `gorm:"type:varchar(20);not null;default:'draft';check:status IN ('draft','submitted','review','approved','rejected','revision','completed')" json:"status"`
	SubmittedAt   *time.Time     `json:"submittedAt,omitempty"`

	Members   []ProposalMember   `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE;" json:"members"`
	Documents []ProposalDocument `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE;" json:"documents"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProposalMember adalah keanggotaan tim proposal. Baris ketua selalu ada
// tepat satu; sisanya anggota.
type ProposalMember struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProposalID uuid.UUID  `gorm:"type:uuid;not null;index" json:"proposalId"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null" json:"userId"`
	User       User       `gorm:"foreignKey:UserID" json:"user"`
	Peran      MemberRole `gorm:"type:varchar(10);not null" json:"peran"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// ProposalDocument adalah metadata dokumen yang menunjuk ke blob di MongoDB.
type ProposalDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;not null;index" json:"proposalId"`
	Nama       string    `gorm:"not null" json:"nama"`
	FilePath   string    `gorm:"not null" json:"filePath"` // mongo://documents/<hex objectid>
	Tipe       string    `gorm:"type:varchar(30)" json:"tipe"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

// Review adalah penilaian satu reviewer atas satu proposal.
// Unik per pasangan (proposal, reviewer).
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_proposal_reviewer" json:"proposalId"`
	Proposal   Proposal  `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE;" json:"proposal"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_proposal_reviewer" json:"reviewerId"`
	Reviewer   User      `gorm:"foreignKey:ReviewerID" json:"reviewer"`

	Skor        *float64    `json:"skor,omitempty"`
	Catatan     string      `gorm:"type:text" json:"catatan"`
	Rekomendasi Rekomendasi `gorm:"type:varchar(20);not null;check:rekomendasi IN ('layak','tidak_layak','revisi')" json:"rekomendasi"`

	ReviewedAt time.Time `gorm:"autoCreateTime" json:"reviewedAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Announcement adalah pengumuman P3M (data referensi, tanpa state machine).
type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Judul     string    `gorm:"not null" json:"judul"`
	Isi       string    `gorm:"type:text" json:"isi"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
