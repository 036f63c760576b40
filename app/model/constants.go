package model

import "fmt"

// Role adalah peran pengguna P3M. Enum tertutup: kalau menambah nilai baru,
// perbarui juga policy.RoleLevel dan seluruh switch yang memakai Role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDosen     Role = "dosen"
	RoleMahasiswa Role = "mahasiswa"
	RoleReviewer  Role = "reviewer"
)

// ValidRole mengecek apakah string role termasuk enum yang dikenal.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDosen, RoleMahasiswa, RoleReviewer:
		return true
	}
	return false
}

// ProposalStatus adalah status siklus hidup proposal.
type ProposalStatus string

const (
	StatusDraft     ProposalStatus = "draft"
	StatusSubmitted ProposalStatus = "submitted"
	StatusReview    ProposalStatus = "review"
	StatusApproved  ProposalStatus = "approved"
	StatusRejected  ProposalStatus = "rejected"
	StatusRevision  ProposalStatus = "revision"
	StatusCompleted ProposalStatus = "completed"
)

// EditableStatuses: proposal hanya boleh diedit/disubmit dari status ini.
var EditableStatuses = []ProposalStatus{StatusDraft, StatusRevision}

// DeletableStatuses: proposal hanya boleh dihapus dari status ini.
var DeletableStatuses = []ProposalStatus{StatusDraft, StatusRejected}

// ReviewableStatuses: jendela review. Review hanya boleh dibuat/diubah
// selama proposal masih di salah satu status ini.
var ReviewableStatuses = []ProposalStatus{StatusSubmitted, StatusReview}

// StatusIn mengecek keanggotaan status pada sebuah himpunan.
func StatusIn(s ProposalStatus, set []ProposalStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Rekomendasi adalah verdict reviewer terhadap sebuah proposal.
type Rekomendasi string

const (
	RekomendasiLayak      Rekomendasi = "layak"
	RekomendasiTidakLayak Rekomendasi = "tidak_layak"
	RekomendasiRevisi     Rekomendasi = "revisi"
)

// StatusForRekomendasi memetakan rekomendasi reviewer ke status proposal.
// Pemetaan ini total dan deterministik untuk ketiga nilai enum; dipakai
// identik oleh path create maupun update review.
func StatusForRekomendasi(r Rekomendasi) (ProposalStatus, error) {
	switch r {
	case RekomendasiLayak:
		return StatusApproved, nil
	case RekomendasiTidakLayak:
		return StatusRejected, nil
	case RekomendasiRevisi:
		return StatusRevision, nil
	}
	return "", fmt.Errorf("rekomendasi tidak dikenal: %s", r)
}

// SchemeCategory adalah kategori skema pendanaan.
type SchemeCategory string

const (
	CategoryPenelitian    SchemeCategory = "penelitian"
	CategoryPengabdian    SchemeCategory = "pengabdian"
	CategoryHibahInternal SchemeCategory = "hibah_internal"
	CategoryHibahExternal SchemeCategory = "hibah_eksternal"
)

// Status skema pendanaan.
const (
	SchemeAktif    = "aktif"
	SchemeNonaktif = "nonaktif"
)

// MemberRole menandai peran user di dalam tim proposal.
type MemberRole string

const (
	MemberKetua   MemberRole = "ketua"
	MemberAnggota MemberRole = "anggota"
)
