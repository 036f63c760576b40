// Package policy berisi evaluator kebijakan akses P3M: fungsi murni yang
// memutuskan boleh/tidaknya sebuah (user, resource, aksi) tanpa I/O.
// Semua switch atas model.Role exhaustive; role di luar enum selalu ditolak.
package policy

import (
	"p3m-backend/app/model"

	"github.com/google/uuid"
)

// RoleLevel mengembalikan level hierarki role untuk cek level-minimum.
// admin(4) > reviewer(3) > dosen(2) > mahasiswa(1). Role tak dikenal = 0.
func RoleLevel(r model.Role) int {
	switch r {
	case model.RoleAdmin:
		return 4
	case model.RoleReviewer:
		return 3
	case model.RoleDosen:
		return 2
	case model.RoleMahasiswa:
		return 1
	}
	return 0
}

// ProposalFacts adalah fakta kepemilikan yang dibutuhkan evaluator.
// Diisi dari entitas proposal oleh pemanggil; evaluator tidak membaca store.
type ProposalFacts struct {
	KetuaID           uuid.UUID
	MemberIDs         []uuid.UUID
	ReviewerID        *uuid.UUID
	DosenPembimbingID *uuid.UUID
}

// FactsFor membangun ProposalFacts dari entitas proposal.
func FactsFor(p *model.Proposal) ProposalFacts {
	f := ProposalFacts{
		KetuaID:           p.KetuaID,
		ReviewerID:        p.ReviewerID,
		DosenPembimbingID: p.DosenPembimbingID,
	}
	for _, m := range p.Members {
		f.MemberIDs = append(f.MemberIDs, m.UserID)
	}
	return f
}

// IsOwner: actor adalah ketua proposal.
func IsOwner(f ProposalFacts, actorID uuid.UUID) bool {
	return f.KetuaID == actorID
}

// IsMember: actor terdaftar di tim proposal (termasuk baris ketua).
func IsMember(f ProposalFacts, actorID uuid.UUID) bool {
	for _, id := range f.MemberIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// IsAssignedReviewer: actor adalah reviewer yang ditugaskan.
func IsAssignedReviewer(f ProposalFacts, actorID uuid.UUID) bool {
	return f.ReviewerID != nil && *f.ReviewerID == actorID
}

// CanViewProposal adalah aturan komposit baca detail proposal/dokumen:
// admin || ketua || anggota tim || reviewer yang ditugaskan.
func CanViewProposal(role model.Role, actorID uuid.UUID, f ProposalFacts) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleReviewer:
		return IsAssignedReviewer(f, actorID) || IsOwner(f, actorID) || IsMember(f, actorID)
	case model.RoleDosen, model.RoleMahasiswa:
		return IsOwner(f, actorID) || IsMember(f, actorID)
	}
	return false
}

// CanMutateProposal: mutasi field/tim/dokumen hanya oleh ketua atau admin.
func CanMutateProposal(role model.Role, actorID uuid.UUID, f ProposalFacts) bool {
	if role == model.RoleAdmin {
		return true
	}
	return IsOwner(f, actorID)
}

// CanSubmitProposal: submit hanya oleh ketua, bukan admin.
func CanSubmitProposal(actorID uuid.UUID, f ProposalFacts) bool {
	return IsOwner(f, actorID)
}

// CanCreateProposal: pembuatan proposal terbuka untuk dosen, mahasiswa, admin.
func CanCreateProposal(role model.Role) bool {
	switch role {
	case model.RoleAdmin, model.RoleDosen, model.RoleMahasiswa:
		return true
	case model.RoleReviewer:
		return false
	}
	return false
}

// CanViewReview menentukan visibilitas baca sebuah review:
// - mahasiswa: hanya review atas proposal yang ia ketuai
// - dosen: proposal yang ia ketuai atau ia bimbing (dosen pembimbing)
// - reviewer dan admin: tanpa batasan baca
func CanViewReview(role model.Role, actorID uuid.UUID, f ProposalFacts) bool {
	switch role {
	case model.RoleAdmin, model.RoleReviewer:
		return true
	case model.RoleDosen:
		return IsOwner(f, actorID) ||
			(f.DosenPembimbingID != nil && *f.DosenPembimbingID == actorID)
	case model.RoleMahasiswa:
		return IsOwner(f, actorID)
	}
	return false
}

// CanEditReview: reviewer hanya boleh mengubah review miliknya sendiri dan
// hanya selama proposal masih dalam jendela editable; admin bebas kapan pun.
func CanEditReview(role model.Role, actorID uuid.UUID, reviewOwnerID uuid.UUID, proposalStatus model.ProposalStatus) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleReviewer:
		return reviewOwnerID == actorID &&
			model.StatusIn(proposalStatus, model.ReviewableStatuses)
	case model.RoleDosen, model.RoleMahasiswa:
		return false
	}
	return false
}

// RoleAllowed adalah allowlist statis untuk endpoint tanpa dimensi kepemilikan
// (dipakai middleware.RequireRoles).
func RoleAllowed(role model.Role, allowed ...model.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
