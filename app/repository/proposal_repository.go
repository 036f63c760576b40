package repository

import (
	"time"

	"p3m-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalFilter membatasi query list proposal sesuai visibilitas role.
// Field nil berarti tanpa batasan pada dimensi tersebut.
type ProposalFilter struct {
	// KetuaOrMemberID: proposal di mana user ini ketua ATAU anggota tim.
	KetuaOrMemberID *uuid.UUID
	// ReviewerID: proposal yang ditugaskan ke reviewer ini.
	ReviewerID *uuid.UUID
	// Statuses: batasi ke himpunan status tertentu.
	Statuses []model.ProposalStatus
}

// ProposalRepository adalah boundary persistensi entitas proposal beserta
// baris tim dan dokumennya.
type ProposalRepository interface {
	// CreateWithMembers menyimpan proposal + baris anggota tim secara atomik:
	// kalau insert anggota gagal, insert proposal ikut batal.
	CreateWithMembers(p *model.Proposal, members []model.ProposalMember) error

	// UpdateWithMembers menyimpan perubahan field proposal dan mengganti
	// seluruh baris anggota non-ketua dalam satu transaksi.
	UpdateWithMembers(p *model.Proposal, members []model.ProposalMember) error

	FindByID(id uuid.UUID) (*model.Proposal, error)
	FindAll(filter ProposalFilter, page, limit int) ([]model.Proposal, int64, error)
	Delete(id uuid.UUID) error

	// MarkSubmitted mengeset status submitted + timestamp pengajuan.
	MarkSubmitted(id uuid.UUID, at time.Time) error

	// UpdateStatus mengganti status tanpa menyentuh kolom lain.
	UpdateStatus(id uuid.UUID, status model.ProposalStatus) error

	// AssignReviewer mengeset status review dan menandai reviewer bertugas.
	AssignReviewer(proposalID, reviewerID uuid.UUID) error

	CountDocuments(proposalID uuid.UUID) (int64, error)
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository membuat instance baru ProposalRepository.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) CreateWithMembers(p *model.Proposal, members []model.ProposalMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Documents", "Scheme", "Ketua", "Reviewer").Create(p).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ProposalID = p.ID
		}
		if len(members) > 0 {
			if err := tx.Omit("User").Create(&members).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *proposalRepository) UpdateWithMembers(p *model.Proposal, members []model.ProposalMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Documents", "Scheme", "Ketua", "Reviewer").Save(p).Error; err != nil {
			return err
		}
		// Ganti seluruh baris tim: hapus lama, tulis ulang set baru.
		if err := tx.Where("proposal_id = ?", p.ID).Delete(&model.ProposalMember{}).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ProposalID = p.ID
		}
		if len(members) > 0 {
			if err := tx.Omit("User").Create(&members).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *proposalRepository) FindByID(id uuid.UUID) (*model.Proposal, error) {
	var p model.Proposal
	err := r.db.
		Preload("Scheme").
		Preload("Ketua").
		Preload("Reviewer").
		Preload("Members.User").
		Preload("Documents").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proposalRepository) FindAll(filter ProposalFilter, page, limit int) ([]model.Proposal, int64, error) {
	var proposals []model.Proposal
	var total int64

	q := r.db.Model(&model.Proposal{})

	if filter.KetuaOrMemberID != nil {
		id := *filter.KetuaOrMemberID
		q = q.Where(
			"ketua_id = ? OR id IN (SELECT proposal_id FROM proposal_members WHERE user_id = ?)",
			id, id,
		)
	}
	if filter.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("Scheme").
		Preload("Ketua").
		Preload("Members.User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&proposals).Error
	return proposals, total, err
}

// Delete menghapus proposal; baris anggota dan metadata dokumen ikut terhapus
// lewat constraint OnDelete:CASCADE. Blob file dibersihkan terpisah
// (best-effort) oleh DocumentRepository sebelum pemanggilan ini.
func (r *proposalRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proposal_id = ?", id).Delete(&model.ProposalMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", id).Delete(&model.ProposalDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Proposal{}, "id = ?", id).Error
	})
}

func (r *proposalRepository) MarkSubmitted(id uuid.UUID, at time.Time) error {
	return r.db.Model(&model.Proposal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.StatusSubmitted,
			"submitted_at": at,
		}).Error
}

func (r *proposalRepository) UpdateStatus(id uuid.UUID, status model.ProposalStatus) error {
	return r.db.Model(&model.Proposal{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *proposalRepository) AssignReviewer(proposalID, reviewerID uuid.UUID) error {
	return r.db.Model(&model.Proposal{}).
		Where("id = ?", proposalID).
		Updates(map[string]interface{}{
			"status":      model.StatusReview,
			"reviewer_id": reviewerID,
		}).Error
}

func (r *proposalRepository) CountDocuments(proposalID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProposalDocument{}).
		Where("proposal_id = ?", proposalID).
		Count(&count).Error
	return count, err
}
