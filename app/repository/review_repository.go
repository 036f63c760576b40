package repository

import (
	"p3m-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewFilter membatasi query list review sesuai visibilitas role.
type ReviewFilter struct {
	// KetuaID: review atas proposal yang diketuai user ini.
	KetuaID *uuid.UUID
	// PembimbingID: review atas proposal yang dibimbing dosen ini.
	// Kalau KetuaID juga terisi, keduanya digabung OR (dosen melihat
	// proposal yang ia ketuai maupun ia bimbing).
	PembimbingID *uuid.UUID
}

// ReviewRepository adalah boundary persistensi entitas review. Operasi yang
// menurunkan status proposal dari rekomendasi dibungkus satu transaksi
// supaya review dan status tidak pernah saling basi.
type ReviewRepository interface {
	// CreateAndApplyStatus menyimpan review baru lalu, dalam transaksi yang
	// sama, menulis status turunan + stempel reviewer ke proposal.
	CreateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error

	// UpdateAndApplyStatus menyimpan perubahan review dan menimpa ulang
	// status proposal dengan pemetaan yang sama seperti create.
	UpdateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error

	// DeleteAndResetProposal menghapus review, mengembalikan proposal ke
	// submitted, dan mengosongkan reviewer bertugas dalam satu transaksi.
	DeleteAndResetProposal(reviewID, proposalID uuid.UUID) error

	FindByID(id uuid.UUID) (*model.Review, error)
	FindByProposalAndReviewer(proposalID, reviewerID uuid.UUID) (*model.Review, error)
	FindAll(filter ReviewFilter, page, limit int) ([]model.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository membuat instance baru ReviewRepository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Proposal", "Reviewer").Create(review).Error; err != nil {
			return err
		}
		return tx.Model(&model.Proposal{}).
			Where("id = ?", review.ProposalID).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"reviewer_id": review.ReviewerID,
			}).Error
	})
}

func (r *reviewRepository) UpdateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Proposal", "Reviewer").Save(review).Error; err != nil {
			return err
		}
		return tx.Model(&model.Proposal{}).
			Where("id = ?", review.ProposalID).
			Update("status", newStatus).Error
	})
}

func (r *reviewRepository) DeleteAndResetProposal(reviewID, proposalID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Review{}, "id = ?", reviewID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Proposal{}).
			Where("id = ?", proposalID).
			Updates(map[string]interface{}{
				"status":      model.StatusSubmitted,
				"reviewer_id": nil,
			}).Error
	})
}

func (r *reviewRepository) FindByID(id uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Preload("Proposal").
		Preload("Proposal.Members").
		Preload("Reviewer").
		Where("id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByProposalAndReviewer dipakai sebagai probe keunikan pasangan
// (proposal, reviewer) sebelum insert; constraint unik di DB tetap jadi
// penjaga terakhir terhadap balapan antar request.
func (r *reviewRepository) FindByProposalAndReviewer(proposalID, reviewerID uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Where("proposal_id = ? AND reviewer_id = ?", proposalID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAll(filter ReviewFilter, page, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	q := r.db.Model(&model.Review{})

	switch {
	case filter.KetuaID != nil && filter.PembimbingID != nil:
		q = q.Where(
			"proposal_id IN (SELECT id FROM proposals WHERE ketua_id = ? OR dosen_pembimbing_id = ?)",
			*filter.KetuaID, *filter.PembimbingID,
		)
	case filter.KetuaID != nil:
		q = q.Where(
			"proposal_id IN (SELECT id FROM proposals WHERE ketua_id = ?)",
			*filter.KetuaID,
		)
	case filter.PembimbingID != nil:
		q = q.Where(
			"proposal_id IN (SELECT id FROM proposals WHERE dosen_pembimbing_id = ?)",
			*filter.PembimbingID,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("Proposal").
		Preload("Reviewer").
		Order("reviewed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}
