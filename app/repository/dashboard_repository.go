package repository

import (
	"p3m-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusCount adalah hasil agregasi jumlah proposal per status.
type StatusCount struct {
	Status model.ProposalStatus `json:"status"`
	Total  int64                `json:"total"`
}

// DashboardRepository menyusun query statistik read-only per role.
// Scoping-nya memakai ProposalFilter yang sama dengan list proposal supaya
// angka dashboard selalu konsisten dengan apa yang boleh dilihat user.
type DashboardRepository interface {
	CountProposalsByStatus(filter ProposalFilter) ([]StatusCount, error)
	CountReviews(reviewerID *uuid.UUID) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository membuat instance baru DashboardRepository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountProposalsByStatus(filter ProposalFilter) ([]StatusCount, error) {
	var counts []StatusCount

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

	err := q.
		Select("status, count(*) as total").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *dashboardRepository) CountReviews(reviewerID *uuid.UUID) (int64, error) {
	var count int64
	q := r.db.Model(&model.Review{})
	if reviewerID != nil {
		q = q.Where("reviewer_id = ?", *reviewerID)
	}
	err := q.Count(&count).Error
	return count, err
}
