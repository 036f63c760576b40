package service

import (
	"p3m-backend/app/model"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
)

// DashboardStats adalah ringkasan statistik sesuai scope role pemanggil.
type DashboardStats struct {
	TotalProposal int64                    `json:"totalProposal"`
	PerStatus     []repository.StatusCount `json:"perStatus"`
	TotalReview   *int64                   `json:"totalReview,omitempty"`
}

// DashboardService menyusun statistik read-only. Scoping-nya identik dengan
// visibilitas list proposal supaya angka dashboard dan daftar selalu
// konsisten satu sama lain.
type DashboardService interface {
	Statistics(actorID uuid.UUID, role model.Role) (*DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService membuat instance DashboardService.
func NewDashboardService(dashboardRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) Statistics(actorID uuid.UUID, role model.Role) (*DashboardStats, error) {
	filter := repository.ProposalFilter{}
	var reviewScope *uuid.UUID
	withReviews := false

	switch role {
	case model.RoleAdmin:
		withReviews = true // semua review
	case model.RoleReviewer:
		filter.ReviewerID = &actorID
		reviewScope = &actorID
		withReviews = true
	case model.RoleDosen, model.RoleMahasiswa:
		filter.KetuaOrMemberID = &actorID
	default:
		return nil, utils.NewForbiddenError("Role tidak dikenal")
	}

	counts, err := s.dashboardRepo.CountProposalsByStatus(filter)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{PerStatus: counts}
	for _, c := range counts {
		stats.TotalProposal += c.Total
	}

	if withReviews {
		total, err := s.dashboardRepo.CountReviews(reviewScope)
		if err != nil {
			return nil, err
		}
		stats.TotalReview = &total
	}

	return stats, nil
}
