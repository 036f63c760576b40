package service

import (
	"errors"

	"p3m-backend/app/model"
	"p3m-backend/app/policy"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewInput adalah payload create/update review.
type ReviewInput struct {
	ProposalID  uuid.UUID
	Skor        *float64
	Catatan     string
	Rekomendasi model.Rekomendasi
}

// ReviewService adalah workflow review: membuat/mengubah review, menurunkan
// status proposal dari rekomendasi, menegakkan satu-review-per-(proposal,
// reviewer), dan jendela edit berdasarkan status proposal.
type ReviewService interface {
	Create(actorID uuid.UUID, role model.Role, in ReviewInput) (*model.Review, error)
	Update(actorID uuid.UUID, role model.Role, reviewID uuid.UUID, in ReviewInput) (*model.Review, error)

	// Delete (khusus admin) mengembalikan proposal ke submitted dan
	// mengosongkan reviewer bertugas.
	Delete(role model.Role, reviewID uuid.UUID) error

	// Assign (khusus admin) menugaskan reviewer dan mengeset status review.
	Assign(role model.Role, proposalID, reviewerID uuid.UUID) (*model.Proposal, error)

	Detail(actorID uuid.UUID, role model.Role, reviewID uuid.UUID) (*model.Review, error)
	List(actorID uuid.UUID, role model.Role, page, limit int) ([]model.Review, int64, error)

	// ReviewableProposals: daftar proposal yang siap direview
	// (status submitted/review), untuk reviewer dan admin.
	ReviewableProposals(page, limit int) ([]model.Proposal, int64, error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
}

// NewReviewService membuat instance ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
	}
}

func (s *reviewService) Create(actorID uuid.UUID, role model.Role, in ReviewInput) (*model.Review, error) {
	proposal, err := s.proposalRepo.FindByID(in.ProposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Proposal tidak ditemukan")
		}
		return nil, err
	}

	if !model.StatusIn(proposal.Status, model.ReviewableStatuses) {
		return nil, utils.NewInvalidStateError("Proposal tidak sedang dalam tahap review")
	}

	// Satu reviewer hanya boleh punya satu review per proposal.
	if _, err := s.reviewRepo.FindByProposalAndReviewer(in.ProposalID, actorID); err == nil {
		return nil, utils.NewConflictError("Anda sudah pernah mereview proposal ini")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newStatus, err := model.StatusForRekomendasi(in.Rekomendasi)
	if err != nil {
		return nil, utils.NewValidationError("Rekomendasi tidak dikenal")
	}

	review := &model.Review{
		ID:          uuid.New(),
		ProposalID:  in.ProposalID,
		ReviewerID:  actorID,
		Skor:        in.Skor,
		Catatan:     in.Catatan,
		Rekomendasi: in.Rekomendasi,
	}

	// Review + status turunan proposal ditulis dalam satu transaksi supaya
	// keduanya tidak pernah saling basi.
	if err := s.reviewRepo.CreateAndApplyStatus(review, newStatus); err != nil {
		return nil, err
	}

	return s.reviewRepo.FindByID(review.ID)
}

func (s *reviewService) Update(actorID uuid.UUID, role model.Role, reviewID uuid.UUID, in ReviewInput) (*model.Review, error) {
	review, err := s.findReview(reviewID)
	if err != nil {
		return nil, err
	}

	// Jendela edit: reviewer hanya atas review miliknya dan selama proposal
	// masih submitted/review; admin bebas kapan pun.
	if !policy.CanEditReview(role, actorID, review.ReviewerID, review.Proposal.Status) {
		if role == model.RoleReviewer && review.ReviewerID == actorID {
			return nil, utils.NewForbiddenError("Masa edit review sudah berakhir")
		}
		return nil, utils.NewForbiddenError("Anda tidak berhak mengubah review ini")
	}

	newStatus, err := model.StatusForRekomendasi(in.Rekomendasi)
	if err != nil {
		return nil, utils.NewValidationError("Rekomendasi tidak dikenal")
	}

	review.Skor = in.Skor
	review.Catatan = in.Catatan
	review.Rekomendasi = in.Rekomendasi

	if err := s.reviewRepo.UpdateAndApplyStatus(review, newStatus); err != nil {
		return nil, err
	}

	return s.reviewRepo.FindByID(reviewID)
}

func (s *reviewService) Delete(role model.Role, reviewID uuid.UUID) error {
	if role != model.RoleAdmin {
		return utils.NewForbiddenError("Hanya admin yang dapat menghapus review")
	}

	review, err := s.findReview(reviewID)
	if err != nil {
		return err
	}

	return s.reviewRepo.DeleteAndResetProposal(review.ID, review.ProposalID)
}

func (s *reviewService) Assign(role model.Role, proposalID, reviewerID uuid.UUID) (*model.Proposal, error) {
	if role != model.RoleAdmin {
		return nil, utils.NewForbiddenError("Hanya admin yang dapat menugaskan reviewer")
	}

	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Proposal tidak ditemukan")
		}
		return nil, err
	}
	if !model.StatusIn(proposal.Status, model.ReviewableStatuses) {
		return nil, utils.NewInvalidStateError("Reviewer hanya dapat ditugaskan pada proposal submitted atau review")
	}

	reviewer, err := s.userRepo.FindByID(reviewerID)
	if err != nil || reviewer.Role != model.RoleReviewer {
		return nil, utils.NewNotFoundError("Reviewer tidak ditemukan")
	}

	if err := s.proposalRepo.AssignReviewer(proposalID, reviewerID); err != nil {
		return nil, err
	}
	return s.proposalRepo.FindByID(proposalID)
}

func (s *reviewService) Detail(actorID uuid.UUID, role model.Role, reviewID uuid.UUID) (*model.Review, error) {
	review, err := s.findReview(reviewID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewReview(role, actorID, policy.FactsFor(&review.Proposal)) {
		return nil, utils.NewForbiddenError("Anda tidak berhak melihat review ini")
	}
	return review, nil
}

// List mengembalikan review sesuai visibilitas role:
// mahasiswa → proposal yang ia ketuai; dosen → ketuai atau bimbing;
// reviewer/admin → tanpa batasan baca.
func (s *reviewService) List(actorID uuid.UUID, role model.Role, page, limit int) ([]model.Review, int64, error) {
	filter := repository.ReviewFilter{}
	switch role {
	case model.RoleAdmin, model.RoleReviewer:
		// tanpa filter
	case model.RoleMahasiswa:
		filter.KetuaID = &actorID
	case model.RoleDosen:
		filter.KetuaID = &actorID
		filter.PembimbingID = &actorID
	default:
		return nil, 0, utils.NewForbiddenError("Role tidak dikenal")
	}
	return s.reviewRepo.FindAll(filter, page, limit)
}

func (s *reviewService) ReviewableProposals(page, limit int) ([]model.Proposal, int64, error) {
	filter := repository.ProposalFilter{Statuses: model.ReviewableStatuses}
	return s.proposalRepo.FindAll(filter, page, limit)
}

func (s *reviewService) findReview(id uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Review tidak ditemukan")
		}
		return nil, err
	}
	return review, nil
}
