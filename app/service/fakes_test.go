package service

import (
	"context"
	"fmt"
	"time"

	"p3m-backend/app/model"
	"p3m-backend/app/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fake repository in-memory untuk pengujian service tanpa database.
// Semuanya mengembalikan gorm.ErrRecordNotFound persis seperti implementasi
// GORM supaya jalur errors.Is di service ikut teruji.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (r *fakeUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByIDs(ids []uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindAll(page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) SetActive(id uuid.UUID, active bool) error {
	if u, ok := r.users[id]; ok {
		u.IsActive = active
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeSchemeRepo struct {
	schemes        map[uuid.UUID]*model.Scheme
	proposalCounts map[uuid.UUID]int64
}

func newFakeSchemeRepo() *fakeSchemeRepo {
	return &fakeSchemeRepo{
		schemes:        map[uuid.UUID]*model.Scheme{},
		proposalCounts: map[uuid.UUID]int64{},
	}
}

func (r *fakeSchemeRepo) add(s *model.Scheme) *model.Scheme {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.schemes[s.ID] = s
	return s
}

func (r *fakeSchemeRepo) Create(scheme *model.Scheme) error {
	r.schemes[scheme.ID] = scheme
	return nil
}

func (r *fakeSchemeRepo) Update(scheme *model.Scheme) error {
	r.schemes[scheme.ID] = scheme
	return nil
}

func (r *fakeSchemeRepo) Delete(id uuid.UUID) error {
	delete(r.schemes, id)
	return nil
}

func (r *fakeSchemeRepo) FindByID(id uuid.UUID) (*model.Scheme, error) {
	if s, ok := r.schemes[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchemeRepo) FindByKode(kode string) (*model.Scheme, error) {
	for _, s := range r.schemes {
		if s.Kode == kode {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSchemeRepo) FindAll(page, limit int, status string) ([]model.Scheme, int64, error) {
	var out []model.Scheme
	for _, s := range r.schemes {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSchemeRepo) CountProposals(schemeID uuid.UUID) (int64, error) {
	return r.proposalCounts[schemeID], nil
}

type fakeProposalRepo struct {
	proposals map[uuid.UUID]*model.Proposal
	docCounts map[uuid.UUID]int64
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{
		proposals: map[uuid.UUID]*model.Proposal{},
		docCounts: map[uuid.UUID]int64{},
	}
}

func (r *fakeProposalRepo) add(p *model.Proposal) *model.Proposal {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proposals[p.ID] = p
	return p
}

func (r *fakeProposalRepo) CreateWithMembers(p *model.Proposal, members []model.ProposalMember) error {
	for i := range members {
		members[i].ProposalID = p.ID
	}
	p.Members = members
	r.proposals[p.ID] = p
	return nil
}

func (r *fakeProposalRepo) UpdateWithMembers(p *model.Proposal, members []model.ProposalMember) error {
	for i := range members {
		members[i].ProposalID = p.ID
	}
	p.Members = members
	r.proposals[p.ID] = p
	return nil
}

func (r *fakeProposalRepo) FindByID(id uuid.UUID) (*model.Proposal, error) {
	if p, ok := r.proposals[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProposalRepo) FindAll(filter repository.ProposalFilter, page, limit int) ([]model.Proposal, int64, error) {
	var out []model.Proposal
	for _, p := range r.proposals {
		if filter.ReviewerID != nil &&
			(p.ReviewerID == nil || *p.ReviewerID != *filter.ReviewerID) {
			continue
		}
		if filter.KetuaOrMemberID != nil {
			id := *filter.KetuaOrMemberID
			match := p.KetuaID == id
			for _, m := range p.Members {
				if m.UserID == id {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if len(filter.Statuses) > 0 && !model.StatusIn(p.Status, filter.Statuses) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProposalRepo) Delete(id uuid.UUID) error {
	delete(r.proposals, id)
	return nil
}

func (r *fakeProposalRepo) MarkSubmitted(id uuid.UUID, at time.Time) error {
	p, ok := r.proposals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusSubmitted
	p.SubmittedAt = &at
	return nil
}

func (r *fakeProposalRepo) UpdateStatus(id uuid.UUID, status model.ProposalStatus) error {
	p, ok := r.proposals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProposalRepo) AssignReviewer(proposalID, reviewerID uuid.UUID) error {
	p, ok := r.proposals[proposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusReview
	p.ReviewerID = &reviewerID
	return nil
}

func (r *fakeProposalRepo) CountDocuments(proposalID uuid.UUID) (int64, error) {
	return r.docCounts[proposalID], nil
}

type fakeDocumentRepo struct {
	docs   map[uuid.UUID]*model.ProposalDocument
	blobs  map[string]*model.DocumentBlob
	purged []uuid.UUID
	nextID int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:  map[uuid.UUID]*model.ProposalDocument{},
		blobs: map[string]*model.DocumentBlob{},
	}
}

func (r *fakeDocumentRepo) Store(ctx context.Context, doc *model.ProposalDocument, blob *model.DocumentBlob) error {
	r.nextID++
	doc.FilePath = fmt.Sprintf("mongo://documents/%024d", r.nextID)
	r.docs[doc.ID] = doc
	r.blobs[doc.FilePath] = blob
	return nil
}

func (r *fakeDocumentRepo) FindByID(id uuid.UUID) (*model.ProposalDocument, error) {
	if d, ok := r.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDocumentRepo) FindBlob(ctx context.Context, filePath string) (*model.DocumentBlob, error) {
	if b, ok := r.blobs[filePath]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, doc *model.ProposalDocument) error {
	delete(r.docs, doc.ID)
	delete(r.blobs, doc.FilePath)
	return nil
}

func (r *fakeDocumentRepo) PurgeForProposal(ctx context.Context, proposalID uuid.UUID) error {
	r.purged = append(r.purged, proposalID)
	return nil
}

type fakeReviewRepo struct {
	reviews      map[uuid.UUID]*model.Review
	proposalRepo *fakeProposalRepo
}

func newFakeReviewRepo(proposalRepo *fakeProposalRepo) *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:      map[uuid.UUID]*model.Review{},
		proposalRepo: proposalRepo,
	}
}

func (r *fakeReviewRepo) add(rev *model.Review) *model.Review {
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	r.reviews[rev.ID] = rev
	return rev
}

func (r *fakeReviewRepo) CreateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error {
	r.reviews[review.ID] = review
	p, ok := r.proposalRepo.proposals[review.ProposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = newStatus
	p.ReviewerID = &review.ReviewerID
	return nil
}

func (r *fakeReviewRepo) UpdateAndApplyStatus(review *model.Review, newStatus model.ProposalStatus) error {
	r.reviews[review.ID] = review
	p, ok := r.proposalRepo.proposals[review.ProposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = newStatus
	return nil
}

func (r *fakeReviewRepo) DeleteAndResetProposal(reviewID, proposalID uuid.UUID) error {
	delete(r.reviews, reviewID)
	p, ok := r.proposalRepo.proposals[proposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.StatusSubmitted
	p.ReviewerID = nil
	return nil
}

func (r *fakeReviewRepo) FindByID(id uuid.UUID) (*model.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rev
	// Preload proposal seperti implementasi GORM.
	if p, ok := r.proposalRepo.proposals[rev.ProposalID]; ok {
		cp.Proposal = *p
	}
	return &cp, nil
}

func (r *fakeReviewRepo) FindByProposalAndReviewer(proposalID, reviewerID uuid.UUID) (*model.Review, error) {
	for _, rev := range r.reviews {
		if rev.ProposalID == proposalID && rev.ReviewerID == reviewerID {
			return rev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) FindAll(filter repository.ReviewFilter, page, limit int) ([]model.Review, int64, error) {
	var out []model.Review
	for _, rev := range r.reviews {
		p, ok := r.proposalRepo.proposals[rev.ProposalID]
		if !ok {
			continue
		}
		if filter.KetuaID != nil || filter.PembimbingID != nil {
			match := false
			if filter.KetuaID != nil && p.KetuaID == *filter.KetuaID {
				match = true
			}
			if filter.PembimbingID != nil && p.DosenPembimbingID != nil &&
				*p.DosenPembimbingID == *filter.PembimbingID {
				match = true
			}
			if !match {
				continue
			}
		}
		out = append(out, *rev)
	}
	return out, int64(len(out)), nil
}

type fakeDashboardRepo struct {
	counts      []repository.StatusCount
	reviewTotal int64
}

func (r *fakeDashboardRepo) CountProposalsByStatus(filter repository.ProposalFilter) ([]repository.StatusCount, error) {
	return r.counts, nil
}

func (r *fakeDashboardRepo) CountReviews(reviewerID *uuid.UUID) (int64, error) {
	return r.reviewTotal, nil
}
