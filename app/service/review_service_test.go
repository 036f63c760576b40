package service

import (
	"testing"

	"p3m-backend/app/model"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	proposalRepo *fakeProposalRepo
	reviewRepo   *fakeReviewRepo
	userRepo     *fakeUserRepo
	svc          ReviewService

	reviewer *model.User
	proposal *model.Proposal
}

// newReviewFixture menyiapkan satu proposal submitted dan satu akun reviewer.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		proposalRepo: newFakeProposalRepo(),
		userRepo:     newFakeUserRepo(),
	}
	f.reviewRepo = newFakeReviewRepo(f.proposalRepo)
	f.svc = NewReviewService(f.reviewRepo, f.proposalRepo, f.userRepo)

	nidn := "0012345602"
	f.reviewer = f.userRepo.add(&model.User{
		Username: "reviewer1",
		Email:    "reviewer1@kampus.ac.id",
		FullName: "Reviewer Satu",
		Role:     model.RoleReviewer,
		NIDN:     &nidn,
		IsActive: true,
	})

	f.proposal = f.proposalRepo.add(&model.Proposal{
		Judul:   "Sistem Monitoring Kualitas Air",
		KetuaID: uuid.New(),
		Status:  model.StatusSubmitted,
	})

	return f
}

func (f *reviewFixture) input(rekomendasi model.Rekomendasi) ReviewInput {
	skor := 82.5
	return ReviewInput{
		ProposalID:  f.proposal.ID,
		Skor:        &skor,
		Catatan:     "Metodologi cukup jelas.",
		Rekomendasi: rekomendasi,
	}
}

func TestReviewCreate(t *testing.T) {
	t.Run("layak menjadikan proposal approved", func(t *testing.T) {
		f := newReviewFixture(t)

		review, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
		require.NoError(t, err)
		assert.Equal(t, f.reviewer.ID, review.ReviewerID)
		assert.Equal(t, model.RekomendasiLayak, review.Rekomendasi)

		p, err := f.proposalRepo.FindByID(f.proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, p.Status)
		require.NotNil(t, p.ReviewerID)
		assert.Equal(t, f.reviewer.ID, *p.ReviewerID)
	})

	t.Run("tidak_layak menjadikan proposal rejected", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiTidakLayak))
		require.NoError(t, err)

		p, _ := f.proposalRepo.FindByID(f.proposal.ID)
		assert.Equal(t, model.StatusRejected, p.Status)
	})

	t.Run("revisi menjadikan proposal revision", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiRevisi))
		require.NoError(t, err)

		p, _ := f.proposalRepo.FindByID(f.proposal.ID)
		assert.Equal(t, model.StatusRevision, p.Status)
	})

	t.Run("review kedua oleh reviewer yang sama ditolak", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiRevisi))
		require.NoError(t, err)

		// Kembalikan proposal ke jendela review supaya yang gagal memang
		// keunikan pasangan, bukan status.
		f.proposal.Status = model.StatusReview

		_, err = f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("proposal masih draft ditolak", func(t *testing.T) {
		f := newReviewFixture(t)
		f.proposal.Status = model.StatusDraft

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
		require.Error(t, err)
		assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
	})

	t.Run("proposal tidak ditemukan", func(t *testing.T) {
		f := newReviewFixture(t)
		in := f.input(model.RekomendasiLayak)
		in.ProposalID = uuid.New()

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, in)
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})

	t.Run("rekomendasi di luar enum ditolak", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.Rekomendasi("mungkin")))
		require.Error(t, err)
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	})
}

func TestReviewUpdate(t *testing.T) {
	t.Run("reviewer mengubah miliknya selama jendela masih terbuka", func(t *testing.T) {
		f := newReviewFixture(t)
		review := f.reviewRepo.add(&model.Review{
			ProposalID:  f.proposal.ID,
			ReviewerID:  f.reviewer.ID,
			Rekomendasi: model.RekomendasiRevisi,
		})
		f.proposal.Status = model.StatusReview

		updated, err := f.svc.Update(f.reviewer.ID, model.RoleReviewer, review.ID, f.input(model.RekomendasiLayak))
		require.NoError(t, err)
		assert.Equal(t, model.RekomendasiLayak, updated.Rekomendasi)

		// Status proposal diturunkan ulang dari rekomendasi baru.
		p, _ := f.proposalRepo.FindByID(f.proposal.ID)
		assert.Equal(t, model.StatusApproved, p.Status)
	})

	t.Run("jendela edit tertutup setelah proposal approved", func(t *testing.T) {
		f := newReviewFixture(t)
		review := f.reviewRepo.add(&model.Review{
			ProposalID:  f.proposal.ID,
			ReviewerID:  f.reviewer.ID,
			Rekomendasi: model.RekomendasiLayak,
		})
		f.proposal.Status = model.StatusApproved

		_, err := f.svc.Update(f.reviewer.ID, model.RoleReviewer, review.ID, f.input(model.RekomendasiRevisi))
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
		assert.Equal(t, "Masa edit review sudah berakhir", utils.UserMessage(err))
	})

	t.Run("reviewer lain ditolak", func(t *testing.T) {
		f := newReviewFixture(t)
		review := f.reviewRepo.add(&model.Review{
			ProposalID:  f.proposal.ID,
			ReviewerID:  f.reviewer.ID,
			Rekomendasi: model.RekomendasiRevisi,
		})
		f.proposal.Status = model.StatusReview

		_, err := f.svc.Update(uuid.New(), model.RoleReviewer, review.ID, f.input(model.RekomendasiLayak))
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})

	t.Run("admin bebas mengubah kapan pun", func(t *testing.T) {
		f := newReviewFixture(t)
		review := f.reviewRepo.add(&model.Review{
			ProposalID:  f.proposal.ID,
			ReviewerID:  f.reviewer.ID,
			Rekomendasi: model.RekomendasiLayak,
		})
		f.proposal.Status = model.StatusApproved

		_, err := f.svc.Update(uuid.New(), model.RoleAdmin, review.ID, f.input(model.RekomendasiRevisi))
		require.NoError(t, err)

		p, _ := f.proposalRepo.FindByID(f.proposal.ID)
		assert.Equal(t, model.StatusRevision, p.Status)
	})
}

func TestReviewDelete(t *testing.T) {
	t.Run("admin menghapus dan proposal kembali ke submitted", func(t *testing.T) {
		f := newReviewFixture(t)

		review, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(model.RoleAdmin, review.ID))

		p, err := f.proposalRepo.FindByID(f.proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSubmitted, p.Status)
		assert.Nil(t, p.ReviewerID)

		_, err = f.reviewRepo.FindByID(review.ID)
		assert.Error(t, err)
	})

	t.Run("bukan admin ditolak", func(t *testing.T) {
		f := newReviewFixture(t)
		review, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
		require.NoError(t, err)

		err = f.svc.Delete(model.RoleReviewer, review.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})
}

func TestReviewAssign(t *testing.T) {
	t.Run("admin menugaskan reviewer", func(t *testing.T) {
		f := newReviewFixture(t)

		p, err := f.svc.Assign(model.RoleAdmin, f.proposal.ID, f.reviewer.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusReview, p.Status)
		require.NotNil(t, p.ReviewerID)
		assert.Equal(t, f.reviewer.ID, *p.ReviewerID)
	})

	t.Run("target bukan akun reviewer", func(t *testing.T) {
		f := newReviewFixture(t)
		nim := "230007"
		mhs := f.userRepo.add(&model.User{
			Username: "mhs7",
			Role:     model.RoleMahasiswa,
			NIM:      &nim,
			IsActive: true,
		})

		_, err := f.svc.Assign(model.RoleAdmin, f.proposal.ID, mhs.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})

	t.Run("proposal masih draft ditolak", func(t *testing.T) {
		f := newReviewFixture(t)
		f.proposal.Status = model.StatusDraft

		_, err := f.svc.Assign(model.RoleAdmin, f.proposal.ID, f.reviewer.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
	})

	t.Run("bukan admin ditolak", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.svc.Assign(model.RoleReviewer, f.proposal.ID, f.reviewer.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})
}

func TestReviewDetail(t *testing.T) {
	f := newReviewFixture(t)
	review, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
	require.NoError(t, err)

	t.Run("ketua proposal boleh melihat", func(t *testing.T) {
		got, err := f.svc.Detail(f.proposal.KetuaID, model.RoleMahasiswa, review.ID)
		require.NoError(t, err)
		assert.Equal(t, review.ID, got.ID)
	})

	t.Run("mahasiswa lain ditolak", func(t *testing.T) {
		_, err := f.svc.Detail(uuid.New(), model.RoleMahasiswa, review.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})

	t.Run("review tidak ditemukan", func(t *testing.T) {
		_, err := f.svc.Detail(f.reviewer.ID, model.RoleReviewer, uuid.New())
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})
}

func TestReviewList(t *testing.T) {
	f := newReviewFixture(t)
	pembimbingID := uuid.New()
	f.proposal.DosenPembimbingID = &pembimbingID

	_, err := f.svc.Create(f.reviewer.ID, model.RoleReviewer, f.input(model.RekomendasiLayak))
	require.NoError(t, err)

	// Proposal kedua milik orang lain, direview reviewer yang sama.
	lain := f.proposalRepo.add(&model.Proposal{
		Judul:   "Proposal Lain",
		KetuaID: uuid.New(),
		Status:  model.StatusSubmitted,
	})
	skor := 60.0
	_, err = f.svc.Create(f.reviewer.ID, model.RoleReviewer, ReviewInput{
		ProposalID:  lain.ID,
		Skor:        &skor,
		Rekomendasi: model.RekomendasiTidakLayak,
	})
	require.NoError(t, err)

	t.Run("admin melihat semua", func(t *testing.T) {
		list, total, err := f.svc.List(uuid.New(), model.RoleAdmin, 1, 10)
		require.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("mahasiswa hanya proposal yang ia ketuai", func(t *testing.T) {
		list, _, err := f.svc.List(f.proposal.KetuaID, model.RoleMahasiswa, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.proposal.ID, list[0].ProposalID)
	})

	t.Run("dosen pembimbing ikut melihat bimbingannya", func(t *testing.T) {
		list, _, err := f.svc.List(pembimbingID, model.RoleDosen, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.proposal.ID, list[0].ProposalID)
	})
}

func TestReviewableProposals(t *testing.T) {
	f := newReviewFixture(t)
	f.proposalRepo.add(&model.Proposal{KetuaID: uuid.New(), Status: model.StatusDraft})
	f.proposalRepo.add(&model.Proposal{KetuaID: uuid.New(), Status: model.StatusReview})

	list, total, err := f.svc.ReviewableProposals(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range list {
		assert.True(t, model.StatusIn(p.Status, model.ReviewableStatuses))
	}
}
