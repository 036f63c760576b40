package service

import (
	"context"
	"errors"
	"log"
	"time"

	"p3m-backend/app/model"
	"p3m-backend/app/policy"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalInput adalah payload create/update proposal dari boundary layer.
type ProposalInput struct {
	Judul         string
	Abstrak       string
	KataKunci     string
	SchemeID      uuid.UUID
	Tahun         int
	DanaDiusulkan *float64
	// MemberIDs: anggota tim selain ketua.
	MemberIDs []uuid.UUID
}

// DocumentUpload adalah payload unggah dokumen proposal.
type DocumentUpload struct {
	Nama     string
	Tipe     string
	FileName string
	Data     []byte
}

// ProposalService adalah state machine siklus hidup proposal:
// memvalidasi transisi, menegakkan batasan skema (rentang dana, batas
// anggota, jendela buka), dan invariant submit (minimal satu dokumen).
type ProposalService interface {
	Create(actorID uuid.UUID, role model.Role, in ProposalInput) (*model.Proposal, error)
	Update(actorID uuid.UUID, role model.Role, id uuid.UUID, in ProposalInput) (*model.Proposal, error)
	Submit(actorID uuid.UUID, id uuid.UUID) (*model.Proposal, error)
	Delete(ctx context.Context, actorID uuid.UUID, role model.Role, id uuid.UUID) error
	Detail(actorID uuid.UUID, role model.Role, id uuid.UUID) (*model.Proposal, error)
	List(actorID uuid.UUID, role model.Role, page, limit int) ([]model.Proposal, int64, error)

	// Complete menutup proposal approved (aksi admin).
	Complete(role model.Role, id uuid.UUID) (*model.Proposal, error)

	AddDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID uuid.UUID, in DocumentUpload) (*model.ProposalDocument, error)
	DeleteDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID, docID uuid.UUID) error
	DownloadDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID, docID uuid.UUID) (*model.ProposalDocument, *model.DocumentBlob, error)
}

type proposalService struct {
	proposalRepo repository.ProposalRepository
	schemeRepo   repository.SchemeRepository
	userRepo     repository.UserRepository
	documentRepo repository.DocumentRepository
}

// NewProposalService membuat instance ProposalService.
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	schemeRepo repository.SchemeRepository,
	userRepo repository.UserRepository,
	documentRepo repository.DocumentRepository,
) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		schemeRepo:   schemeRepo,
		userRepo:     userRepo,
		documentRepo: documentRepo,
	}
}

// validateAgainstScheme menegakkan batasan skema terhadap payload proposal:
// skema aktif + dalam jendela buka, dana dalam rentang, tim ≤ batas anggota,
// ketua tidak boleh muncul di daftar anggota.
func (s *proposalService) validateAgainstScheme(ketuaID uuid.UUID, in ProposalInput) (*model.Scheme, error) {
	scheme, err := s.schemeRepo.FindByID(in.SchemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewValidationError("Skema tidak ditemukan")
		}
		return nil, err
	}

	if scheme.Status != model.SchemeAktif {
		return nil, utils.NewValidationError("Skema sedang tidak aktif")
	}

	now := time.Now()
	if now.Before(scheme.TanggalBuka) {
		return nil, utils.NewValidationError("Skema belum dibuka")
	}
	if scheme.TanggalTutup != nil && now.After(*scheme.TanggalTutup) {
		return nil, utils.NewValidationError("Skema sudah ditutup")
	}

	if in.DanaDiusulkan != nil {
		dana := *in.DanaDiusulkan
		if dana <= 0 {
			return nil, utils.NewValidationError("Dana diusulkan harus lebih dari 0")
		}
		if dana < scheme.DanaMin {
			return nil, utils.NewValidationError("Dana diusulkan di bawah batas minimum skema")
		}
		if scheme.DanaMax > 0 && dana > scheme.DanaMax {
			return nil, utils.NewValidationError("Dana diusulkan melebihi batas maksimum skema")
		}
	}

	seen := map[uuid.UUID]bool{}
	for _, id := range in.MemberIDs {
		if id == ketuaID {
			return nil, utils.NewConflictError("Ketua tidak boleh terdaftar sebagai anggota")
		}
		if seen[id] {
			return nil, utils.NewValidationError("Anggota tim duplikat")
		}
		seen[id] = true
	}

	// Ukuran tim = anggota + ketua.
	if len(in.MemberIDs)+1 > scheme.BatasAnggota {
		return nil, utils.NewValidationError("Jumlah tim melebihi batas anggota skema")
	}

	if len(in.MemberIDs) > 0 {
		users, err := s.userRepo.FindByIDs(in.MemberIDs)
		if err != nil {
			return nil, err
		}
		if len(users) != len(in.MemberIDs) {
			return nil, utils.NewValidationError("Ada anggota tim yang tidak terdaftar")
		}
	}

	return scheme, nil
}

// buildMemberRows menyusun baris tim: satu baris ketua + baris anggota.
func buildMemberRows(ketuaID uuid.UUID, memberIDs []uuid.UUID) []model.ProposalMember {
	rows := []model.ProposalMember{
		{ID: uuid.New(), UserID: ketuaID, Peran: model.MemberKetua},
	}
	for _, id := range memberIDs {
		rows = append(rows, model.ProposalMember{ID: uuid.New(), UserID: id, Peran: model.MemberAnggota})
	}
	return rows
}

func (s *proposalService) Create(actorID uuid.UUID, role model.Role, in ProposalInput) (*model.Proposal, error) {
	if !policy.CanCreateProposal(role) {
		return nil, utils.NewForbiddenError("Role anda tidak dapat membuat proposal")
	}

	if _, err := s.validateAgainstScheme(actorID, in); err != nil {
		return nil, err
	}

	proposal := &model.Proposal{
		ID:            uuid.New(),
		Judul:         in.Judul,
		Abstrak:       in.Abstrak,
		KataKunci:     in.KataKunci,
		SchemeID:      in.SchemeID,
		KetuaID:       actorID,
		Tahun:         in.Tahun,
		DanaDiusulkan: in.DanaDiusulkan,
		Status:        model.StatusDraft,
	}

	// Proposal + baris tim ditulis atomik: gagal salah satu, batal semua.
	if err := s.proposalRepo.CreateWithMembers(proposal, buildMemberRows(actorID, in.MemberIDs)); err != nil {
		return nil, err
	}

	return s.proposalRepo.FindByID(proposal.ID)
}

func (s *proposalService) Update(actorID uuid.UUID, role model.Role, id uuid.UUID, in ProposalInput) (*model.Proposal, error) {
	proposal, err := s.findProposal(id)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutateProposal(role, actorID, policy.FactsFor(proposal)) {
		return nil, utils.NewForbiddenError("Hanya ketua atau admin yang dapat mengubah proposal")
	}
	if !model.StatusIn(proposal.Status, model.EditableStatuses) {
		return nil, utils.NewInvalidStateError("Proposal hanya dapat diubah saat status draft atau revision")
	}

	// Validasi ulang terhadap skema (bisa saja berganti skema).
	if _, err := s.validateAgainstScheme(proposal.KetuaID, in); err != nil {
		return nil, err
	}

	proposal.Judul = in.Judul
	proposal.Abstrak = in.Abstrak
	proposal.KataKunci = in.KataKunci
	proposal.SchemeID = in.SchemeID
	proposal.Tahun = in.Tahun
	proposal.DanaDiusulkan = in.DanaDiusulkan
	proposal.Members = nil
	proposal.Documents = nil

	if err := s.proposalRepo.UpdateWithMembers(proposal, buildMemberRows(proposal.KetuaID, in.MemberIDs)); err != nil {
		return nil, err
	}

	return s.proposalRepo.FindByID(id)
}

func (s *proposalService) Submit(actorID uuid.UUID, id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.findProposal(id)
	if err != nil {
		return nil, err
	}

	// Submit khusus ketua; admin pun tidak men-submit atas nama orang lain.
	if !policy.CanSubmitProposal(actorID, policy.FactsFor(proposal)) {
		return nil, utils.NewForbiddenError("Hanya ketua yang dapat mengajukan proposal")
	}
	if !model.StatusIn(proposal.Status, model.EditableStatuses) {
		return nil, utils.NewInvalidStateError("Proposal hanya dapat diajukan dari status draft atau revision")
	}

	docCount, err := s.proposalRepo.CountDocuments(id)
	if err != nil {
		return nil, err
	}
	if docCount == 0 {
		return nil, utils.NewValidationError("Proposal harus memiliki minimal satu dokumen sebelum diajukan")
	}

	if err := s.proposalRepo.MarkSubmitted(id, time.Now()); err != nil {
		return nil, err
	}

	return s.proposalRepo.FindByID(id)
}

func (s *proposalService) Delete(ctx context.Context, actorID uuid.UUID, role model.Role, id uuid.UUID) error {
	proposal, err := s.findProposal(id)
	if err != nil {
		return err
	}

	if !policy.CanMutateProposal(role, actorID, policy.FactsFor(proposal)) {
		return utils.NewForbiddenError("Hanya ketua atau admin yang dapat menghapus proposal")
	}
	if !model.StatusIn(proposal.Status, model.DeletableStatuses) {
		return utils.NewInvalidStateError("Proposal hanya dapat dihapus saat status draft atau rejected")
	}

	// Bersihkan blob dokumen lebih dulu (best-effort; kegagalan hapus file
	// dicatat, tidak membatalkan penghapusan baris).
	if err := s.documentRepo.PurgeForProposal(ctx, id); err != nil {
		log.Printf("[PROPOSAL] gagal purge dokumen proposal %s: %v", id, err)
	}

	return s.proposalRepo.Delete(id)
}

func (s *proposalService) Detail(actorID uuid.UUID, role model.Role, id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.findProposal(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewProposal(role, actorID, policy.FactsFor(proposal)) {
		return nil, utils.NewForbiddenError("Anda tidak berhak melihat proposal ini")
	}
	return proposal, nil
}

// List mengembalikan proposal sesuai visibilitas role:
// admin semua; reviewer yang ditugaskan padanya; dosen/mahasiswa yang ia
// ketuai atau ikuti sebagai anggota.
func (s *proposalService) List(actorID uuid.UUID, role model.Role, page, limit int) ([]model.Proposal, int64, error) {
	filter := repository.ProposalFilter{}
	switch role {
	case model.RoleAdmin:
		// tanpa filter
	case model.RoleReviewer:
		filter.ReviewerID = &actorID
	case model.RoleDosen, model.RoleMahasiswa:
		filter.KetuaOrMemberID = &actorID
	default:
		return nil, 0, utils.NewForbiddenError("Role tidak dikenal")
	}
	return s.proposalRepo.FindAll(filter, page, limit)
}

func (s *proposalService) Complete(role model.Role, id uuid.UUID) (*model.Proposal, error) {
	if role != model.RoleAdmin {
		return nil, utils.NewForbiddenError("Hanya admin yang dapat menyelesaikan proposal")
	}

	proposal, err := s.findProposal(id)
	if err != nil {
		return nil, err
	}
	if proposal.Status != model.StatusApproved {
		return nil, utils.NewInvalidStateError("Proposal hanya dapat diselesaikan dari status approved")
	}

	if err := s.proposalRepo.UpdateStatus(id, model.StatusCompleted); err != nil {
		return nil, err
	}
	return s.proposalRepo.FindByID(id)
}

func (s *proposalService) AddDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID uuid.UUID, in DocumentUpload) (*model.ProposalDocument, error) {
	proposal, err := s.findProposal(proposalID)
	if err != nil {
		return nil, err
	}

	if !policy.CanMutateProposal(role, actorID, policy.FactsFor(proposal)) {
		return nil, utils.NewForbiddenError("Hanya ketua atau admin yang dapat mengunggah dokumen")
	}
	if !model.StatusIn(proposal.Status, model.EditableStatuses) {
		return nil, utils.NewInvalidStateError("Dokumen hanya dapat diunggah saat status draft atau revision")
	}
	if len(in.Data) == 0 {
		return nil, utils.NewValidationError("File dokumen kosong")
	}

	doc := &model.ProposalDocument{
		ID:         uuid.New(),
		ProposalID: proposalID,
		Nama:       in.Nama,
		Tipe:       in.Tipe,
	}
	blob := &model.DocumentBlob{
		FileName:   in.FileName,
		FileType:   in.Tipe,
		Size:       int64(len(in.Data)),
		Data:       in.Data,
		UploadedAt: time.Now(),
	}

	if err := s.documentRepo.Store(ctx, doc, blob); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *proposalService) DeleteDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID, docID uuid.UUID) error {
	proposal, err := s.findProposal(proposalID)
	if err != nil {
		return err
	}

	if !policy.CanMutateProposal(role, actorID, policy.FactsFor(proposal)) {
		return utils.NewForbiddenError("Hanya ketua atau admin yang dapat menghapus dokumen")
	}

	// Dokumen boleh dihapus selama proposal masih draft/revision/rejected.
	deletable := []model.ProposalStatus{model.StatusDraft, model.StatusRevision, model.StatusRejected}
	if !model.StatusIn(proposal.Status, deletable) {
		return utils.NewInvalidStateError("Dokumen tidak dapat dihapus pada status proposal saat ini")
	}

	doc, err := s.documentRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFoundError("Dokumen tidak ditemukan")
		}
		return err
	}
	if doc.ProposalID != proposalID {
		return utils.NewNotFoundError("Dokumen tidak ditemukan pada proposal ini")
	}

	return s.documentRepo.Delete(ctx, doc)
}

func (s *proposalService) DownloadDocument(ctx context.Context, actorID uuid.UUID, role model.Role, proposalID, docID uuid.UUID) (*model.ProposalDocument, *model.DocumentBlob, error) {
	proposal, err := s.findProposal(proposalID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.CanViewProposal(role, actorID, policy.FactsFor(proposal)) {
		return nil, nil, utils.NewForbiddenError("Anda tidak berhak mengakses dokumen ini")
	}

	doc, err := s.documentRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.NewNotFoundError("Dokumen tidak ditemukan")
		}
		return nil, nil, err
	}
	if doc.ProposalID != proposalID {
		return nil, nil, utils.NewNotFoundError("Dokumen tidak ditemukan pada proposal ini")
	}

	blob, err := s.documentRepo.FindBlob(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, utils.WrapError(utils.KindNotFound, "Isi dokumen tidak ditemukan", err)
	}
	return doc, blob, nil
}

func (s *proposalService) findProposal(id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Proposal tidak ditemukan")
		}
		return nil, err
	}
	return proposal, nil
}
