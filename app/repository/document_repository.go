package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"p3m-backend/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// DocumentRepository mengelola dokumen proposal:
// - metadata di PostgreSQL (ProposalDocument)
// - isi file (blob) di MongoDB (collection: documents)
// Penghapusan blob bersifat best-effort: gagal hapus blob dicatat ke log,
// tidak pernah membatalkan mutasi utama di PostgreSQL.
type DocumentRepository interface {
	// Store menyimpan blob ke Mongo lalu metadata ke Postgres; kalau insert
	// Postgres gagal, blob Mongo dihapus lagi (compensating delete).
	Store(ctx context.Context, doc *model.ProposalDocument, blob *model.DocumentBlob) error

	FindByID(id uuid.UUID) (*model.ProposalDocument, error)

	// FindBlob mengambil isi file dari Mongo berdasarkan FilePath metadata.
	FindBlob(ctx context.Context, filePath string) (*model.DocumentBlob, error)

	// Delete menghapus baris metadata, lalu blob Mongo best-effort.
	Delete(ctx context.Context, doc *model.ProposalDocument) error

	// PurgeForProposal menghapus seluruh blob milik satu proposal
	// (best-effort) sebelum baris proposal dihapus.
	PurgeForProposal(ctx context.Context, proposalID uuid.UUID) error
}

type documentRepository struct {
	pgDB    *gorm.DB
	mongoDB *mongo.Database
}

// NewDocumentRepository membuat instance repository dokumen.
func NewDocumentRepository(pgDB *gorm.DB, mongoDB *mongo.Database) DocumentRepository {
	return &documentRepository{pgDB: pgDB, mongoDB: mongoDB}
}

// objectIDFromPath mengurai mongo://documents/<hex> menjadi ObjectID.
func objectIDFromPath(filePath string) (primitive.ObjectID, error) {
	hex := strings.TrimPrefix(filePath, "mongo://documents/")
	if hex == filePath {
		return primitive.NilObjectID, fmt.Errorf("file path tidak dikenal: %s", filePath)
	}
	return primitive.ObjectIDFromHex(hex)
}

func (r *documentRepository) Store(ctx context.Context, doc *model.ProposalDocument, blob *model.DocumentBlob) error {
	// Step 1: insert blob ke MongoDB terlebih dahulu.
	insertRes, err := r.mongoDB.Collection("documents").InsertOne(ctx, blob)
	if err != nil {
		return fmt.Errorf("mongo insert error: %w", err)
	}

	oid, ok := insertRes.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("mongo insert returned non-ObjectID")
	}
	doc.FilePath = model.BlobPath(oid)

	// Step 2: insert metadata ke PostgreSQL; rollback blob jika gagal.
	if err := r.pgDB.Create(doc).Error; err != nil {
		_, _ = r.mongoDB.Collection("documents").DeleteOne(ctx, bson.M{"_id": oid})
		return fmt.Errorf("postgres insert error: %w", err)
	}
	return nil
}

func (r *documentRepository) FindByID(id uuid.UUID) (*model.ProposalDocument, error) {
	var doc model.ProposalDocument
	if err := r.pgDB.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindBlob(ctx context.Context, filePath string) (*model.DocumentBlob, error) {
	oid, err := objectIDFromPath(filePath)
	if err != nil {
		return nil, err
	}
	var blob model.DocumentBlob
	err = r.mongoDB.Collection("documents").
		FindOne(ctx, bson.M{"_id": oid}).
		Decode(&blob)
	if err != nil {
		return nil, err
	}
	return &blob, nil
}

func (r *documentRepository) Delete(ctx context.Context, doc *model.ProposalDocument) error {
	if err := r.pgDB.Delete(&model.ProposalDocument{}, "id = ?", doc.ID).Error; err != nil {
		return err
	}
	r.deleteBlob(ctx, doc.FilePath)
	return nil
}

func (r *documentRepository) PurgeForProposal(ctx context.Context, proposalID uuid.UUID) error {
	var docs []model.ProposalDocument
	if err := r.pgDB.Where("proposal_id = ?", proposalID).Find(&docs).Error; err != nil {
		return err
	}
	for _, doc := range docs {
		r.deleteBlob(ctx, doc.FilePath)
	}
	return nil
}

// deleteBlob menghapus blob Mongo; kegagalan hanya dicatat, tidak disebarkan.
func (r *documentRepository) deleteBlob(ctx context.Context, filePath string) {
	oid, err := objectIDFromPath(filePath)
	if err != nil {
		log.Printf("[DOCUMENT] path blob tidak valid, lewati: %v", err)
		return
	}
	if _, err := r.mongoDB.Collection("documents").DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		log.Printf("[DOCUMENT] gagal hapus blob %s: %v", filePath, err)
	}
}
