package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentBlob adalah isi file dokumen proposal di MongoDB (collection: documents).
// Baris metadata di PostgreSQL (ProposalDocument.FilePath) menunjuk ke dokumen ini
// dengan alamat mongo://documents/<hex _id>.
type DocumentBlob struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FileName   string             `bson:"fileName"`
	FileType   string             `bson:"fileType"` // pdf/docx/dll
	Size       int64              `bson:"size"`
	Data       []byte             `bson:"data"`
	UploadedAt time.Time          `bson:"uploadedAt"`
}

// BlobPath membangun alamat path-based untuk sebuah blob dokumen.
func BlobPath(id primitive.ObjectID) string {
	return "mongo://documents/" + id.Hex()
}
