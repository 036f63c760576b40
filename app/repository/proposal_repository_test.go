package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalCountDocuments(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"tanpa dokumen", 0},
		{"dengan dokumen", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			repo := NewProposalRepository(gdb)

			proposalID := uuid.New()
			mock.ExpectQuery(`SELECT count\(\*\) FROM "proposal_documents" WHERE proposal_id = \$1`).
				WithArgs(proposalID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.want))

			count, err := repo.CountDocuments(proposalID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProposalMarkSubmitted(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewProposalRepository(gdb)

	proposalID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "proposals" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), proposalID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkSubmitted(proposalID, time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
