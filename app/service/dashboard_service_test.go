package service

import (
	"testing"

	"p3m-backend/app/model"
	"p3m-backend/app/repository"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatistics(t *testing.T) {
	repo := &fakeDashboardRepo{
		counts: []repository.StatusCount{
			{Status: model.StatusDraft, Total: 3},
			{Status: model.StatusSubmitted, Total: 2},
			{Status: model.StatusApproved, Total: 1},
		},
		reviewTotal: 7,
	}
	svc := NewDashboardService(repo)

	t.Run("admin dapat total review", func(t *testing.T) {
		stats, err := svc.Statistics(uuid.New(), model.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(6), stats.TotalProposal)
		assert.Len(t, stats.PerStatus, 3)
		require.NotNil(t, stats.TotalReview)
		assert.Equal(t, int64(7), *stats.TotalReview)
	})

	t.Run("reviewer dapat total review", func(t *testing.T) {
		stats, err := svc.Statistics(uuid.New(), model.RoleReviewer)
		require.NoError(t, err)
		assert.NotNil(t, stats.TotalReview)
	})

	t.Run("mahasiswa tanpa angka review", func(t *testing.T) {
		stats, err := svc.Statistics(uuid.New(), model.RoleMahasiswa)
		require.NoError(t, err)
		assert.Equal(t, int64(6), stats.TotalProposal)
		assert.Nil(t, stats.TotalReview)
	})

	t.Run("role tidak dikenal ditolak", func(t *testing.T) {
		_, err := svc.Statistics(uuid.New(), model.Role("ghost"))
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
	})
}
