package service

import (
	"testing"

	"p3m-backend/app/model"
	"p3m-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestValidateIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		role    model.Role
		nidn    *string
		nim     *string
		wantErr bool
	}{
		{"dosen dengan NIDN", model.RoleDosen, strPtr("0012345601"), nil, false},
		{"dosen tanpa NIDN", model.RoleDosen, nil, nil, true},
		{"dosen dengan NIM", model.RoleDosen, strPtr("0012345601"), strPtr("230001"), true},
		{"reviewer dengan NIDN", model.RoleReviewer, strPtr("0012345602"), nil, false},
		{"reviewer tanpa NIDN", model.RoleReviewer, nil, nil, true},
		{"mahasiswa dengan NIM", model.RoleMahasiswa, nil, strPtr("230001"), false},
		{"mahasiswa tanpa NIM", model.RoleMahasiswa, nil, nil, true},
		{"mahasiswa dengan NIDN", model.RoleMahasiswa, strPtr("0012345601"), strPtr("230001"), true},
		{"admin polos", model.RoleAdmin, nil, nil, false},
		{"admin dengan NIDN", model.RoleAdmin, strPtr("0012345601"), nil, true},
		{"NIDN string kosong dianggap tidak ada", model.RoleDosen, strPtr(""), nil, true},
		{"role tidak dikenal", model.Role("ghost"), nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIdentifiers(tt.role, tt.nidn, tt.nim)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, utils.KindValidation, utils.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserCreate(t *testing.T) {
	validInput := func() UserInput {
		return UserInput{
			Username: "dosen1",
			Email:    "dosen1@kampus.ac.id",
			Password: "rahasia123",
			FullName: "Dosen Satu",
			Role:     model.RoleDosen,
			NIDN:     strPtr("0012345601"),
		}
	}

	t.Run("berhasil dengan password ter-hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		user, err := svc.Create(validInput())
		require.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "rahasia123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("rahasia123")))
	})

	t.Run("email duplikat ditolak", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Create(validInput())
		require.NoError(t, err)

		in := validInput()
		in.Username = "dosen-lain"
		_, err = svc.Create(in)
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("username duplikat ditolak", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Create(validInput())
		require.NoError(t, err)

		in := validInput()
		in.Email = "lain@kampus.ac.id"
		_, err = svc.Create(in)
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})
}

func TestUserUpdateRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := repo.add(&model.User{
		Username: "mhs1",
		Email:    "mhs1@kampus.ac.id",
		Role:     model.RoleMahasiswa,
		NIM:      strPtr("230001"),
		IsActive: true,
	})

	t.Run("naik jadi reviewer dengan NIDN", func(t *testing.T) {
		updated, err := svc.UpdateRole(user.ID, model.RoleReviewer, strPtr("0012345609"), nil)
		require.NoError(t, err)
		assert.Equal(t, model.RoleReviewer, updated.Role)
		assert.Nil(t, updated.NIM)
	})

	t.Run("reviewer tanpa NIDN ditolak", func(t *testing.T) {
		_, err := svc.UpdateRole(user.ID, model.RoleReviewer, nil, nil)
		require.Error(t, err)
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	})
}

func TestUserDeactivate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := repo.add(&model.User{
		Username: "dosen1",
		Role:     model.RoleDosen,
		NIDN:     strPtr("0012345601"),
		IsActive: true,
	})

	require.NoError(t, svc.Deactivate(user.ID))
	assert.False(t, repo.users[user.ID].IsActive)

	err := svc.Deactivate(uuid.New())
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
