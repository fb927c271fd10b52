package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/drivia/drivia/internal/organization/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Organization{}, &domain.AdminUser{}))
	return db
}

func seedOrg(id, userID snowflake.ID) *domain.Organization {
	now := time.Now().UTC()
	return &domain.Organization{
		ID:         id,
		UserID:     userID,
		Name:       "Auto École du Centre",
		TaxID:      "12345678900012",
		Address:    "12 rue de la Paix",
		City:       "Lyon",
		PostalCode: "69002",
		Email:      "contact@ecole-centre.fr",
		Phone:      "+33412345678",
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCreateAndFindOrganization(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t))

	org := seedOrg(1, 10)
	require.NoError(t, repo.Create(ctx, org))

	byID, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, org.Name, byID.Name)

	byEmail, err := repo.FindByEmail(ctx, "contact@ecole-centre.fr")
	require.NoError(t, err)
	require.Equal(t, org.ID, byEmail.ID)

	byTaxID, err := repo.FindByTaxID(ctx, "12345678900012")
	require.NoError(t, err)
	require.Equal(t, org.ID, byTaxID.ID)

	byUser, err := repo.FindByUserID(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, org.ID, byUser.ID)
}

func TestFindMissingOrganizationReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t))

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteOrganizationWithAdmins(t *testing.T) {
	ctx := context.Background()
	repo := New(setupTestDB(t))

	org := seedOrg(1, 10)
	require.NoError(t, repo.Create(ctx, org))
	require.NoError(t, repo.CreateAdmin(ctx, &domain.AdminUser{
		ID:         2,
		OrgID:      org.ID,
		UserID:     10,
		GivenName:  "Jean",
		FamilyName: "Dupont",
		Email:      "contact@ecole-centre.fr",
		Role:       domain.RoleAdmin,
		Status:     domain.StatusActive,
		CreatedAt:  time.Now().UTC(),
	}))

	admins, err := repo.ListAdmins(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "Dupont", admins[0].FamilyName)

	require.NoError(t, repo.DeleteAdminsByOrg(ctx, org.ID))
	require.NoError(t, repo.Delete(ctx, org.ID))

	_, err = repo.FindByID(ctx, org.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))

	admins, err = repo.ListAdmins(ctx, org.ID)
	require.NoError(t, err)
	require.Empty(t, admins)
}
