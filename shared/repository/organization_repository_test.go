package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/database/models"
	"organizations-backend/shared/database/testdb"
	"organizations-backend/shared/utils/query"
)

func newOrganization(owner uuid.UUID, name string) *models.Organization {
	org := &models.Organization{
		Name:     name,
		Type:     models.OrganizationTypeOrganization,
		Email:    "contact@example.com",
		IsActive: true,
	}
	org.SetOwner(models.UserOwner(owner))
	return org
}

func defaultParams() query.FilterParams {
	return query.FilterParams{
		Filters: map[string]string{},
		Sort:    query.SortParams{Field: "name", Order: "asc"},
		Page:    1,
		PerPage: query.DefaultPerPage,
	}
}

func TestOrganizationRepositoryCreateGrantsOwner(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	roles := NewRoleRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	org := newOrganization(owner, "Acme Corp")
	org.ContactInfo = datatypes.JSONMap{"twitter": "@acme"}
	require.NoError(t, repo.Create(ctx, org))

	assert.NotEqual(t, uuid.Nil, org.ID)
	assert.Equal(t, "acme-corp", org.Slug)

	role, err := roles.RoleOf(ctx, owner, authz.OrganizationContext(org.ID))
	require.NoError(t, err)
	assert.Equal(t, authz.RoleOwner, role)

	members, err := roles.Members(ctx, authz.OrganizationContext(org.ID))
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner, members[0].SubjectID)

	stored, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", stored.Name)
	assert.Equal(t, models.OwnerKindUser, stored.OwnerType)
	assert.Equal(t, "@acme", stored.ContactInfo["twitter"])
	assert.True(t, stored.IsActive)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestOrganizationRepositoryCreateDuplicateName(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	require.NoError(t, repo.Create(ctx, newOrganization(owner, "Acme")))

	err := repo.Create(ctx, newOrganization(owner, "Acme"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	// another owner may reuse the name and gets a distinct slug
	other := newOrganization(uuid.New(), "Acme")
	require.NoError(t, repo.Create(ctx, other))
	assert.Equal(t, "acme-1", other.Slug)
}

func TestOrganizationRepositoryConcurrentCreateSameName(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	owner := uuid.New()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(context.Background(), newOrganization(owner, "Acme"))
		}(i)
	}
	wg.Wait()

	created, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateName):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, duplicates)

	var count int64
	require.NoError(t, db.Model(&models.Organization{}).Where("owner_id = ?", owner).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// afterFirstQuery runs fn once, right after the first organizations query
// that match accepts has read its rows.
func afterFirstQuery(t *testing.T, db *gorm.DB, name string, match func(*gorm.DB) bool, fn func(*gorm.DB)) {
	t.Helper()
	fired := false
	err := db.Callback().Query().After("gorm:query").Register(name, func(tx *gorm.DB) {
		if fired || tx.Error != nil || tx.Statement.Table != "organizations" || !match(tx) {
			return
		}
		fired = true
		fn(db.Session(&gorm.Session{NewDB: true}))
	})
	require.NoError(t, err)
}

func TestOrganizationRepositoryCreateNameIndexAfterPrecheck(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	owner := uuid.New()

	// another request inserts the same name between the name check and the insert
	afterFirstQuery(t, db, "test:insert_same_name", func(tx *gorm.DB) bool {
		_, isCount := tx.Statement.Dest.(*int64)
		return isCount
	}, func(other *gorm.DB) {
		rival := newOrganization(owner, "Acme")
		rival.Slug = "acme-rival"
		require.NoError(t, other.Create(rival).Error)
	})

	err := repo.Create(context.Background(), newOrganization(owner, "Acme"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	var count int64
	require.NoError(t, db.Model(&models.Organization{}).Where("owner_id = ?", owner).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOrganizationRepositoryCreateRetriesTakenSlug(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	roles := NewRoleRepository(db)
	ctx := context.Background()

	// another owner takes the slug right after it was picked
	afterFirstQuery(t, db, "test:take_slug", func(tx *gorm.DB) bool {
		_, isPluck := tx.Statement.Dest.(*[]string)
		return isPluck
	}, func(other *gorm.DB) {
		rival := newOrganization(uuid.New(), "Acme")
		rival.Slug = "acme"
		require.NoError(t, other.Create(rival).Error)
	})

	owner := uuid.New()
	org := newOrganization(owner, "Acme")
	require.NoError(t, repo.Create(ctx, org))
	assert.Equal(t, "acme-1", org.Slug)

	role, err := roles.RoleOf(ctx, owner, authz.OrganizationContext(org.ID))
	require.NoError(t, err)
	assert.Equal(t, authz.RoleOwner, role)

	var total int64
	require.NoError(t, db.Model(&models.Organization{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestOrganizationRepositorySlugsSkipSoftDeleted(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	first := newOrganization(uuid.New(), "Blue Sky")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	second := newOrganization(uuid.New(), "Blue Sky")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "blue-sky-1", second.Slug)

	_, err := repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Organization{}).Where("id = ?", first.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "soft delete keeps the row")
}

func TestOrganizationRepositorySlugFallback(t *testing.T) {
	repo := NewOrganizationRepository(testdb.New(t))
	org := newOrganization(uuid.New(), "!!!")
	require.NoError(t, repo.Create(context.Background(), org))
	assert.Equal(t, "organization", org.Slug)
}

func TestOrganizationRepositoryUpdate(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	org := newOrganization(owner, "Acme")
	phone := "+1 555 0100"
	org.Phone = &phone
	require.NoError(t, repo.Create(ctx, org))
	require.NoError(t, repo.Create(ctx, newOrganization(owner, "Globex")))

	org.Name = "Acme Holdings"
	org.Phone = nil
	org.Type = models.OrganizationTypeIndividual
	require.NoError(t, repo.Update(ctx, org, false))

	stored, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", stored.Name)
	assert.Equal(t, "acme", stored.Slug, "slug is stable by default")
	assert.Nil(t, stored.Phone)
	assert.Equal(t, models.OrganizationTypeIndividual, stored.Type)
	assert.Equal(t, owner, stored.OwnerID)

	require.NoError(t, repo.Update(ctx, stored, true))
	assert.Equal(t, "acme-holdings", stored.Slug)

	stored.Name = "Globex"
	assert.ErrorIs(t, repo.Update(ctx, stored, false), ErrDuplicateName)
}

func TestOrganizationRepositoryUpdateMissing(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	org := newOrganization(uuid.New(), "Acme")
	require.NoError(t, repo.Create(ctx, org))
	require.NoError(t, repo.SoftDelete(ctx, org.ID))

	assert.ErrorIs(t, repo.Update(ctx, org, false), ErrNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, org.ID), ErrNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, uuid.New()), ErrNotFound)
}

func TestOrganizationRepositoryList(t *testing.T) {
	db := testdb.New(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	workspace := "ws-1"
	var ids []uuid.UUID
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		org := newOrganization(owner, name)
		if name != "Charlie" {
			org.WorkspaceID = &workspace
		}
		require.NoError(t, repo.Create(ctx, org))
		ids = append(ids, org.ID)
	}
	outsider := newOrganization(uuid.New(), "Delta")
	require.NoError(t, repo.Create(ctx, outsider))

	items, total, err := repo.List(ctx, ListQuery{IDs: ids, Params: defaultParams()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "Alpha", items[0].Name)

	items, total, err = repo.List(ctx, ListQuery{IDs: ids, WorkspaceID: workspace, Params: defaultParams()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	params := defaultParams()
	params.Search = "RAV"
	items, total, err = repo.List(ctx, ListQuery{IDs: ids, Params: params})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Bravo", items[0].Name)

	params = defaultParams()
	params.PerPage = 2
	params.Page = 2
	items, total, err = repo.List(ctx, ListQuery{IDs: ids, Params: params})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Charlie", items[0].Name)

	params = defaultParams()
	params.Filters["type"] = string(models.OrganizationTypeIndividual)
	_, total, err = repo.List(ctx, ListQuery{IDs: ids, Params: params})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	items, total, err = repo.List(ctx, ListQuery{Params: defaultParams()})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestIsDuplicateKeyOnUniqueIndex(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	owner := uuid.New()
	first := newOrganization(owner, "Acme")
	first.Slug = "acme"
	require.NoError(t, db.WithContext(ctx).Create(first).Error)

	second := newOrganization(owner, "Acme")
	second.Slug = "acme-2"
	err := db.WithContext(ctx).Create(second).Error
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
	assert.False(t, isDuplicateKey(nil))
}
