package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizations-backend/shared/database/models"
	"organizations-backend/shared/database/testdb"
)

func TestUserRepository(t *testing.T) {
	users := NewUserRepository(testdb.New(t))
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	found, err := users.FindByEmail(ctx, " Alice@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err = users.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", found.Name)

	_, err = users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := users.FindByIDs(ctx, []uuid.UUID{alice.ID, bob.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
	assert.Equal(t, "alice@example.com", byID[alice.ID].Email)

	assert.Error(t, users.Create(ctx, &models.User{Name: "Alice again", Email: "alice@example.com"}))
}
