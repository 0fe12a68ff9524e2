package repository

import (
	"context"
	"testing"

	"sama/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateSkill(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateSkill(ctx, "Go")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// A second call with the same name resolves to the existing row.
	second, err := repo.GetOrCreateSkill(ctx, "Go")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Skill{}).Where("name = ?", "Go").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateInterest(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateInterest(ctx, "Photography")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.GetOrCreateInterest(ctx, "Photography")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Interest{}).Where("name = ?", "Photography").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListSkillsAndInterests_SortedByName(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewTaxonomyRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zig", "Ada", "Go"} {
		_, err := repo.GetOrCreateSkill(ctx, name)
		require.NoError(t, err)
	}
	for _, name := range []string{"Running", "Chess"} {
		_, err := repo.GetOrCreateInterest(ctx, name)
		require.NoError(t, err)
	}

	skills, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Ada", "Go", "Zig"}, names)

	interests, err := repo.ListInterests(ctx)
	require.NoError(t, err)
	names = names[:0]
	for _, i := range interests {
		names = append(names, i.Name)
	}
	assert.Equal(t, []string{"Chess", "Running"}, names)
}
