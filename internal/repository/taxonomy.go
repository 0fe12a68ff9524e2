package repository

import (
	"context"

	"sama/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaxonomyRepository manages the lazily created skill and interest tables.
type TaxonomyRepository interface {
	GetOrCreateSkill(ctx context.Context, name string) (*models.Skill, error)
	GetOrCreateInterest(ctx context.Context, name string) (*models.Interest, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListInterests(ctx context.Context) ([]models.Interest, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository returns a new TaxonomyRepository implementation.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// GetOrCreateSkill inserts the skill with ON CONFLICT DO NOTHING so two
// concurrent first creations of the same name resolve to a single row; the
// loser of the race reads back the winner's row.
func (r *taxonomyRepository) GetOrCreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	skill := models.Skill{Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&skill).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// The insert was a no-op when the name already existed; fetch that row.
	if skill.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &skill, nil
}

// GetOrCreateInterest mirrors GetOrCreateSkill for the interests table.
func (r *taxonomyRepository) GetOrCreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	interest := models.Interest{Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&interest).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if interest.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&interest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &interest, nil
}

func (r *taxonomyRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Order("name").Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *taxonomyRepository) ListInterests(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	if err := r.db.WithContext(ctx).Order("name").Find(&interests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return interests, nil
}
