// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"sama/internal/auth"
	"sama/internal/models"
	"sama/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var skillPool = []string{
	"Python", "Go", "JavaScript", "React", "SQL", "Machine Learning",
	"Public Speaking", "UI Design", "Data Analysis", "DevOps",
}

var interestPool = []string{
	"Open Source", "Startups", "Music", "Photography", "Hiking",
	"Chess", "Cooking", "Robotics", "Writing", "Gaming",
}

// Seeder populates the database with fake users, taxonomy rows, and posts.
type Seeder struct {
	db       *gorm.DB
	users    repository.UserRepository
	posts    repository.PostRepository
	taxonomy repository.TaxonomyRepository
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		taxonomy: repository.NewTaxonomyRepository(db),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	return s.db.Exec("TRUNCATE TABLE user_skills, user_interests, posts, skills, interests, users RESTART IDENTITY CASCADE").Error
}

// Run creates numUsers users and numPosts posts attributed to them.
// Every user gets the shared demo password so seeded accounts can log in.
func (s *Seeder) Run(ctx context.Context, numUsers, numPosts int) error {
	hashed, err := auth.HashPassword("Password123!")
	if err != nil {
		return err
	}

	roles := []string{models.RoleStudent, models.RoleStudent, models.RoleStudent, models.RoleMentor}
	availabilities := []string{models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityOffline}

	created := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Name:         gofakeit.Name(),
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			Password:     hashed,
			Avatar:       models.DefaultAvatarURL,
			Role:         roles[s.rng.Intn(len(roles))],
			Bio:          gofakeit.Sentence(10),
			Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			Rating:       s.rng.Intn(5),
			Availability: availabilities[s.rng.Intn(len(availabilities))],
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}

		if err := s.attachTaxonomy(ctx, user); err != nil {
			return err
		}
		created = append(created, user)
	}
	log.Printf("Seeded %d users", len(created))

	for i := 0; i < numPosts; i++ {
		author := created[s.rng.Intn(len(created))]
		post := &models.Post{
			Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
			Likes:    s.rng.Intn(50),
			Comments: s.rng.Intn(20),
			Shares:   s.rng.Intn(10),
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d posts", numPosts)

	return nil
}

// attachTaxonomy gives the user a few random skills and interests through the
// same get-or-create path the API uses.
func (s *Seeder) attachTaxonomy(ctx context.Context, user *models.User) error {
	skills := make([]models.Skill, 0, 3)
	for _, name := range pick(s.rng, skillPool, 1+s.rng.Intn(3)) {
		skill, err := s.taxonomy.GetOrCreateSkill(ctx, name)
		if err != nil {
			return err
		}
		skills = append(skills, *skill)
	}
	if err := s.users.ReplaceSkills(ctx, user, skills); err != nil {
		return err
	}

	interests := make([]models.Interest, 0, 3)
	for _, name := range pick(s.rng, interestPool, 1+s.rng.Intn(3)) {
		interest, err := s.taxonomy.GetOrCreateInterest(ctx, name)
		if err != nil {
			return err
		}
		interests = append(interests, *interest)
	}
	return s.users.ReplaceInterests(ctx, user, interests)
}

// pick returns n distinct random entries from pool.
func pick(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}
