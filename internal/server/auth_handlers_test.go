package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sama/internal/auth"
	"sama/internal/config"
	"sama/internal/models"
	"sama/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetOnline(ctx context.Context, id uint, online bool) error {
	args := m.Called(ctx, id, online)
	return args.Error(0)
}

func (m *MockUserRepository) ReplaceSkills(ctx context.Context, user *models.User, skills []models.Skill) error {
	args := m.Called(ctx, user, skills)
	return args.Error(0)
}

func (m *MockUserRepository) ReplaceInterests(ctx context.Context, user *models.User, interests []models.Interest) error {
	args := m.Called(ctx, user, interests)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, params repository.ListPostsParams) ([]*models.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) AdjustLikes(ctx context.Context, id uint, increment bool) (*models.Post, error) {
	args := m.Called(ctx, id, increment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

// MockTaxonomyRepository is a mock of the TaxonomyRepository interface
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) GetOrCreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockTaxonomyRepository) GetOrCreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockTaxonomyRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockTaxonomyRepository) ListInterests(ctx context.Context) ([]models.Interest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Interest), args.Error(1)
}

// newMockedServer wires a Server with mocked repositories onto a bare Fiber app.
func newMockedServer() (*Server, *fiber.App, *MockUserRepository, *MockPostRepository, *MockTaxonomyRepository) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTTTLMinutes: 30}
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	taxRepo := new(MockTaxonomyRepository)

	s := &Server{
		config:       cfg,
		tokens:       auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL()),
		userRepo:     userRepo,
		postRepo:     postRepo,
		taxonomyRepo: taxRepo,
	}

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, userRepo, postRepo, taxRepo
}

func jsonRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	validBody := func() map[string]any {
		return map[string]any{
			"name":     "Test User",
			"username": "testuser",
			"email":    "test@example.com",
			"password": "Password123!",
		}
	}

	t.Run("Success", func(t *testing.T) {
		_, app, userRepo, _, _ := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
		userRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
		userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
			ID:            1,
			Name:          "Test User",
			Username:      "testuser",
			Email:         "test@example.com",
			Role:          models.RoleStudent,
			SkillNames:    []string{},
			InterestNames: []string{},
		}, nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", validBody()), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "testuser", body["username"])
		assert.NotContains(t, body, "password")
		assert.Equal(t, []any{}, body["skills"])
		assert.Equal(t, []any{}, body["interests"])
		userRepo.AssertExpectations(t)
	})

	t.Run("Taxonomy names attached through get-or-create", func(t *testing.T) {
		_, app, userRepo, _, taxRepo := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
		userRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
		userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil)
		taxRepo.On("GetOrCreateSkill", mock.Anything, "Go").Return(&models.Skill{ID: 1, Name: "Go"}, nil)
		taxRepo.On("GetOrCreateInterest", mock.Anything, "Chess").Return(&models.Interest{ID: 1, Name: "Chess"}, nil)
		userRepo.On("ReplaceSkills", mock.Anything, mock.Anything, []models.Skill{{ID: 1, Name: "Go"}}).Return(nil)
		userRepo.On("ReplaceInterests", mock.Anything, mock.Anything, []models.Interest{{ID: 1, Name: "Chess"}}).Return(nil)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
			ID:            1,
			Username:      "testuser",
			SkillNames:    []string{"Go"},
			InterestNames: []string{"Chess"},
		}, nil)

		body := validBody()
		body["skills"] = []string{"Go"}
		body["interests"] = []string{"Chess"}

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", body), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		got := decodeBody(t, resp)
		assert.Equal(t, []any{"Go"}, got["skills"])
		assert.Equal(t, []any{"Chess"}, got["interests"])
		taxRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		body := validBody()
		delete(body, "email")

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", body), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid email", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		body := validBody()
		body["email"] = "not-an-email"

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", body), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid role", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		body := validBody()
		body["role"] = "wizard"

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", body), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		_, app, userRepo, _, _ := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{ID: 1}, nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", validBody()), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "CONFLICT", body["code"])
		assert.Equal(t, "Username already registered", body["error"])
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, app, userRepo, _, _ := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
		userRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{ID: 2}, nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", validBody()), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "CONFLICT", body["code"])
	})
}

func TestLogin(t *testing.T) {
	hashed, err := auth.HashPassword("Password123!")
	require.NoError(t, err)

	knownUser := func() *models.User {
		return &models.User{ID: 1, Username: "testuser", Password: hashed}
	}

	t.Run("Success", func(t *testing.T) {
		s, app, userRepo, _, _ := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(knownUser(), nil)
		userRepo.On("SetOnline", mock.Anything, uint(1), true).Return(nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "testuser",
			"password": "Password123!",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "bearer", body["token_type"])

		// The issued token must resolve back to the same username.
		username, err := s.tokens.Validate(body["access_token"].(string))
		require.NoError(t, err)
		assert.Equal(t, "testuser", username)
		userRepo.AssertExpectations(t)
	})

	t.Run("Wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, app, userRepo, _, _ := newMockedServer()

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(knownUser(), nil)
		userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

		wrongPass, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "testuser",
			"password": "wrong-password",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)

		unknown, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
			"username": "ghost",
			"password": "Password123!",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		assert.Equal(t, decodeBody(t, wrongPass), decodeBody(t, unknown))
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, app, userRepo, _, _ := newMockedServer()

		token, err := s.tokens.Issue("testuser")
		require.NoError(t, err)

		userRepo.On("GetByUsername", mock.Anything, "testuser").Return(&models.User{ID: 1, Username: "testuser"}, nil)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
			ID:            1,
			Username:      "testuser",
			SkillNames:    []string{},
			InterestNames: []string{},
		}, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "testuser", decodeBody(t, resp)["username"])
	})

	t.Run("Missing header", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/auth/me", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Malformed header", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Token abc")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, app, _, _, _ := newMockedServer()

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Token for deleted user", func(t *testing.T) {
		s, app, userRepo, _, _ := newMockedServer()

		token, err := s.tokens.Issue("gone")
		require.NoError(t, err)
		userRepo.On("GetByUsername", mock.Anything, "gone").Return(nil, nil)

		req := jsonRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
