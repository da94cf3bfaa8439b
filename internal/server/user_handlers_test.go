package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestServer() *Server {
	return &Server{validate: validator.New()}
}

func TestGetUsers(t *testing.T) {
	t.Run("Empty list passthrough", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Get("/users", s.GetUsers)

		mockRepo.On("List", mock.Anything, 100, 0).Return([]models.User{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, "[]", string(body))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Returns repository rows unmodified", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Get("/users", s.GetUsers)

		users := []models.User{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		}
		mockRepo.On("List", mock.Anything, 100, 0).Return(users, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got []models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got, 2)
		assert.Equal(t, "Ada", got[0].FirstName)
		assert.Equal(t, "grace@example.com", got[1].Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Pagination params forwarded", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Get("/users", s.GetUsers)

		mockRepo.On("List", mock.Anything, 10, 30).Return([]models.User{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?limit=10&offset=30", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newTestServer()
	s.userRepo = mockRepo
	app.Post("/users", s.CreateUser)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"firstName": "Ada",
				"lastName":  "Lovelace",
				"email":     "ada@example.com",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.FirstName == "Ada" && u.LastName == "Lovelace" && u.Email == "ada@example.com"
				})).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"firstName": "Ada",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"firstName": "Ada",
				"lastName":  "Lovelace",
				"email":     "not-an-email",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	mockRepo.AssertExpectations(t)
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	app := fiber.New()
	s := newTestServer()
	s.userRepo = new(MockUserRepository)
	app.Post("/users", s.CreateUser)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Found",
			path: "/users/1",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, FirstName: "Ada"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not found",
			path: "/users/99",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid id",
			path:           "/users/abc",
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := newTestServer()
			s.userRepo = mockRepo
			app.Get("/users/:id", s.GetUser)

			tt.mockSetup(mockRepo)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	t.Run("Partial update leaves other fields unchanged", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Put("/users/:id", s.UpdateUser)

		mockRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil).Once()
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.ID == 1 && u.FirstName == "Augusta" &&
				u.LastName == "Lovelace" && u.Email == "ada@example.com"
		})).Return(nil).Once()

		body, _ := json.Marshal(map[string]string{"firstName": "Augusta"})
		req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Augusta", got.FirstName)
		assert.Equal(t, "Lovelace", got.LastName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Put("/users/:id", s.UpdateUser)

		mockRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", 99)).Once()

		body, _ := json.Marshal(map[string]string{"firstName": "Nobody"})
		req := httptest.NewRequest(http.MethodPut, "/users/99", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid email rejected", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		s := newTestServer()
		s.userRepo = mockRepo
		app.Put("/users/:id", s.UpdateUser)

		body, _ := json.Marshal(map[string]string{"email": "not-an-email"})
		req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newTestServer()
	s.userRepo = mockRepo
	app.Delete("/users/:id", s.DeleteUser)

	mockRepo.On("GetByID", mock.Anything, uint(4)).
		Return(&models.User{ID: 4}, nil).Once()
	mockRepo.On("Delete", mock.Anything, uint(4)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/users/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}
