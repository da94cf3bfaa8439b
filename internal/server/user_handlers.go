package server

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdateUserRequest is the payload for PUT /users/:id. Empty fields are left unchanged.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// GetUsers handles GET /users
// @Summary List users
// @Description List all users.
// @Tags users
// @Produce json
// @Param limit query int false "Max results (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	page := parsePagination(c, 100)

	users, err := s.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "Request timeout",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// CreateUser handles POST /users
// @Summary Create user
// @Description Create a new user.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /users/:id
// @Summary Get user
// @Description Get a user by ID.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(user)
}

// GetUserPosts handles GET /users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	page := parsePagination(c, 20)
	posts, err := s.postRepo.ListByUser(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// UpdateUser handles PUT /users/:id
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req UpdateUserRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}
