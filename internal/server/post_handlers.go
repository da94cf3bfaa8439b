package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the payload for POST /posts.
type CreatePostRequest struct {
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text" validate:"required"`
	UserID uint   `json:"userId" validate:"required"`
}

// UpdatePostRequest is the payload for PUT /posts/:id. Empty fields are left unchanged.
type UpdatePostRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// GetPosts handles GET /posts
// @Summary List posts
// @Description List all posts, newest first.
// @Tags posts
// @Produce json
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// CreatePost handles POST /posts
// @Summary Create post
// @Description Create a new post for an existing user.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	// The owning user must exist before the post is persisted
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	post := &models.Post{
		Title:  req.Title,
		Text:   req.Text,
		UserID: req.UserID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	// Load author data for the response
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetPost handles GET /posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(post)
}

// GetPostComments handles GET /posts/:id/comments
// @Summary List a post's comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// UpdatePost handles PUT /posts/:id
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body UpdatePostRequest true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req UpdatePostRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Text != "" {
		post.Text = req.Text
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
