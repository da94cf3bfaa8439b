package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest is the payload for POST /comments.
type CreateCommentRequest struct {
	Text   string `json:"text" validate:"required"`
	UserID uint   `json:"userId" validate:"required"`
	PostID uint   `json:"postId" validate:"required"`
}

// UpdateCommentRequest is the payload for PUT /comments/:id.
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// GetComments handles GET /comments
// @Summary List comments
// @Description List all comments, newest first.
// @Tags comments
// @Produce json
// @Param limit query int false "Max results (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Comment
// @Router /comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)

	comments, err := s.commentRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(comments)
}

// CreateComment handles POST /comments
// @Summary Create comment
// @Description Create a comment on an existing post by an existing user.
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body CreateCommentRequest true "Comment payload"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	// Both referenced records must exist before the comment is persisted
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}
	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	comment := &models.Comment{
		Text:   req.Text,
		UserID: req.UserID,
		PostID: req.PostID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetComment handles GET /comments/:id
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(comment)
}

// UpdateComment handles PUT /comments/:id
// @Summary Update comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body UpdateCommentRequest true "New text"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req UpdateCommentRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateBody(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, mapAppError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
