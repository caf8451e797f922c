package handlers

import (
	"errors"

	"event_management_service/internal/event/app"
	"event_management_service/internal/event/domain"
	"event_management_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ForumHandler HTTP surface of testimonials and the Q&A forum
type ForumHandler struct {
	ForumUC app.ForumUseCase
}

// NewForumHandler create a new ForumHandler
func NewForumHandler(forumUC app.ForumUseCase) *ForumHandler {
	return &ForumHandler{ForumUC: forumUC}
}

func callerID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return 0, errors.New("missing user in context")
	}
	return userID, nil
}

func forumStatus(err error) int {
	if errors.Is(err, domain.ErrAccessDenied) {
		return fiber.StatusForbidden
	}
	return fiber.StatusBadRequest
}

// ListTestimonials newest first
// @Summary List testimonials
// @Tags Forum
// @Produce json
// @Success 200 {object} string "testimonials"
// @Router /forum/testimonials [get]
func (h *ForumHandler) ListTestimonials(c *fiber.Ctx) error {
	testimonials, err := h.ForumUC.ListTestimonials()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// AddTestimonial post a testimonial as the signed in user
// @Summary Add a testimonial
// @Tags Forum
// @Accept json
// @Produce json
// @Param request body object true "review text"
// @Success 200 {object} string "testimonial"
// @Failure 400 {object} string "invalid request"
// @Router /forum/testimonials [post]
func (h *ForumHandler) AddTestimonial(c *fiber.Ctx) error {
	type request struct {
		Review string `json:"review"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Review == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "review is required"})
	}

	t, err := h.ForumUC.AddTestimonial(userID, req.Review)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"testimonial": t})
}

// UpdateTestimonial edit your own testimonial
// @Summary Update a testimonial
// @Tags Forum
// @Accept json
// @Produce json
// @Param id path int true "testimonial id"
// @Success 200 {object} string "testimonial updated"
// @Failure 403 {object} string "access denied"
// @Router /forum/testimonials/{id} [put]
func (h *ForumHandler) UpdateTestimonial(c *fiber.Ctx) error {
	type request struct {
		Review string `json:"review"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Review == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "review is required"})
	}

	if err := h.ForumUC.UpdateTestimonial(userID, uint(id), req.Review); err != nil {
		return c.Status(forumStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "testimonial updated"})
}

// DeleteTestimonial remove your own testimonial
// @Summary Delete a testimonial
// @Tags Forum
// @Produce json
// @Param id path int true "testimonial id"
// @Success 200 {object} string "testimonial deleted"
// @Failure 403 {object} string "access denied"
// @Router /forum/testimonials/{id} [delete]
func (h *ForumHandler) DeleteTestimonial(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.ForumUC.DeleteTestimonial(userID, uint(id)); err != nil {
		return c.Status(forumStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "testimonial deleted"})
}

// ListQuestions newest first
// @Summary List questions
// @Tags Forum
// @Produce json
// @Success 200 {object} string "questions"
// @Router /forum/questions [get]
func (h *ForumHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.ForumUC.ListQuestions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"questions": questions})
}

// AskQuestion post a question as the signed in user
// @Summary Ask a question
// @Tags Forum
// @Accept json
// @Produce json
// @Param request body object true "question text"
// @Success 200 {object} string "question"
// @Failure 400 {object} string "invalid request"
// @Router /forum/questions [post]
func (h *ForumHandler) AskQuestion(c *fiber.Ctx) error {
	type request struct {
		Question string `json:"question"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
	}

	q, err := h.ForumUC.AskQuestion(userID, req.Question)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"question": q})
}

// AnswerQuestion answer a question, event managers only
// @Summary Answer a question
// @Tags Forum
// @Accept json
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} string "question answered"
// @Failure 403 {object} string "access denied"
// @Router /forum/questions/{id}/answer [put]
func (h *ForumHandler) AnswerQuestion(c *fiber.Ctx) error {
	type request struct {
		Answer string `json:"answer"`
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "answer is required"})
	}

	if err := h.ForumUC.AnswerQuestion(uint(id), req.Answer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "question answered"})
}

// DeleteQuestion remove a question, event managers only
// @Summary Delete a question
// @Tags Forum
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} string "question deleted"
// @Failure 403 {object} string "access denied"
// @Router /forum/questions/{id} [delete]
func (h *ForumHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.ForumUC.DeleteQuestion(uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "question deleted"})
}
