package handlers

import (
	"errors"

	"event_management_service/internal/event/app"
	"event_management_service/internal/event/domain"

	"github.com/gofiber/fiber/v2"
)

// EventHandler HTTP surface of the event catalogue
type EventHandler struct {
	EventUC app.EventUseCase
}

// NewEventHandler create a new EventHandler
func NewEventHandler(eventUC app.EventUseCase) *EventHandler {
	return &EventHandler{EventUC: eventUC}
}

func eventStatus(err error) int {
	if errors.Is(err, domain.ErrAccessDenied) {
		return fiber.StatusForbidden
	}
	return fiber.StatusBadRequest
}

// ListCategories all event categories
// @Summary List event categories
// @Tags Events
// @Produce json
// @Success 200 {object} string "categories"
// @Router /event/categories [get]
func (h *EventHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.EventUC.ListCategories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory add a category, event managers only
// @Summary Create an event category
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "category name"
// @Success 200 {object} string "category"
// @Failure 400 {object} string "name taken"
// @Router /event/categories [post]
func (h *EventHandler) CreateCategory(c *fiber.Ctx) error {
	type request struct {
		Name string `json:"name"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	category, err := h.EventUC.CreateCategory(req.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"category": category})
}

// UpdateCategory rename a category, event managers only
// @Summary Rename an event category
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} string "category updated"
// @Router /event/categories/{id} [put]
func (h *EventHandler) UpdateCategory(c *fiber.Ctx) error {
	type request struct {
		Name string `json:"name"`
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	if err := h.EventUC.UpdateCategory(uint(id), req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "category updated"})
}

// DeleteCategory remove a category, event managers only
// @Summary Delete an event category
// @Tags Events
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} string "category deleted"
// @Router /event/categories/{id} [delete]
func (h *EventHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.EventUC.DeleteCategory(uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}

// SearchEvents list events with optional category and text filters
// @Summary Search events
// @Tags Events
// @Produce json
// @Param category_id query int false "category filter"
// @Param search query string false "text filter"
// @Success 200 {object} string "events"
// @Router /event [get]
func (h *EventHandler) SearchEvents(c *fiber.Ctx) error {
	var filter domain.EventFilter
	if v := c.QueryInt("category_id", 0); v > 0 {
		id := uint(v)
		filter.CategoryID = &id
	}
	filter.Search = c.Query("search")

	events, err := h.EventUC.SearchEvents(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetEvent one event by id
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "event"
// @Failure 404 {object} string "not found"
// @Router /event/{id} [get]
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	event, err := h.EventUC.GetEvent(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"event": event})
}

// CreateEvent add an event, event managers only
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "event payload"
// @Success 200 {object} string "event"
// @Router /event [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	type request struct {
		CategoryID uint   `json:"category_id"`
		Name       string `json:"name"`
		Details    string `json:"details"`
		Price      int64  `json:"price"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	event := &domain.Event{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Details:    req.Details,
		Price:      req.Price,
	}
	if err := h.EventUC.CreateEvent(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"event": event})
}

// UpdateEvent edit an event, event managers only
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "event updated"
// @Router /event/{id} [put]
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	type request struct {
		CategoryID uint   `json:"category_id"`
		Name       string `json:"name"`
		Details    string `json:"details"`
		Price      int64  `json:"price"`
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	event := &domain.Event{
		ID:         uint(id),
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Details:    req.Details,
		Price:      req.Price,
	}
	if err := h.EventUC.UpdateEvent(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "event updated"})
}

// DeleteEvent remove an event, event managers only
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "event deleted"
// @Router /event/{id} [delete]
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.EventUC.DeleteEvent(uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

// ListIdeas event ideas filtered by event, city or idea text
// @Summary List event ideas
// @Tags Events
// @Produce json
// @Param event_id query int false "event filter"
// @Param city query string false "city filter"
// @Param idea query string false "idea text filter"
// @Success 200 {object} string "ideas"
// @Router /event/ideas [get]
func (h *EventHandler) ListIdeas(c *fiber.Ctx) error {
	var filter domain.IdeaFilter
	if v := c.QueryInt("event_id", 0); v > 0 {
		filter.EventID = uint(v)
	}
	filter.City = c.Query("city")
	filter.Idea = c.Query("idea")

	ideas, err := h.EventUC.ListIdeas(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ideas": ideas})
}

// CreateIdea add an idea under an event, event managers only
// @Summary Create an event idea
// @Tags Events
// @Accept json
// @Produce json
// @Param request body object true "idea payload"
// @Success 200 {object} string "idea"
// @Router /event/ideas [post]
func (h *EventHandler) CreateIdea(c *fiber.Ctx) error {
	type request struct {
		EventID uint   `json:"event_id"`
		Idea    string `json:"idea"`
		City    string `json:"city"`
		Details string `json:"details"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Idea == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	idea := &domain.EventIdea{
		EventID: req.EventID,
		Idea:    req.Idea,
		City:    req.City,
		Details: req.Details,
	}
	if err := h.EventUC.CreateIdea(idea); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"idea": idea})
}

// UpdateIdea edit an idea, event managers only
// @Summary Update an event idea
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "idea id"
// @Success 200 {object} string "idea updated"
// @Router /event/ideas/{id} [put]
func (h *EventHandler) UpdateIdea(c *fiber.Ctx) error {
	type request struct {
		EventID uint   `json:"event_id"`
		Idea    string `json:"idea"`
		City    string `json:"city"`
		Details string `json:"details"`
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Idea == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	idea := &domain.EventIdea{
		ID:      uint(id),
		EventID: req.EventID,
		Idea:    req.Idea,
		City:    req.City,
		Details: req.Details,
	}
	if err := h.EventUC.UpdateIdea(idea); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "idea updated"})
}

// DeleteIdea remove an idea, event managers only
// @Summary Delete an event idea
// @Tags Events
// @Produce json
// @Param id path int true "idea id"
// @Success 200 {object} string "idea deleted"
// @Router /event/ideas/{id} [delete]
func (h *EventHandler) DeleteIdea(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.EventUC.DeleteIdea(uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "idea deleted"})
}

// ListEventImages presigned image URLs of an event
// @Summary List event images
// @Tags Events
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "images"
// @Router /event/{id}/images [get]
func (h *EventHandler) ListEventImages(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	images, err := h.EventUC.ListEventImages(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"images": images})
}

// UploadEventImage attach an image to an event, event managers only
// @Summary Upload an event image
// @Tags Events
// @Accept mpfd
// @Produce json
// @Param id path int true "event id"
// @Param image formData file true "image file"
// @Param title formData string false "image title"
// @Success 200 {object} string "image stored"
// @Router /event/{id}/images [post]
func (h *EventHandler) UploadEventImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read image file"})
	}
	defer file.Close()

	img, err := h.EventUC.UploadEventImage(
		c.Context(), uint(id),
		c.FormValue("title"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file, fileHeader.Size,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"image": img})
}

// UpdateEventImage retitle an event image, event managers only
// @Summary Update an event image
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "image id"
// @Success 200 {object} string "image updated"
// @Failure 400 {object} string "invalid request"
// @Router /event/images/{id} [put]
func (h *EventHandler) UpdateEventImage(c *fiber.Ctx) error {
	type request struct {
		Title string `json:"title"`
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	if err := h.EventUC.UpdateEventImage(uint(id), req.Title); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "image updated"})
}

// DeleteEventImage remove an event image, event managers only
// @Summary Delete an event image
// @Tags Events
// @Produce json
// @Param id path int true "image id"
// @Success 200 {object} string "image deleted"
// @Router /event/images/{id} [delete]
func (h *EventHandler) DeleteEventImage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.EventUC.DeleteEventImage(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "image deleted"})
}

// ListReviews reviews of an event, newest first
// @Summary List event reviews
// @Tags Events
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "reviews"
// @Router /event/{id}/reviews [get]
func (h *EventHandler) ListReviews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	reviews, err := h.EventUC.ListReviews(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// AddReview post a review as the signed in user
// @Summary Add an event review
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} string "review"
// @Router /event/{id}/reviews [post]
func (h *EventHandler) AddReview(c *fiber.Ctx) error {
	type request struct {
		Review string `json:"review"`
		Rating int    `json:"rating"`
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
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	review, err := h.EventUC.AddReview(userID, uint(id), req.Review, req.Rating)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"review": review})
}

// UpdateReview edit your own review
// @Summary Update an event review
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "review id"
// @Success 200 {object} string "review updated"
// @Failure 403 {object} string "access denied"
// @Router /event/reviews/{id} [put]
func (h *EventHandler) UpdateReview(c *fiber.Ctx) error {
	type request struct {
		Review string `json:"review"`
		Rating int    `json:"rating"`
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
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.EventUC.UpdateReview(userID, uint(id), req.Review, req.Rating); err != nil {
		return c.Status(eventStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "review updated"})
}

// DeleteReview remove your own review
// @Summary Delete an event review
// @Tags Events
// @Produce json
// @Param id path int true "review id"
// @Success 200 {object} string "review deleted"
// @Failure 403 {object} string "access denied"
// @Router /event/reviews/{id} [delete]
func (h *EventHandler) DeleteReview(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.EventUC.DeleteReview(userID, uint(id)); err != nil {
		return c.Status(eventStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}
