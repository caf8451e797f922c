package handlers

import (
	"errors"
	"strconv"

	"event_management_service/internal/chat/app"
	"event_management_service/internal/chat/domain"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler REST surface of the chat subsystem, the websocket
// handler covers the live path
type ChatHandler struct {
	RoomUC    *app.RoomUseCase
	MessageUC *app.SendMessageUseCase
}

// NewChatHandler create a new ChatHandler
func NewChatHandler(roomUC *app.RoomUseCase, messageUC *app.SendMessageUseCase) *ChatHandler {
	return &ChatHandler{RoomUC: roomUC, MessageUC: messageUC}
}

func chatStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrSelfChat):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func targetIDQuery(c *fiber.Ctx) (int64, error) {
	raw := c.Query("target_id")
	if raw == "" {
		return 0, errors.New("target_id is required")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// ResolveRoom return the room shared with the target user, creating it
// on first contact
// @Summary Resolve or create the room for a pair
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body object true "target user id"
// @Success 200 {object} string "room"
// @Failure 400 {object} string "invalid request"
// @Router /chat/rooms [post]
func (h *ChatHandler) ResolveRoom(c *fiber.Ctx) error {
	type request struct {
		TargetID int64 `json:"target_id"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.TargetID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_id is required"})
	}

	room, err := h.RoomUC.ResolveOrCreateRoom(c.Context(), userID, req.TargetID)
	if err != nil {
		return c.Status(chatStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{
		"room_name": room.Name,
		"pair_key":  room.PairKey,
	}
	if counterpart, err := h.RoomUC.ResolveCounterpart(room, userID); err == nil {
		resp["counterpart_id"] = counterpart
	}
	return c.JSON(resp)
}

// ListRooms rooms where the signed in user is a participant
// @Summary List my chat rooms
// @Tags Chat
// @Produce json
// @Success 200 {object} string "rooms"
// @Router /chat/rooms [get]
func (h *ChatHandler) ListRooms(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	rooms, err := h.RoomUC.ListRoomsFor(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(rooms))
	for _, room := range rooms {
		entry := fiber.Map{
			"room_name": room.Name,
			"pair_key":  room.PairKey,
		}
		if counterpart, err := h.RoomUC.ResolveCounterpart(&room, userID); err == nil {
			entry["counterpart_id"] = counterpart
		}
		out = append(out, entry)
	}
	return c.JSON(fiber.Map{"rooms": out})
}

// SendMessage send a message to the target user, creating the pair's
// room if the two never talked
// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body object true "target user id and content"
// @Success 200 {object} string "message id"
// @Failure 400 {object} string "invalid request"
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	type request struct {
		TargetID int64  `json:"target_id"`
		Content  string `json:"content"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.TargetID == 0 || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_id and content are required"})
	}

	msgID, err := h.MessageUC.Execute(c.Context(), userID, req.TargetID, req.Content)
	if err != nil {
		return c.Status(chatStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message_id": msgID})
}

// ListMessages full history with the target user, oldest first
// @Summary List messages with a user
// @Tags Chat
// @Produce json
// @Param target_id query int true "target user id"
// @Success 200 {object} string "messages"
// @Failure 400 {object} string "invalid request"
// @Router /chat/messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	targetID, err := targetIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_id is required"})
	}

	msgs, err := h.MessageUC.ListMessagesForPair(c.Context(), userID, targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"messages": msgs})
}
