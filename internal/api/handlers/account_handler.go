package handlers

import (
	"time"

	"event_management_service/internal/account/app"
	"event_management_service/internal/account/domain"
	"event_management_service/pkg/logger"
	"event_management_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccountHandler HTTP surface of the account use cases
type AccountHandler struct {
	AccountUC app.AccountUseCase
}

// NewAccountHandler create a new AccountHandler
func NewAccountHandler(accountUC app.AccountUseCase) *AccountHandler {
	return &AccountHandler{AccountUC: accountUC}
}

// Register sign up a new user
// @Summary Register a new user
// @Description Creates the account and signs the user in
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "registration payload"
// @Success 200 {object} string "token"
// @Failure 400 {object} string "invalid request"
// @Router /account/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Email         string `json:"email"`
		Username      string `json:"username"`
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		ContactNumber string `json:"contact_number"`
		Password      string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email), zap.String("username", req.Username))

	user := &domain.User{
		Email:         req.Email,
		Username:      req.Username,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	}
	token, err := h.AccountUC.Register(c.Context(), user)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"token": token, "message": "register success"})
}

// Login sign in with email and password
// @Summary User login
// @Description Verifies credentials and opens a session
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "login payload"
// @Success 200 {object} string "token"
// @Failure 401 {object} string "login failed"
// @Router /account/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login request", zap.String("email", req.Email))

	token, err := h.AccountUC.Login(c.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"token": token, "message": "login success"})
}

// Logout close the current session
// @Summary User logout
// @Description Drops the session behind the presented token
// @Tags Accounts
// @Produce json
// @Success 200 {object} string "logout success"
// @Failure 500 {object} string "server error"
// @Router /account/logout [post]
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	token, ok := c.Locals(middlewares.TokenRaw).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing token in context"})
	}

	if err := h.AccountUC.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

// ChangePassword replace the password of the signed in user
// @Summary Change password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "old and new password"
// @Success 200 {object} string "password changed"
// @Failure 400 {object} string "invalid request"
// @Router /account/password/change [post]
func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	type request struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}

	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing user in context"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.AccountUC.ChangePassword(c.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// ForgotPassword mail a reset link to the given address
// @Summary Request a password reset
// @Description Always answers 200 so addresses cannot be probed
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "account email"
// @Success 200 {object} string "reset mail queued"
// @Router /account/password/forgot [post]
func (h *AccountHandler) ForgotPassword(c *fiber.Ctx) error {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.AccountUC.SendPasswordResetEmail(c.Context(), req.Email); err != nil {
		logger.Log.Errorf("password reset mail", err, zap.String("email", req.Email))
	}
	return c.JSON(fiber.Map{"message": "if the address exists a reset mail has been sent"})
}

// ResetPassword set a new password with a reset token
// @Summary Reset password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "reset token and new password"
// @Success 200 {object} string "password reset"
// @Failure 400 {object} string "invalid token"
// @Router /account/password/reset [post]
func (h *AccountHandler) ResetPassword(c *fiber.Ctx) error {
	type request struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.AccountUC.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "password reset"})
}

// GetProfile profile of the signed in user
// @Summary Get own profile
// @Tags Accounts
// @Produce json
// @Success 200 {object} string "profile"
// @Failure 404 {object} string "not found"
// @Router /account/profile [get]
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing user in context"})
	}

	user, err := h.AccountUC.GetProfile(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	imageURL, err := h.AccountUC.ProfileImageURL(c.Context(), userID)
	if err != nil {
		logger.Log.Errorf("presign profile image", err, zap.Int64("user_id", userID))
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":               user.ID,
			"email":            user.Email,
			"username":         user.Username,
			"first_name":       user.FirstName,
			"last_name":        user.LastName,
			"contact_number":   user.ContactNumber,
			"is_event_manager": user.IsEventManager,
			"profile_image":    imageURL,
		},
	})
}

// UpdateProfile change names and contact number
// @Summary Update own profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body object true "profile fields"
// @Success 200 {object} string "profile updated"
// @Failure 400 {object} string "invalid request"
// @Router /account/profile [put]
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	type request struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		ContactNumber string `json:"contact_number"`
	}

	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing user in context"})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	user := &domain.User{
		ID:            userID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
	}
	if err := h.AccountUC.UpdateProfile(c.Context(), user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "profile updated"})
}

// DeleteProfile remove the account of the signed in user
// @Summary Delete own account
// @Tags Accounts
// @Produce json
// @Success 200 {object} string "account deleted"
// @Failure 500 {object} string "server error"
// @Router /account/profile [delete]
func (h *AccountHandler) DeleteProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing user in context"})
	}

	if err := h.AccountUC.DeleteProfile(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "account deleted"})
}

// UploadProfileImage attach a profile picture
// @Summary Upload profile image
// @Tags Accounts
// @Accept mpfd
// @Produce json
// @Param image formData file true "image file"
// @Success 200 {object} string "image stored"
// @Failure 400 {object} string "invalid request"
// @Router /account/profile/image [post]
func (h *AccountHandler) UploadProfileImage(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(int64)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "missing user in context"})
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

	objectName, err := h.AccountUC.UploadProfileImage(
		c.Context(), userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file, fileHeader.Size,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "image stored", "object": objectName})
}

// ListEventManagers users that can be contacted about events
// @Summary List event managers
// @Tags Accounts
// @Produce json
// @Success 200 {object} string "managers"
// @Router /account/managers [get]
func (h *AccountHandler) ListEventManagers(c *fiber.Ctx) error {
	managers, err := h.AccountUC.ListEventManagers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(managers))
	for _, m := range managers {
		out = append(out, fiber.Map{
			"id":       m.ID,
			"username": m.Username,
			"name":     m.FullName(),
		})
	}
	return c.JSON(fiber.Map{"managers": out})
}
