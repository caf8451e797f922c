package handlers

import (
	"errors"

	"event_management_service/internal/vendors/app"
	"event_management_service/internal/vendors/domain"

	"github.com/gofiber/fiber/v2"
)

// VendorHandler HTTP surface of vendor registration and listings
type VendorHandler struct {
	VendorUC app.VendorUseCase
}

// NewVendorHandler create a new VendorHandler
func NewVendorHandler(vendorUC app.VendorUseCase) *VendorHandler {
	return &VendorHandler{VendorUC: vendorUC}
}

func vendorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrVendorNotApproved):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// ListCategories all vendor categories
// @Summary List vendor categories
// @Tags Vendors
// @Produce json
// @Success 200 {object} string "categories"
// @Router /vendor/categories [get]
func (h *VendorHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.VendorUC.ListCategories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory add a vendor category, event managers only
// @Summary Create a vendor category
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body object true "category name"
// @Success 200 {object} string "category"
// @Failure 400 {object} string "name taken"
// @Router /vendor/categories [post]
func (h *VendorHandler) CreateCategory(c *fiber.Ctx) error {
	type request struct {
		Name string `json:"name"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	category, err := h.VendorUC.CreateCategory(req.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"category": category})
}

// UpdateCategory rename a vendor category, event managers only
// @Summary Rename a vendor category
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} string "category updated"
// @Router /vendor/categories/{id} [put]
func (h *VendorHandler) UpdateCategory(c *fiber.Ctx) error {
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

	if err := h.VendorUC.UpdateCategory(uint(id), req.Name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "category updated"})
}

// DeleteCategory remove a vendor category, event managers only
// @Summary Delete a vendor category
// @Tags Vendors
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} string "category deleted"
// @Router /vendor/categories/{id} [delete]
func (h *VendorHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.VendorUC.DeleteCategory(uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}

// RegisterVendor register the signed in user as a vendor
// @Summary Register as a vendor
// @Description A user holds at most one registration, it starts unapproved
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body object true "registration payload"
// @Success 200 {object} string "registration"
// @Failure 409 {object} string "already registered"
// @Router /vendor/register [post]
func (h *VendorHandler) RegisterVendor(c *fiber.Ctx) error {
	type request struct {
		CategoryID uint   `json:"category_id"`
		Details    string `json:"details"`
	}

	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	vendor, err := h.VendorUC.RegisterVendor(c.Context(), userID, req.CategoryID, req.Details)
	if err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"vendor": vendor})
}

// ApproveVendor approve a registration, event managers only
// @Summary Approve a vendor
// @Description Makes the vendor publicly visible and mails the owner
// @Tags Vendors
// @Produce json
// @Param id path int true "vendor id"
// @Success 200 {object} string "vendor approved"
// @Router /vendor/{id}/approve [post]
func (h *VendorHandler) ApproveVendor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.VendorUC.ApproveVendor(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "vendor approved"})
}

// UpdateVendor edit your own approved registration
// @Summary Update a vendor registration
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path int true "vendor id"
// @Success 200 {object} string "vendor updated"
// @Failure 403 {object} string "access denied or not approved"
// @Router /vendor/{id} [put]
func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	type request struct {
		CategoryID uint   `json:"category_id"`
		Details    string `json:"details"`
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

	if err := h.VendorUC.UpdateVendor(userID, uint(id), req.CategoryID, req.Details); err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "vendor updated"})
}

// DeleteVendor remove your own approved registration
// @Summary Delete a vendor registration
// @Tags Vendors
// @Produce json
// @Param id path int true "vendor id"
// @Success 200 {object} string "vendor deleted"
// @Failure 403 {object} string "access denied or not approved"
// @Router /vendor/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.VendorUC.DeleteVendor(c.Context(), userID, uint(id)); err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "vendor deleted"})
}

// GetVendor vendor details with presigned images
// @Summary Get a vendor
// @Tags Vendors
// @Produce json
// @Param id path int true "vendor id"
// @Success 200 {object} string "vendor"
// @Failure 404 {object} string "not found"
// @Router /vendor/{id} [get]
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	view, err := h.VendorUC.GetVendor(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"vendor": view})
}

// ListVendors approved vendors with optional filters
// @Summary List approved vendors
// @Tags Vendors
// @Produce json
// @Param category_id query int false "category filter"
// @Param search query string false "text filter on details"
// @Success 200 {object} string "vendors"
// @Router /vendor [get]
func (h *VendorHandler) ListVendors(c *fiber.Ctx) error {
	var filter domain.VendorFilter
	if v := c.QueryInt("category_id", 0); v > 0 {
		id := uint(v)
		filter.CategoryID = &id
	}
	filter.Search = c.Query("search")

	vendors, err := h.VendorUC.ListApprovedVendors(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"vendors": vendors})
}

// UploadVendorImage attach an image to your own registration
// @Summary Upload a vendor image
// @Tags Vendors
// @Accept mpfd
// @Produce json
// @Param id path int true "vendor id"
// @Param image formData file true "image file"
// @Param title formData string false "image title"
// @Success 200 {object} string "image stored"
// @Failure 403 {object} string "access denied"
// @Router /vendor/{id}/images [post]
func (h *VendorHandler) UploadVendorImage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
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

	img, err := h.VendorUC.UploadVendorImage(
		c.Context(), userID, uint(id),
		c.FormValue("title"),
		c.FormValue("details"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file, fileHeader.Size,
	)
	if err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"image": img})
}

// UpdateVendorImage retitle an image on your own registration
// @Summary Update a vendor image
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path int true "image id"
// @Success 200 {object} string "image updated"
// @Failure 403 {object} string "access denied"
// @Router /vendor/images/{id} [put]
func (h *VendorHandler) UpdateVendorImage(c *fiber.Ctx) error {
	type request struct {
		Title   string `json:"title"`
		Details string `json:"details"`
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
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	if err := h.VendorUC.UpdateVendorImage(userID, uint(id), req.Title, req.Details); err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "image updated"})
}

// DeleteVendorImage remove an image from your own registration
// @Summary Delete a vendor image
// @Tags Vendors
// @Produce json
// @Param id path int true "image id"
// @Success 200 {object} string "image deleted"
// @Failure 403 {object} string "access denied"
// @Router /vendor/images/{id} [delete]
func (h *VendorHandler) DeleteVendorImage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.VendorUC.DeleteVendorImage(c.Context(), userID, uint(id)); err != nil {
		return c.Status(vendorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "image deleted"})
}
