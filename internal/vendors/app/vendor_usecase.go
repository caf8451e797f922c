package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	maildomain "event_management_service/internal/mailer/domain"
	mailrepo "event_management_service/internal/mailer/repository"
	"event_management_service/internal/vendors/domain"
	"event_management_service/internal/vendors/repository"
	"event_management_service/pkg/database"
	errprocess "event_management_service/pkg/err"
	"event_management_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imageURLExpiry = 15 * time.Minute

// UserDirectory resolves the contact address of a platform user.
type UserDirectory interface {
	FindEmail(ctx context.Context, userID int64) (string, error)
}

// VendorView a registration together with its presigned images
type VendorView struct {
	ID         uint              `json:"id"`
	UserID     int64             `json:"user_id"`
	CategoryID uint              `json:"category_id"`
	Details    string            `json:"details"`
	IsApproved bool              `json:"is_approved"`
	Images     []VendorImageView `json:"images"`
}

// VendorImageView an image record with a presigned download URL
type VendorImageView struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details"`
	URL     string `json:"url"`
}

// VendorUseCase vendor registration and the approval workflow.
// Category mutations and ApproveVendor are only reachable through
// manager-gated routes.
type VendorUseCase interface {
	CreateCategory(name string) (*domain.VendorCategory, error)
	UpdateCategory(id uint, name string) error
	DeleteCategory(id uint) error
	ListCategories() ([]domain.VendorCategory, error)

	RegisterVendor(ctx context.Context, userID int64, categoryID uint, details string) (*domain.VendorRegistration, error)
	ApproveVendor(ctx context.Context, id uint) error
	UpdateVendor(callerID int64, id uint, categoryID uint, details string) error
	DeleteVendor(ctx context.Context, callerID int64, id uint) error
	GetVendor(ctx context.Context, id uint) (*VendorView, error)
	ListApprovedVendors(filter domain.VendorFilter) ([]domain.VendorRegistration, error)

	UploadVendorImage(ctx context.Context, callerID int64, vendorID uint, title, details, fileName, contentType string, r io.Reader, size int64) (*domain.VendorImage, error)
	UpdateVendorImage(callerID int64, imageID uint, title, details string) error
	DeleteVendorImage(ctx context.Context, callerID int64, imageID uint) error
}

type vendorUseCase struct {
	repo      repository.VendorRepo
	users     UserDirectory
	mailQueue mailrepo.MailQueue
	store     database.MinIOClientRepo
}

// NewVendorUseCase create a new VendorUseCase
func NewVendorUseCase(repo repository.VendorRepo, users UserDirectory, mailQueue mailrepo.MailQueue, store database.MinIOClientRepo) VendorUseCase {
	return &vendorUseCase{repo: repo, users: users, mailQueue: mailQueue, store: store}
}

// CreateCategory rejects a name that is already taken
func (u *vendorUseCase) CreateCategory(name string) (*domain.VendorCategory, error) {
	existing, err := u.repo.FindCategoryByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errprocess.Set("vendor category name already exists")
	}
	c := &domain.VendorCategory{Name: name}
	if err := u.repo.CreateCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *vendorUseCase) UpdateCategory(id uint, name string) error {
	existing, err := u.repo.FindCategoryByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return errprocess.Set("vendor category name already exists")
	}
	c, err := u.repo.GetCategory(id)
	if err != nil {
		return err
	}
	c.Name = name
	return u.repo.UpdateCategory(c)
}

func (u *vendorUseCase) DeleteCategory(id uint) error {
	return u.repo.DeleteCategory(id)
}

func (u *vendorUseCase) ListCategories() ([]domain.VendorCategory, error) {
	return u.repo.ListCategories()
}

// RegisterVendor a user holds at most one registration, created unapproved
func (u *vendorUseCase) RegisterVendor(ctx context.Context, userID int64, categoryID uint, details string) (*domain.VendorRegistration, error) {
	existing, err := u.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}
	if _, err := u.repo.GetCategory(categoryID); err != nil {
		return nil, errprocess.Set("vendor category not found")
	}
	v := &domain.VendorRegistration{
		UserID:     userID,
		CategoryID: categoryID,
		Details:    details,
		IsApproved: false,
		CreatedAt:  time.Now(),
	}
	if err := u.repo.CreateRegistration(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ApproveVendor flips the flag and notifies the vendor by mail.
// The notification is best effort, approval stands even when the
// queue is unavailable.
func (u *vendorUseCase) ApproveVendor(ctx context.Context, id uint) error {
	v, err := u.repo.GetRegistration(id)
	if err != nil {
		return err
	}
	if v.IsApproved {
		return nil
	}
	v.IsApproved = true
	if err := u.repo.UpdateRegistration(v); err != nil {
		return err
	}

	email, err := u.users.FindEmail(ctx, v.UserID)
	if err != nil {
		logger.Log.Errorf("lookup vendor email", err, zap.Int64("user_id", v.UserID))
		return nil
	}
	task := maildomain.MailTask{
		Subject: "Your vendor registration has been approved",
		Body:    "Congratulations, your vendor registration is now approved and visible to customers.",
		To:      []string{email},
	}
	if err := u.mailQueue.Enqueue(ctx, task); err != nil {
		logger.Log.Errorf("enqueue vendor approval mail", err, zap.Uint("vendor_id", id))
	}
	return nil
}

// UpdateVendor only the owner of an approved registration may edit
func (u *vendorUseCase) UpdateVendor(callerID int64, id uint, categoryID uint, details string) error {
	v, err := u.repo.GetRegistration(id)
	if err != nil {
		return err
	}
	if v.UserID != callerID {
		return domain.ErrAccessDenied
	}
	if !v.IsApproved {
		return domain.ErrVendorNotApproved
	}
	if _, err := u.repo.GetCategory(categoryID); err != nil {
		return errprocess.Set("vendor category not found")
	}
	v.CategoryID = categoryID
	v.Details = details
	return u.repo.UpdateRegistration(v)
}

// DeleteVendor removes the registration and its images
func (u *vendorUseCase) DeleteVendor(ctx context.Context, callerID int64, id uint) error {
	v, err := u.repo.GetRegistration(id)
	if err != nil {
		return err
	}
	if v.UserID != callerID {
		return domain.ErrAccessDenied
	}
	if !v.IsApproved {
		return domain.ErrVendorNotApproved
	}
	images, err := u.repo.ListImagesByVendor(id)
	if err != nil {
		return err
	}
	if err := u.repo.DeleteRegistration(id); err != nil {
		return err
	}
	for _, img := range images {
		if err := u.repo.DeleteImage(img.ID); err != nil {
			logger.Log.Errorf("delete vendor image record", err, zap.Uint("image_id", img.ID))
			continue
		}
		if err := u.store.RemoveObject(ctx, img.Image); err != nil {
			logger.Log.Errorf("remove vendor image object", err, zap.String("object", img.Image))
		}
	}
	return nil
}

// GetVendor details plus presigned image URLs
func (u *vendorUseCase) GetVendor(ctx context.Context, id uint) (*VendorView, error) {
	v, err := u.repo.GetRegistration(id)
	if err != nil {
		return nil, err
	}
	images, err := u.repo.ListImagesByVendor(id)
	if err != nil {
		return nil, err
	}
	view := &VendorView{
		ID:         v.ID,
		UserID:     v.UserID,
		CategoryID: v.CategoryID,
		Details:    v.Details,
		IsApproved: v.IsApproved,
		Images:     make([]VendorImageView, 0, len(images)),
	}
	for _, img := range images {
		url, err := u.store.PresignGetURL(ctx, img.Image, imageURLExpiry)
		if err != nil {
			return nil, err
		}
		view.Images = append(view.Images, VendorImageView{ID: img.ID, Title: img.Title, Details: img.Details, URL: url})
	}
	return view, nil
}

func (u *vendorUseCase) ListApprovedVendors(filter domain.VendorFilter) ([]domain.VendorRegistration, error) {
	return u.repo.ListApproved(filter)
}

// UploadVendorImage only the owner may attach images
func (u *vendorUseCase) UploadVendorImage(ctx context.Context, callerID int64, vendorID uint, title, details, fileName, contentType string, r io.Reader, size int64) (*domain.VendorImage, error) {
	v, err := u.repo.GetRegistration(vendorID)
	if err != nil {
		return nil, err
	}
	if v.UserID != callerID {
		return nil, domain.ErrAccessDenied
	}
	objectName := fmt.Sprintf("vendors/%d/%s%s", vendorID, uuid.NewString(), filepath.Ext(fileName))
	if err := u.store.UploadStream(ctx, objectName, contentType, r, size); err != nil {
		return nil, err
	}
	img := &domain.VendorImage{VendorID: vendorID, Image: objectName, Title: title, Details: details}
	if err := u.repo.CreateImage(img); err != nil {
		if rmErr := u.store.RemoveObject(ctx, objectName); rmErr != nil {
			logger.Log.Errorf("remove orphan vendor image", rmErr, zap.String("object", objectName))
		}
		return nil, err
	}
	return img, nil
}

// UpdateVendorImage only the owner may retitle images, the stored
// object stays as is
func (u *vendorUseCase) UpdateVendorImage(callerID int64, imageID uint, title, details string) error {
	img, err := u.repo.GetImage(imageID)
	if err != nil {
		return err
	}
	v, err := u.repo.GetRegistration(img.VendorID)
	if err != nil {
		return err
	}
	if v.UserID != callerID {
		return domain.ErrAccessDenied
	}
	img.Title = title
	img.Details = details
	return u.repo.UpdateImage(img)
}

// DeleteVendorImage only the owner may remove images
func (u *vendorUseCase) DeleteVendorImage(ctx context.Context, callerID int64, imageID uint) error {
	img, err := u.repo.GetImage(imageID)
	if err != nil {
		return err
	}
	v, err := u.repo.GetRegistration(img.VendorID)
	if err != nil {
		return err
	}
	if v.UserID != callerID {
		return domain.ErrAccessDenied
	}
	if err := u.repo.DeleteImage(imageID); err != nil {
		return err
	}
	if err := u.store.RemoveObject(ctx, img.Image); err != nil {
		logger.Log.Errorf("remove vendor image object", err, zap.String("object", img.Image))
	}
	return nil
}
