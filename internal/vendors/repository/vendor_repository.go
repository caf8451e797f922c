package repository

import (
	"errors"

	"event_management_service/internal/vendors/domain"

	"gorm.io/gorm"
)

// VendorRepo categories, registrations and images
type VendorRepo interface {
	AutoMigrate() error

	CreateCategory(c *domain.VendorCategory) error
	GetCategory(id uint) (*domain.VendorCategory, error)
	FindCategoryByName(name string) (*domain.VendorCategory, error)
	UpdateCategory(c *domain.VendorCategory) error
	DeleteCategory(id uint) error
	ListCategories() ([]domain.VendorCategory, error)

	CreateRegistration(v *domain.VendorRegistration) error
	GetRegistration(id uint) (*domain.VendorRegistration, error)
	FindByUserID(userID int64) (*domain.VendorRegistration, error)
	UpdateRegistration(v *domain.VendorRegistration) error
	DeleteRegistration(id uint) error
	ListApproved(filter domain.VendorFilter) ([]domain.VendorRegistration, error)

	CreateImage(i *domain.VendorImage) error
	GetImage(id uint) (*domain.VendorImage, error)
	UpdateImage(i *domain.VendorImage) error
	DeleteImage(id uint) error
	ListImagesByVendor(vendorID uint) ([]domain.VendorImage, error)
}

type vendorRepo struct {
	db *gorm.DB
}

// NewVendorRepo create a gorm backed VendorRepo
func NewVendorRepo(db *gorm.DB) VendorRepo {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.VendorCategory{},
		&domain.VendorRegistration{},
		&domain.VendorImage{},
	)
}

func (r *vendorRepo) CreateCategory(c *domain.VendorCategory) error {
	return r.db.Create(c).Error
}

func (r *vendorRepo) GetCategory(id uint) (*domain.VendorCategory, error) {
	var c domain.VendorCategory
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCategoryByName returns (nil, nil) when no category has the name.
func (r *vendorRepo) FindCategoryByName(name string) (*domain.VendorCategory, error) {
	var c domain.VendorCategory
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *vendorRepo) UpdateCategory(c *domain.VendorCategory) error {
	return r.db.Save(c).Error
}

func (r *vendorRepo) DeleteCategory(id uint) error {
	return r.db.Delete(&domain.VendorCategory{}, id).Error
}

func (r *vendorRepo) ListCategories() ([]domain.VendorCategory, error) {
	var categories []domain.VendorCategory
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *vendorRepo) CreateRegistration(v *domain.VendorRegistration) error {
	return r.db.Create(v).Error
}

func (r *vendorRepo) GetRegistration(id uint) (*domain.VendorRegistration, error) {
	var v domain.VendorRegistration
	if err := r.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// FindByUserID returns (nil, nil) when the user has no registration.
func (r *vendorRepo) FindByUserID(userID int64) (*domain.VendorRegistration, error) {
	var v domain.VendorRegistration
	if err := r.db.Where("user_id = ?", userID).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepo) UpdateRegistration(v *domain.VendorRegistration) error {
	return r.db.Save(v).Error
}

func (r *vendorRepo) DeleteRegistration(id uint) error {
	return r.db.Delete(&domain.VendorRegistration{}, id).Error
}

func (r *vendorRepo) ListApproved(filter domain.VendorFilter) ([]domain.VendorRegistration, error) {
	q := r.db.Where("is_approved = ?", true)
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		q = q.Where("details ILIKE ?", "%"+filter.Search+"%")
	}
	var vendors []domain.VendorRegistration
	if err := q.Order("id ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepo) CreateImage(i *domain.VendorImage) error {
	return r.db.Create(i).Error
}

func (r *vendorRepo) GetImage(id uint) (*domain.VendorImage, error) {
	var i domain.VendorImage
	if err := r.db.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *vendorRepo) UpdateImage(i *domain.VendorImage) error {
	return r.db.Save(i).Error
}

func (r *vendorRepo) DeleteImage(id uint) error {
	return r.db.Delete(&domain.VendorImage{}, id).Error
}

func (r *vendorRepo) ListImagesByVendor(vendorID uint) ([]domain.VendorImage, error) {
	var images []domain.VendorImage
	if err := r.db.Where("vendor_id = ?", vendorID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
