package repository

import (
	"errors"

	"event_management_service/internal/event/domain"

	"gorm.io/gorm"
)

// EventRepo categories, events, ideas, images and reviews
type EventRepo interface {
	AutoMigrate() error

	CreateCategory(c *domain.EventCategory) error
	GetCategory(id uint) (*domain.EventCategory, error)
	FindCategoryByName(name string) (*domain.EventCategory, error)
	UpdateCategory(c *domain.EventCategory) error
	DeleteCategory(id uint) error
	ListCategories() ([]domain.EventCategory, error)

	CreateEvent(e *domain.Event) error
	GetEvent(id uint) (*domain.Event, error)
	UpdateEvent(e *domain.Event) error
	DeleteEvent(id uint) error
	SearchEvents(filter domain.EventFilter) ([]domain.Event, error)

	CreateIdea(i *domain.EventIdea) error
	GetIdea(id uint) (*domain.EventIdea, error)
	UpdateIdea(i *domain.EventIdea) error
	DeleteIdea(id uint) error
	ListIdeas(filter domain.IdeaFilter) ([]domain.EventIdea, error)

	CreateImage(i *domain.EventImage) error
	GetImage(id uint) (*domain.EventImage, error)
	UpdateImage(i *domain.EventImage) error
	DeleteImage(id uint) error
	ListImagesByEvent(eventID uint) ([]domain.EventImage, error)

	CreateReview(r *domain.EventReview) error
	GetReview(id uint) (*domain.EventReview, error)
	UpdateReview(r *domain.EventReview) error
	DeleteReview(id uint) error
	ListReviewsByEvent(eventID uint) ([]domain.EventReview, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo create EventRepo
func NewEventRepo(db *gorm.DB) EventRepo {
	return &eventRepo{db: db}
}

func (r *eventRepo) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.EventCategory{},
		&domain.Event{},
		&domain.EventIdea{},
		&domain.EventImage{},
		&domain.EventReview{},
	)
}

func (r *eventRepo) CreateCategory(c *domain.EventCategory) error {
	return r.db.Create(c).Error
}

func (r *eventRepo) GetCategory(id uint) (*domain.EventCategory, error) {
	var c domain.EventCategory
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCategoryByName returns (nil, nil) when no category has the name.
func (r *eventRepo) FindCategoryByName(name string) (*domain.EventCategory, error) {
	var c domain.EventCategory
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *eventRepo) UpdateCategory(c *domain.EventCategory) error {
	return r.db.Save(c).Error
}

func (r *eventRepo) DeleteCategory(id uint) error {
	return r.db.Delete(&domain.EventCategory{}, id).Error
}

// ListCategories ordered by id
func (r *eventRepo) ListCategories() ([]domain.EventCategory, error) {
	var list []domain.EventCategory
	if err := r.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *eventRepo) CreateEvent(e *domain.Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepo) GetEvent(id uint) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) UpdateEvent(e *domain.Event) error {
	return r.db.Save(e).Error
}

func (r *eventRepo) DeleteEvent(id uint) error {
	return r.db.Delete(&domain.Event{}, id).Error
}

// SearchEvents category filter plus ILIKE search over name and details
func (r *eventRepo) SearchEvents(filter domain.EventFilter) ([]domain.Event, error) {
	var events []domain.Event
	q := r.db
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("(name ILIKE ? OR details ILIKE ?)", like, like)
	}
	if err := q.Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) CreateIdea(i *domain.EventIdea) error {
	return r.db.Create(i).Error
}

func (r *eventRepo) GetIdea(id uint) (*domain.EventIdea, error) {
	var i domain.EventIdea
	if err := r.db.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *eventRepo) UpdateIdea(i *domain.EventIdea) error {
	return r.db.Save(i).Error
}

func (r *eventRepo) DeleteIdea(id uint) error {
	return r.db.Delete(&domain.EventIdea{}, id).Error
}

// ListIdeas per event with optional city and idea substring filters, newest first
func (r *eventRepo) ListIdeas(filter domain.IdeaFilter) ([]domain.EventIdea, error) {
	var ideas []domain.EventIdea
	q := r.db.Model(&domain.EventIdea{})
	if filter.EventID != 0 {
		q = q.Where("event_id = ?", filter.EventID)
	}
	if filter.City != "" {
		q = q.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Idea != "" {
		q = q.Where("idea ILIKE ?", "%"+filter.Idea+"%")
	}
	if err := q.Order("created_at DESC").Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *eventRepo) CreateImage(i *domain.EventImage) error {
	return r.db.Create(i).Error
}

func (r *eventRepo) GetImage(id uint) (*domain.EventImage, error) {
	var i domain.EventImage
	if err := r.db.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *eventRepo) UpdateImage(i *domain.EventImage) error {
	return r.db.Save(i).Error
}

func (r *eventRepo) DeleteImage(id uint) error {
	return r.db.Delete(&domain.EventImage{}, id).Error
}

func (r *eventRepo) ListImagesByEvent(eventID uint) ([]domain.EventImage, error) {
	var images []domain.EventImage
	if err := r.db.Where("event_id = ?", eventID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *eventRepo) CreateReview(rv *domain.EventReview) error {
	return r.db.Create(rv).Error
}

func (r *eventRepo) GetReview(id uint) (*domain.EventReview, error) {
	var rv domain.EventReview
	if err := r.db.First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *eventRepo) UpdateReview(rv *domain.EventReview) error {
	return r.db.Save(rv).Error
}

func (r *eventRepo) DeleteReview(id uint) error {
	return r.db.Delete(&domain.EventReview{}, id).Error
}

// ListReviewsByEvent newest first
func (r *eventRepo) ListReviewsByEvent(eventID uint) ([]domain.EventReview, error) {
	var reviews []domain.EventReview
	if err := r.db.Where("event_id = ?", eventID).Order("posted_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
