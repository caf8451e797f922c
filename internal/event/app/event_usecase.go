package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"event_management_service/internal/event/domain"
	"event_management_service/internal/event/repository"
	"event_management_service/pkg/database"
	errprocess "event_management_service/pkg/err"
	"event_management_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imageURLExpiry = 15 * time.Minute

// EventUseCase catalogue management: categories, events, ideas,
// images and reviews. Category, event, idea and image mutations are
// only reachable through manager-gated routes.
type EventUseCase interface {
	CreateCategory(name string) (*domain.EventCategory, error)
	UpdateCategory(id uint, name string) error
	DeleteCategory(id uint) error
	ListCategories() ([]domain.EventCategory, error)

	CreateEvent(e *domain.Event) error
	GetEvent(id uint) (*domain.Event, error)
	UpdateEvent(e *domain.Event) error
	DeleteEvent(id uint) error
	SearchEvents(filter domain.EventFilter) ([]domain.Event, error)

	CreateIdea(i *domain.EventIdea) error
	UpdateIdea(i *domain.EventIdea) error
	DeleteIdea(id uint) error
	ListIdeas(filter domain.IdeaFilter) ([]domain.EventIdea, error)

	UploadEventImage(ctx context.Context, eventID uint, title, fileName, contentType string, r io.Reader, size int64) (*domain.EventImage, error)
	UpdateEventImage(imageID uint, title string) error
	DeleteEventImage(ctx context.Context, imageID uint) error
	ListEventImages(ctx context.Context, eventID uint) ([]EventImageView, error)

	AddReview(userID int64, eventID uint, review string, rating int) (*domain.EventReview, error)
	UpdateReview(callerID int64, id uint, review string, rating int) error
	DeleteReview(callerID int64, id uint) error
	ListReviews(eventID uint) ([]domain.EventReview, error)
}

// EventImageView an image record with a presigned download URL
type EventImageView struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"event_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

type eventUseCase struct {
	repo  repository.EventRepo
	store database.MinIOClientRepo
}

// NewEventUseCase create a new EventUseCase
func NewEventUseCase(repo repository.EventRepo, store database.MinIOClientRepo) EventUseCase {
	return &eventUseCase{repo: repo, store: store}
}

// CreateCategory rejects a name that is already taken
func (u *eventUseCase) CreateCategory(name string) (*domain.EventCategory, error) {
	existing, err := u.repo.FindCategoryByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errprocess.Set("category name already exists")
	}
	c := &domain.EventCategory{Name: name}
	if err := u.repo.CreateCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *eventUseCase) UpdateCategory(id uint, name string) error {
	existing, err := u.repo.FindCategoryByName(name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return errprocess.Set("category name already exists")
	}
	c, err := u.repo.GetCategory(id)
	if err != nil {
		return err
	}
	c.Name = name
	return u.repo.UpdateCategory(c)
}

func (u *eventUseCase) DeleteCategory(id uint) error {
	return u.repo.DeleteCategory(id)
}

func (u *eventUseCase) ListCategories() ([]domain.EventCategory, error) {
	return u.repo.ListCategories()
}

// CreateEvent the category must exist
func (u *eventUseCase) CreateEvent(e *domain.Event) error {
	if _, err := u.repo.GetCategory(e.CategoryID); err != nil {
		return errprocess.Set("event category not found")
	}
	return u.repo.CreateEvent(e)
}

func (u *eventUseCase) GetEvent(id uint) (*domain.Event, error) {
	return u.repo.GetEvent(id)
}

func (u *eventUseCase) UpdateEvent(e *domain.Event) error {
	if _, err := u.repo.GetCategory(e.CategoryID); err != nil {
		return errprocess.Set("event category not found")
	}
	return u.repo.UpdateEvent(e)
}

func (u *eventUseCase) DeleteEvent(id uint) error {
	return u.repo.DeleteEvent(id)
}

func (u *eventUseCase) SearchEvents(filter domain.EventFilter) ([]domain.Event, error) {
	return u.repo.SearchEvents(filter)
}

// CreateIdea the parent event must exist
func (u *eventUseCase) CreateIdea(i *domain.EventIdea) error {
	if _, err := u.repo.GetEvent(i.EventID); err != nil {
		return errprocess.Set("event not found")
	}
	i.CreatedAt = time.Now()
	return u.repo.CreateIdea(i)
}

func (u *eventUseCase) UpdateIdea(i *domain.EventIdea) error {
	current, err := u.repo.GetIdea(i.ID)
	if err != nil {
		return err
	}
	i.CreatedAt = current.CreatedAt
	return u.repo.UpdateIdea(i)
}

func (u *eventUseCase) DeleteIdea(id uint) error {
	return u.repo.DeleteIdea(id)
}

func (u *eventUseCase) ListIdeas(filter domain.IdeaFilter) ([]domain.EventIdea, error) {
	return u.repo.ListIdeas(filter)
}

// UploadEventImage stores the file under events/<eventID>/ and records it
func (u *eventUseCase) UploadEventImage(ctx context.Context, eventID uint, title, fileName, contentType string, r io.Reader, size int64) (*domain.EventImage, error) {
	if _, err := u.repo.GetEvent(eventID); err != nil {
		return nil, errprocess.Set("event not found")
	}
	objectName := fmt.Sprintf("events/%d/%s%s", eventID, uuid.NewString(), filepath.Ext(fileName))
	if err := u.store.UploadStream(ctx, objectName, contentType, r, size); err != nil {
		return nil, err
	}
	img := &domain.EventImage{EventID: eventID, Image: objectName, Title: title}
	if err := u.repo.CreateImage(img); err != nil {
		if rmErr := u.store.RemoveObject(ctx, objectName); rmErr != nil {
			logger.Log.Errorf("remove orphan event image", rmErr, zap.String("object", objectName))
		}
		return nil, err
	}
	return img, nil
}

// UpdateEventImage retitles an image, the stored object stays as is
func (u *eventUseCase) UpdateEventImage(imageID uint, title string) error {
	img, err := u.repo.GetImage(imageID)
	if err != nil {
		return err
	}
	img.Title = title
	return u.repo.UpdateImage(img)
}

// DeleteEventImage removes the record first, then the object
func (u *eventUseCase) DeleteEventImage(ctx context.Context, imageID uint) error {
	img, err := u.repo.GetImage(imageID)
	if err != nil {
		return err
	}
	if err := u.repo.DeleteImage(imageID); err != nil {
		return err
	}
	if err := u.store.RemoveObject(ctx, img.Image); err != nil {
		logger.Log.Errorf("remove event image object", err, zap.String("object", img.Image))
	}
	return nil
}

// ListEventImages presigns a short-lived URL per image
func (u *eventUseCase) ListEventImages(ctx context.Context, eventID uint) ([]EventImageView, error) {
	images, err := u.repo.ListImagesByEvent(eventID)
	if err != nil {
		return nil, err
	}
	views := make([]EventImageView, 0, len(images))
	for _, img := range images {
		url, err := u.store.PresignGetURL(ctx, img.Image, imageURLExpiry)
		if err != nil {
			return nil, err
		}
		views = append(views, EventImageView{ID: img.ID, EventID: img.EventID, Title: img.Title, URL: url})
	}
	return views, nil
}

// AddReview any signed-in user may review an event
func (u *eventUseCase) AddReview(userID int64, eventID uint, review string, rating int) (*domain.EventReview, error) {
	if rating < 1 || rating > 5 {
		return nil, errprocess.Set("rating must be between 1 and 5")
	}
	if _, err := u.repo.GetEvent(eventID); err != nil {
		return nil, errprocess.Set("event not found")
	}
	r := &domain.EventReview{
		EventID:  eventID,
		UserID:   userID,
		Review:   review,
		Rating:   rating,
		PostedAt: time.Now(),
	}
	if err := u.repo.CreateReview(r); err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReview only the author may edit
func (u *eventUseCase) UpdateReview(callerID int64, id uint, review string, rating int) error {
	if rating < 1 || rating > 5 {
		return errprocess.Set("rating must be between 1 and 5")
	}
	r, err := u.repo.GetReview(id)
	if err != nil {
		return err
	}
	if r.UserID != callerID {
		return domain.ErrAccessDenied
	}
	r.Review = review
	r.Rating = rating
	return u.repo.UpdateReview(r)
}

// DeleteReview only the author may delete
func (u *eventUseCase) DeleteReview(callerID int64, id uint) error {
	r, err := u.repo.GetReview(id)
	if err != nil {
		return err
	}
	if r.UserID != callerID {
		return domain.ErrAccessDenied
	}
	return u.repo.DeleteReview(id)
}

func (u *eventUseCase) ListReviews(eventID uint) ([]domain.EventReview, error) {
	return u.repo.ListReviewsByEvent(eventID)
}
