package repository

import (
	"event_management_service/internal/event/domain"

	"gorm.io/gorm"
)

// ForumRepo testimonials and the Q&A forum
type ForumRepo interface {
	AutoMigrate() error

	CreateTestimonial(t *domain.Testimonial) error
	GetTestimonial(id uint) (*domain.Testimonial, error)
	UpdateTestimonial(t *domain.Testimonial) error
	DeleteTestimonial(id uint) error
	ListTestimonials() ([]domain.Testimonial, error)

	CreateQuestion(q *domain.Question) error
	GetQuestion(id uint) (*domain.Question, error)
	UpdateQuestion(q *domain.Question) error
	DeleteQuestion(id uint) error
	ListQuestions() ([]domain.Question, error)
}

type forumRepo struct {
	db *gorm.DB
}

// NewForumRepo create ForumRepo
func NewForumRepo(db *gorm.DB) ForumRepo {
	return &forumRepo{db: db}
}

func (r *forumRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Testimonial{}, &domain.Question{})
}

func (r *forumRepo) CreateTestimonial(t *domain.Testimonial) error {
	return r.db.Create(t).Error
}

func (r *forumRepo) GetTestimonial(id uint) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *forumRepo) UpdateTestimonial(t *domain.Testimonial) error {
	return r.db.Save(t).Error
}

func (r *forumRepo) DeleteTestimonial(id uint) error {
	return r.db.Delete(&domain.Testimonial{}, id).Error
}

// ListTestimonials newest first
func (r *forumRepo) ListTestimonials() ([]domain.Testimonial, error) {
	var list []domain.Testimonial
	if err := r.db.Order("posted_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *forumRepo) CreateQuestion(q *domain.Question) error {
	return r.db.Create(q).Error
}

func (r *forumRepo) GetQuestion(id uint) (*domain.Question, error) {
	var q domain.Question
	if err := r.db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *forumRepo) UpdateQuestion(q *domain.Question) error {
	return r.db.Save(q).Error
}

func (r *forumRepo) DeleteQuestion(id uint) error {
	return r.db.Delete(&domain.Question{}, id).Error
}

// ListQuestions newest first
func (r *forumRepo) ListQuestions() ([]domain.Question, error) {
	var list []domain.Question
	if err := r.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
