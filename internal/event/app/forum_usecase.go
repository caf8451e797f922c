package app

import (
	"time"

	"event_management_service/internal/event/domain"
	"event_management_service/internal/event/repository"
	"event_management_service/pkg/logger"

	"go.uber.org/zap"
)

// ForumUseCase testimonials and the Q&A forum.
// Callers are always passed in explicitly, role gating happens at the
// request layer before a usecase is reached.
type ForumUseCase interface {
	ListTestimonials() ([]domain.Testimonial, error)
	AddTestimonial(userID int64, review string) (*domain.Testimonial, error)
	UpdateTestimonial(callerID int64, id uint, review string) error
	DeleteTestimonial(callerID int64, id uint) error

	ListQuestions() ([]domain.Question, error)
	AskQuestion(userID int64, question string) (*domain.Question, error)
	AnswerQuestion(id uint, answer string) error
	DeleteQuestion(id uint) error
}

type forumUseCase struct {
	repo repository.ForumRepo
}

// NewForumUseCase create a new ForumUseCase
func NewForumUseCase(repo repository.ForumRepo) ForumUseCase {
	return &forumUseCase{repo: repo}
}

// ListTestimonials newest first
func (f *forumUseCase) ListTestimonials() ([]domain.Testimonial, error) {
	return f.repo.ListTestimonials()
}

// AddTestimonial
func (f *forumUseCase) AddTestimonial(userID int64, review string) (*domain.Testimonial, error) {
	t := &domain.Testimonial{
		UserID:   userID,
		Review:   review,
		PostedAt: time.Now(),
	}
	if err := f.repo.CreateTestimonial(t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTestimonial only the author may edit
func (f *forumUseCase) UpdateTestimonial(callerID int64, id uint, review string) error {
	t, err := f.repo.GetTestimonial(id)
	if err != nil {
		return err
	}
	if t.UserID != callerID {
		logger.Log.Warn("testimonial update denied", zap.Int64("caller", callerID), zap.Uint("id", id))
		return domain.ErrAccessDenied
	}
	t.Review = review
	return f.repo.UpdateTestimonial(t)
}

// DeleteTestimonial only the author may delete
func (f *forumUseCase) DeleteTestimonial(callerID int64, id uint) error {
	t, err := f.repo.GetTestimonial(id)
	if err != nil {
		return err
	}
	if t.UserID != callerID {
		return domain.ErrAccessDenied
	}
	return f.repo.DeleteTestimonial(id)
}

// ListQuestions newest first
func (f *forumUseCase) ListQuestions() ([]domain.Question, error) {
	return f.repo.ListQuestions()
}

// AskQuestion any user may ask
func (f *forumUseCase) AskQuestion(userID int64, question string) (*domain.Question, error) {
	q := &domain.Question{
		UserID:    userID,
		Question:  question,
		CreatedAt: time.Now(),
	}
	if err := f.repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// AnswerQuestion reached only through the manager-gated route
func (f *forumUseCase) AnswerQuestion(id uint, answer string) error {
	q, err := f.repo.GetQuestion(id)
	if err != nil {
		return err
	}
	q.Answer = answer
	return f.repo.UpdateQuestion(q)
}

// DeleteQuestion reached only through the manager-gated route
func (f *forumUseCase) DeleteQuestion(id uint) error {
	return f.repo.DeleteQuestion(id)
}
