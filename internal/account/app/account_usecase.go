package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"event_management_service/internal/account/domain"
	"event_management_service/internal/account/repository"
	maildomain "event_management_service/internal/mailer/domain"
	mailrepo "event_management_service/internal/mailer/repository"
	"event_management_service/pkg/config"
	"event_management_service/pkg/database"
	"event_management_service/pkg/encrypt"
	"event_management_service/pkg/logger"
	token "event_management_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountUseCase application service exposed to the handlers
type AccountUseCase interface {
	Register(ctx context.Context, user *domain.User) (string, error)
	Login(ctx context.Context, email, password string, now time.Time) (string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	SendPasswordResetEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	DeleteProfile(ctx context.Context, userID int64) error
	UploadProfileImage(ctx context.Context, userID int64, fileName, contentType string, r io.Reader, size int64) (string, error)
	ProfileImageURL(ctx context.Context, userID int64) (string, error)
	ListEventManagers(ctx context.Context) ([]domain.User, error)
}

type accountUseCase struct {
	userRepo     repository.UserRepository
	sessionTTL   time.Duration
	redisRepo    database.RedisRepository[domain.UserSession]
	mailQueue    mailrepo.MailQueue
	store        database.MinIOClientRepo
	hashPassword func(string) (string, error)
	resetBaseURL string
}

// NewAccountUseCase create a new AccountUseCase
func NewAccountUseCase(userRepo repository.UserRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
	mailQueue mailrepo.MailQueue,
	store database.MinIOClientRepo,
	hashPassword func(string) (string, error),
	resetBaseURL string,
) AccountUseCase {
	return &accountUseCase{
		userRepo:     userRepo,
		sessionTTL:   sessionTTL,
		redisRepo:    redisRepo,
		mailQueue:    mailQueue,
		store:        store,
		hashPassword: hashPassword,
		resetBaseURL: resetBaseURL,
	}
}

// Register
func (a *accountUseCase) Register(ctx context.Context, user *domain.User) (string, error) {
	if err := user.Validate(); err != nil {
		return "", err
	}
	if err := encrypt.ValidatePasswordStrength(user.Password); err != nil {
		return "", err
	}

	// reject duplicates on the three unique columns
	if _, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &user.Email}); err == nil {
		return "", errors.New("email already exists")
	}
	if _, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Username: &user.Username}); err == nil {
		return "", errors.New("username already exists")
	}
	if _, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ContactNumber: &user.ContactNumber}); err == nil {
		return "", errors.New("contact number already exists")
	}

	pw, err := a.hashPassword(user.Password)
	if err != nil {
		logger.Log.Errorf("password err :", err)
		return "", err
	}
	user.Password = pw
	user.Status = domain.UserStatusOffLine

	logger.Log.Info(fmt.Sprintf("usecase Register : %s", user.Username))

	if err := a.userRepo.CreateUser(ctx, user); err != nil {
		return "", err
	}

	// registering logs the new user in right away
	return a.startSession(ctx, user, time.Now())
}

func (a *accountUseCase) startSession(ctx context.Context, user *domain.User, now time.Time) (string, error) {
	user.Status = domain.UserStatusOnLine

	role := token.RoleUser
	if user.IsEventManager {
		role = token.RoleEventManager
	}

	t, err := token.GenerateJWTFunc(user.ID, string(role), config.EnvConfig.EventService)
	if err != nil {
		return "", err
	}

	session := domain.UserSession{
		Token:        t,
		UserID:       user.ID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(a.sessionTTL),
	}

	if err := a.redisRepo.Set(ctx, strconv.FormatInt(user.ID, 10), session, a.sessionTTL); err != nil {
		return "", err
	}

	if err := a.userRepo.UpdateUserStatus(ctx, user); err != nil {
		return "", err
	}

	return t, nil
}

// Login
func (a *accountUseCase) Login(ctx context.Context, email, password string, now time.Time) (string, error) {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!")
		return "", err
	}

	if err = user.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!")
		return "", err
	}

	return a.startSession(ctx, user, now)
}

// Logout
func (a *accountUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTFunc(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("logout", zap.Int64("user id", tokenInfo.UserID))

	if err := a.redisRepo.Del(ctx, strconv.FormatInt(tokenInfo.UserID, 10)); err != nil {
		return err
	}

	if err := a.userRepo.UpdateUserStatus(ctx, &domain.User{
		ID:     tokenInfo.UserID,
		Status: domain.UserStatusOffLine,
	}); err != nil {
		return err
	}
	return nil
}

// ChangePassword verifies the old password before storing a new hash
func (a *accountUseCase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &userID})
	if err != nil {
		return err
	}

	if err := user.IsPasswordMatch(oldPassword); err != nil {
		logger.Log.Error("old password can't match!!!")
		return err
	}

	if err := encrypt.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	pw, err := a.hashPassword(newPassword)
	if err != nil {
		return err
	}

	return a.userRepo.UpdatePassword(ctx, userID, pw)
}

// SendPasswordResetEmail enqueue a reset-link mail for the mailer worker
func (a *accountUseCase) SendPasswordResetEmail(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email})
	if err != nil {
		logger.Log.Error("reset request for unknown email")
		return err
	}

	resetToken, err := token.GenerateResetTokenFunc(user.ID, config.EnvConfig.EventService)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", a.resetBaseURL, resetToken)
	task := maildomain.MailTask{
		Subject: "Password reset requested",
		Body:    fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password. The link expires in 30 minutes.\n\n%s\n", user.FullName(), link),
		To:      []string{user.Email},
	}

	return a.mailQueue.Enqueue(ctx, task)
}

// ResetPassword consume an emailed reset token and store the new hash
func (a *accountUseCase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := token.ParseResetTokenFunc(resetToken)
	if err != nil {
		logger.Log.Error("reset token rejected", zap.String("err", err.Error()))
		return err
	}

	if err := encrypt.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	pw, err := a.hashPassword(newPassword)
	if err != nil {
		return err
	}

	return a.userRepo.UpdatePassword(ctx, claims.UserID, pw)
}

// GetProfile
func (a *accountUseCase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &userID})
}

// UpdateProfile names and contact number only, email and username are fixed
func (a *accountUseCase) UpdateProfile(ctx context.Context, user *domain.User) error {
	if err := domain.ValidateName(user.FirstName); err != nil {
		return err
	}
	if err := domain.ValidateName(user.LastName); err != nil {
		return err
	}
	if err := domain.ValidateContactNumber(user.ContactNumber); err != nil {
		return err
	}

	current, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &user.ID})
	if err != nil {
		return err
	}
	current.FirstName = user.FirstName
	current.LastName = user.LastName
	current.ContactNumber = user.ContactNumber

	return a.userRepo.UpdateProfile(ctx, current)
}

// DeleteProfile drop the session then remove the account
func (a *accountUseCase) DeleteProfile(ctx context.Context, userID int64) error {
	if err := a.redisRepo.Del(ctx, strconv.FormatInt(userID, 10)); err != nil {
		logger.Log.Warn("session cleanup failed", zap.Int64("user id", userID))
	}

	return a.userRepo.DeleteUser(ctx, userID)
}

// UploadProfileImage store the image in MinIO and remember its object key
func (a *accountUseCase) UploadProfileImage(ctx context.Context, userID int64, fileName, contentType string, r io.Reader, size int64) (string, error) {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &userID})
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("profiles/%d/%s%s", userID, uuid.New().String(), filepath.Ext(fileName))
	if err := a.store.UploadStream(ctx, objectName, contentType, r, size); err != nil {
		return "", err
	}

	if err := a.userRepo.UpdateProfileImage(ctx, userID, objectName); err != nil {
		return "", err
	}

	// drop the previous image once the new one is in place
	if user.ProfileImage != "" {
		if err := a.store.RemoveObject(ctx, user.ProfileImage); err != nil {
			logger.Log.Warn("old profile image cleanup failed", zap.String("object", user.ProfileImage))
		}
	}

	return objectName, nil
}

// ProfileImageURL presigned download URL, empty string when no image was uploaded
func (a *accountUseCase) ProfileImageURL(ctx context.Context, userID int64) (string, error) {
	user, err := a.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &userID})
	if err != nil {
		return "", err
	}
	if user.ProfileImage == "" {
		return "", nil
	}
	return a.store.PresignGetURL(ctx, user.ProfileImage, time.Hour)
}

// ListEventManagers chat counterparties for regular users
func (a *accountUseCase) ListEventManagers(ctx context.Context) ([]domain.User, error) {
	return a.userRepo.ListEventManagers(ctx)
}
