package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"event_management_service/internal/account/domain"
	"event_management_service/internal/account/repository"
	maildomain "event_management_service/internal/mailer/domain"
	"event_management_service/pkg/encrypt"
	"event_management_service/pkg/logger"
	token "event_management_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo Mock UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateUserStatus(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateProfileImage(ctx context.Context, userID int64, objectKey string) error {
	args := m.Called(ctx, userID, objectKey)
	return args.Error(0)
}
func (m *MockUserRepo) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) FindByUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error) {
	args := m.Called(ctx, userQuery)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockUserRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) ListEventManagers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRedisRepo Mock for UserSession storage
type MockRedisRepo struct {
	mock.Mock
}

func (m *MockRedisRepo) Set(ctx context.Context, key string, value domain.UserSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockRedisRepo) Get(ctx context.Context, key string) (domain.UserSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(domain.UserSession), args.Error(1)
	}
	return domain.UserSession{}, args.Error(1)
}
func (m *MockRedisRepo) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockRedisRepo) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}
func (m *MockRedisRepo) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// MockMailQueue Mock MailQueue
type MockMailQueue struct {
	mock.Mock
}

func (m *MockMailQueue) Enqueue(ctx context.Context, task maildomain.MailTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockObjectStore Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadStream(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) error {
	args := m.Called(ctx, objectName, contentType, reader, size)
	return args.Error(0)
}
func (m *MockObjectStore) RemoveObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
func (m *MockObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func newTestUseCase(repo *MockUserRepo, redis *MockRedisRepo, queue *MockMailQueue, store *MockObjectStore) AccountUseCase {
	return NewAccountUseCase(repo, time.Hour, redis, queue, store, encrypt.HashPassword, "https://events.example.com/reset")
}

func validUser() *domain.User {
	return &domain.User{
		Email:         "alice@example.com",
		Username:      "alice",
		FirstName:     "Alice",
		LastName:      "Smith",
		ContactNumber: "+886912345678",
		Password:      "!!Securepassword111",
	}
}

func TestAccountUseCase_Register(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	t.Run("register succeeds and logs the user in", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)
		user := validUser()

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &user.Email}).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Username: &user.Username}).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ContactNumber: &user.ContactNumber}).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("CreateUser", ctx, mock.Anything).Return(nil).Once()
		mockRedis.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateUserStatus", ctx, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Register(ctx, user)

		assert.NoError(t, err)
		assert.NotEmpty(t, tok)
		assert.NotEqual(t, "!!Securepassword111", user.Password) // the stored value is a hash
		assert.Equal(t, domain.UserStatusOnLine, user.Status)
		mockRepo.AssertExpectations(t)
		mockRedis.AssertExpectations(t)
	})

	t.Run("email already exists", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		user := validUser()

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &user.Email}).
			Return(&domain.User{ID: 1, Email: user.Email}, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
		assert.Equal(t, "email already exists", err.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("username already exists", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		user := validUser()

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &user.Email}).
			Return(nil, repository.ErrUserNotFound).Once()
		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Username: &user.Username}).
			Return(&domain.User{ID: 2, Username: user.Username}, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
		assert.Equal(t, "username already exists", err.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("uppercase username rejected", func(t *testing.T) {
		user := validUser()
		user.Username = "Alice"

		uc := newTestUseCase(new(MockUserRepo), new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
		assert.Equal(t, "username must consist of lowercase characters only", err.Error())
	})

	t.Run("weak password rejected", func(t *testing.T) {
		user := validUser()
		user.Password = "short"

		uc := newTestUseCase(new(MockUserRepo), new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
	})

	t.Run("hash password fails", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		user := validUser()

		mockRepo.On("FindByUser", ctx, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Times(3)

		mockHashPassword := func(password string) (string, error) {
			return "", errors.New("hash password error")
		}

		uc := NewAccountUseCase(mockRepo, time.Hour, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore), mockHashPassword, "")
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
		assert.Equal(t, "hash password error", err.Error())
		mockRepo.AssertExpectations(t)
	})

	t.Run("create user fails", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		user := validUser()

		mockRepo.On("FindByUser", ctx, mock.Anything).
			Return(nil, repository.ErrUserNotFound).Times(3)
		mockRepo.On("CreateUser", ctx, mock.Anything).Return(errors.New("db error")).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		_, err := uc.Register(ctx, user)

		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountUseCase_Login(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"
	password := "!!Securepassword111"
	hashedPassword, _ := encrypt.HashPassword(password)

	logger.SetNewNop()

	t.Run("login succeeds", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)

		existingUser := &domain.User{
			ID:       7,
			Email:    email,
			Password: hashedPassword,
			Status:   domain.UserStatusOffLine,
		}

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(existingUser, nil).Once()
		mockRepo.On("UpdateUserStatus", ctx, existingUser).Return(nil).Once()
		mockRedis.On("Set", ctx, "7", mock.Anything, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Login(ctx, email, password, time.Now())

		assert.NoError(t, err)
		assert.NotEmpty(t, tok)
		assert.Equal(t, domain.UserStatusOnLine, existingUser.Status)
		mockRepo.AssertExpectations(t)
		mockRedis.AssertExpectations(t)
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(nil, repository.ErrUserNotFound).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Login(ctx, email, password, time.Now())

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		existingUser := &domain.User{
			ID:       7,
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(existingUser, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Login(ctx, email, "wrong_password", time.Now())

		assert.Error(t, err)
		assert.Empty(t, tok)
		mockRepo.AssertExpectations(t)
	})

	t.Run("event manager gets the manager role", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)

		manager := &domain.User{
			ID:             9,
			Email:          email,
			Password:       hashedPassword,
			IsEventManager: true,
		}

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(manager, nil).Once()
		mockRepo.On("UpdateUserStatus", ctx, manager).Return(nil).Once()
		mockRedis.On("Set", ctx, "9", mock.Anything, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Login(ctx, email, password, time.Now())

		assert.NoError(t, err)

		claims, err := token.ParseJWT(tok)
		assert.NoError(t, err)
		assert.Equal(t, string(token.RoleEventManager), claims.Role)
		assert.Equal(t, int64(9), claims.UserID)
	})

	t.Run("redis set fails", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)

		existingUser := &domain.User{
			ID:       7,
			Email:    email,
			Password: hashedPassword,
		}

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(existingUser, nil).Once()
		mockRedis.On("Set", ctx, "7", mock.Anything, mock.Anything).
			Return(errors.New("redis error")).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		tok, err := uc.Login(ctx, email, password, time.Now())

		assert.Error(t, err)
		assert.Equal(t, "redis error", err.Error())
		assert.Empty(t, tok)
		mockRedis.AssertExpectations(t)
	})
}

func TestAccountUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	tokenStr := "mockToken"

	logger.SetNewNop()

	t.Run("token parse fails", func(t *testing.T) {
		originalParseJWTFunc := token.ParseJWTFunc
		defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

		token.ParseJWTFunc = func(t string) (*token.Claims, error) {
			return nil, errors.New("invalid token")
		}

		uc := newTestUseCase(new(MockUserRepo), new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.Logout(ctx, tokenStr)

		assert.Error(t, err)
		assert.Equal(t, "invalid token", err.Error())
	})

	t.Run("logout succeeds", func(t *testing.T) {
		originalParseJWTFunc := token.ParseJWTFunc
		defer func() { token.ParseJWTFunc = originalParseJWTFunc }()

		token.ParseJWTFunc = func(t string) (*token.Claims, error) {
			return &token.Claims{UserID: 7}, nil
		}

		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("Del", ctx, "7").Return(nil).Once()
		mockRepo.On("UpdateUserStatus", ctx, &domain.User{
			ID:     7,
			Status: domain.UserStatusOffLine,
		}).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		err := uc.Logout(ctx, tokenStr)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)
	oldPassword := "!!Securepassword111"
	newPassword := "@@Newpassword222"
	hashedOld, _ := encrypt.HashPassword(oldPassword)

	logger.SetNewNop()

	t.Run("change succeeds", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, Password: hashedOld}, nil).Once()
		mockRepo.On("UpdatePassword", ctx, userID, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.ChangePassword(ctx, userID, oldPassword, newPassword)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("old password wrong", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, Password: hashedOld}, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.ChangePassword(ctx, userID, "not_the_password", newPassword)

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("weak new password rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, Password: hashedOld}, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.ChangePassword(ctx, userID, oldPassword, "weak")

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountUseCase_PasswordReset(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"

	logger.SetNewNop()

	t.Run("reset mail is enqueued with a link", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockQueue := new(MockMailQueue)

		existingUser := &domain.User{
			ID:        7,
			Email:     email,
			FirstName: "Alice",
			LastName:  "Smith",
		}

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(existingUser, nil).Once()
		mockQueue.On("Enqueue", ctx, mock.MatchedBy(func(task maildomain.MailTask) bool {
			return task.To[0] == email &&
				strings.Contains(task.Body, "https://events.example.com/reset?token=")
		})).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), mockQueue, new(MockObjectStore))
		err := uc.SendPasswordResetEmail(ctx, email)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockQueue.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{Email: &email}).
			Return(nil, repository.ErrUserNotFound).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.SendPasswordResetEmail(ctx, email)

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("reset with a valid token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		resetToken, err := token.GeneratePasswordResetToken(7, "test")
		assert.NoError(t, err)

		mockRepo.On("UpdatePassword", ctx, int64(7), mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err = uc.ResetPassword(ctx, resetToken, "@@Newpassword222")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("auth token is not accepted for reset", func(t *testing.T) {
		authToken, err := token.GenerateJWT(7, string(token.RoleUser), "test")
		assert.NoError(t, err)

		uc := newTestUseCase(new(MockUserRepo), new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err = uc.ResetPassword(ctx, authToken, "@@Newpassword222")

		assert.Error(t, err)
		assert.Equal(t, "token is not a password reset token", err.Error())
	})
}

func TestAccountUseCase_Profile(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)

	logger.SetNewNop()

	t.Run("get profile", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		existingUser := &domain.User{ID: userID, Username: "alice"}
		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(existingUser, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		user, err := uc.GetProfile(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, existingUser, user)
	})

	t.Run("update profile validates names", func(t *testing.T) {
		uc := newTestUseCase(new(MockUserRepo), new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.UpdateProfile(ctx, &domain.User{
			ID:            userID,
			FirstName:     "Alice123",
			LastName:      "Smith",
			ContactNumber: "+886912345678",
		})

		assert.Error(t, err)
		assert.Equal(t, "name is invalid, enter a valid name", err.Error())
	})

	t.Run("update profile succeeds", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, Email: "alice@mail.com", Username: "alice"}, nil).Once()
		mockRepo.On("UpdateProfile", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.UpdateProfile(ctx, &domain.User{
			ID:            userID,
			FirstName:     "Alice",
			LastName:      "Jones",
			ContactNumber: "+886987654321",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("update profile keeps email and username", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{
				ID:       userID,
				Email:    "alice@mail.com",
				Username: "alice",
			}, nil).Once()
		mockRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == userID &&
				u.Email == "alice@mail.com" &&
				u.Username == "alice" &&
				u.FirstName == "Alice" &&
				u.LastName == "Jones"
		})).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.UpdateProfile(ctx, &domain.User{
			ID:            userID,
			FirstName:     "Alice",
			LastName:      "Jones",
			ContactNumber: "+886987654321",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("update profile fails for unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(nil, repository.ErrUserNotFound).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		err := uc.UpdateProfile(ctx, &domain.User{
			ID:            userID,
			FirstName:     "Alice",
			LastName:      "Jones",
			ContactNumber: "+886987654321",
		})

		assert.ErrorIs(t, err, repository.ErrUserNotFound)
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("delete profile clears the session", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRedis := new(MockRedisRepo)

		mockRedis.On("Del", ctx, "7").Return(nil).Once()
		mockRepo.On("DeleteUser", ctx, userID).Return(nil).Once()

		uc := newTestUseCase(mockRepo, mockRedis, new(MockMailQueue), new(MockObjectStore))
		err := uc.DeleteProfile(ctx, userID)

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountUseCase_ProfileImage(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)

	logger.SetNewNop()

	t.Run("upload stores the object and updates the key", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockStore := new(MockObjectStore)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID}, nil).Once()
		mockStore.On("UploadStream", ctx, mock.Anything, "image/png", mock.Anything, int64(4)).
			Return(nil).Once()
		mockRepo.On("UpdateProfileImage", ctx, userID, mock.Anything).Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), mockStore)
		key, err := uc.UploadProfileImage(ctx, userID, "avatar.png", "image/png", strings.NewReader("data"), 4)

		assert.NoError(t, err)
		assert.Contains(t, key, "profiles/7/")
		assert.Contains(t, key, ".png")
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("upload replaces the previous image", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockStore := new(MockObjectStore)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, ProfileImage: "profiles/7/old.png"}, nil).Once()
		mockStore.On("UploadStream", ctx, mock.Anything, "image/png", mock.Anything, int64(4)).
			Return(nil).Once()
		mockRepo.On("UpdateProfileImage", ctx, userID, mock.Anything).Return(nil).Once()
		mockStore.On("RemoveObject", ctx, "profiles/7/old.png").Return(nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), mockStore)
		_, err := uc.UploadProfileImage(ctx, userID, "avatar.png", "image/png", strings.NewReader("data"), 4)

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("image url is empty without an upload", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID}, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		url, err := uc.ProfileImageURL(ctx, userID)

		assert.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("image url is presigned", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockStore := new(MockObjectStore)

		mockRepo.On("FindByUser", ctx, &domain.UserQuery{ID: &userID}).
			Return(&domain.User{ID: userID, ProfileImage: "profiles/7/a.png"}, nil).Once()
		mockStore.On("PresignGetURL", ctx, "profiles/7/a.png", time.Hour).
			Return("https://minio.local/profiles/7/a.png", nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), mockStore)
		url, err := uc.ProfileImageURL(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, "https://minio.local/profiles/7/a.png", url)
	})
}

func TestAccountUseCase_ListEventManagers(t *testing.T) {
	ctx := context.Background()

	logger.SetNewNop()

	t.Run("managers are returned", func(t *testing.T) {
		mockRepo := new(MockUserRepo)

		managers := []domain.User{
			{ID: 1, Username: "boss", IsEventManager: true},
			{ID: 2, Username: "organizer", IsEventManager: true},
		}
		mockRepo.On("ListEventManagers", ctx).Return(managers, nil).Once()

		uc := newTestUseCase(mockRepo, new(MockRedisRepo), new(MockMailQueue), new(MockObjectStore))
		out, err := uc.ListEventManagers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, managers, out)
	})
}
