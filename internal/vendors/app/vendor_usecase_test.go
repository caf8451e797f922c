package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	maildomain "event_management_service/internal/mailer/domain"
	"event_management_service/internal/vendors/domain"
	"event_management_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVendorRepo struct {
	mock.Mock
}

func (m *MockVendorRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockVendorRepo) CreateCategory(c *domain.VendorCategory) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockVendorRepo) GetCategory(id uint) (*domain.VendorCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorCategory), args.Error(1)
}

func (m *MockVendorRepo) FindCategoryByName(name string) (*domain.VendorCategory, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorCategory), args.Error(1)
}

func (m *MockVendorRepo) UpdateCategory(c *domain.VendorCategory) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockVendorRepo) DeleteCategory(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVendorRepo) ListCategories() ([]domain.VendorCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorCategory), args.Error(1)
}

func (m *MockVendorRepo) CreateRegistration(v *domain.VendorRegistration) error {
	args := m.Called(v)
	return args.Error(0)
}

func (m *MockVendorRepo) GetRegistration(id uint) (*domain.VendorRegistration, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorRegistration), args.Error(1)
}

func (m *MockVendorRepo) FindByUserID(userID int64) (*domain.VendorRegistration, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorRegistration), args.Error(1)
}

func (m *MockVendorRepo) UpdateRegistration(v *domain.VendorRegistration) error {
	args := m.Called(v)
	return args.Error(0)
}

func (m *MockVendorRepo) DeleteRegistration(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVendorRepo) ListApproved(filter domain.VendorFilter) ([]domain.VendorRegistration, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorRegistration), args.Error(1)
}

func (m *MockVendorRepo) CreateImage(i *domain.VendorImage) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockVendorRepo) GetImage(id uint) (*domain.VendorImage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorImage), args.Error(1)
}

func (m *MockVendorRepo) UpdateImage(i *domain.VendorImage) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockVendorRepo) DeleteImage(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVendorRepo) ListImagesByVendor(vendorID uint) ([]domain.VendorImage, error) {
	args := m.Called(vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorImage), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindEmail(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockMailQueue struct {
	mock.Mock
}

func (m *MockMailQueue) Enqueue(ctx context.Context, task maildomain.MailTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

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

type vendorMocks struct {
	repo  *MockVendorRepo
	users *MockUserDirectory
	queue *MockMailQueue
	store *MockObjectStore
}

func newVendorUseCase() (VendorUseCase, vendorMocks) {
	m := vendorMocks{
		repo:  new(MockVendorRepo),
		users: new(MockUserDirectory),
		queue: new(MockMailQueue),
		store: new(MockObjectStore),
	}
	return NewVendorUseCase(m.repo, m.users, m.queue, m.store), m
}

func TestRegisterVendor(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("registration starts unapproved", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("FindByUserID", int64(7)).Return(nil, nil)
		m.repo.On("GetCategory", uint(2)).Return(&domain.VendorCategory{ID: 2, Name: "Catering"}, nil)
		m.repo.On("CreateRegistration", mock.MatchedBy(func(v *domain.VendorRegistration) bool {
			return v.UserID == 7 && v.CategoryID == 2 && !v.IsApproved
		})).Return(nil)

		got, err := uc.RegisterVendor(ctx, 7, 2, "full service catering")
		assert.NoError(t, err)
		assert.False(t, got.IsApproved)
		m.repo.AssertExpectations(t)
	})

	t.Run("second registration for the same user is rejected", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("FindByUserID", int64(7)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)

		_, err := uc.RegisterVendor(ctx, 7, 2, "another listing")
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		m.repo.AssertNotCalled(t, "CreateRegistration", mock.Anything)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("FindByUserID", int64(7)).Return(nil, nil)
		m.repo.On("GetCategory", uint(99)).Return(nil, errors.New("record not found"))

		_, err := uc.RegisterVendor(ctx, 7, 99, "details")
		assert.Error(t, err)
		assert.Equal(t, "vendor category not found", err.Error())
	})
}

func TestApproveVendor(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("approval flips the flag and mails the vendor", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: false}, nil)
		m.repo.On("UpdateRegistration", mock.MatchedBy(func(v *domain.VendorRegistration) bool {
			return v.ID == 1 && v.IsApproved
		})).Return(nil)
		m.users.On("FindEmail", ctx, int64(7)).Return("vendor@example.com", nil)
		m.queue.On("Enqueue", ctx, mock.MatchedBy(func(task maildomain.MailTask) bool {
			return len(task.To) == 1 && task.To[0] == "vendor@example.com" &&
				strings.Contains(task.Subject, "approved")
		})).Return(nil)

		err := uc.ApproveVendor(ctx, 1)
		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
		m.queue.AssertExpectations(t)
	})

	t.Run("approving twice is a no op", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: true}, nil)

		err := uc.ApproveVendor(ctx, 1)
		assert.NoError(t, err)
		m.repo.AssertNotCalled(t, "UpdateRegistration", mock.Anything)
		m.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("queue failure does not revoke approval", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)
		m.repo.On("UpdateRegistration", mock.Anything).Return(nil)
		m.users.On("FindEmail", ctx, int64(7)).Return("vendor@example.com", nil)
		m.queue.On("Enqueue", ctx, mock.Anything).Return(errors.New("kafka down"))

		err := uc.ApproveVendor(ctx, 1)
		assert.NoError(t, err)
	})
}

func TestUpdateAndDeleteVendor(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("update by another user is denied", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: true}, nil)

		err := uc.UpdateVendor(99, 1, 2, "new details")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("update before approval is rejected", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: false}, nil)

		err := uc.UpdateVendor(7, 1, 2, "new details")
		assert.ErrorIs(t, err, domain.ErrVendorNotApproved)
		m.repo.AssertNotCalled(t, "UpdateRegistration", mock.Anything)
	})

	t.Run("owner of an approved registration may update", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, CategoryID: 2, IsApproved: true}, nil)
		m.repo.On("GetCategory", uint(3)).Return(&domain.VendorCategory{ID: 3}, nil)
		m.repo.On("UpdateRegistration", mock.MatchedBy(func(v *domain.VendorRegistration) bool {
			return v.CategoryID == 3 && v.Details == "new details"
		})).Return(nil)

		err := uc.UpdateVendor(7, 1, 3, "new details")
		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("delete before approval is rejected", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: false}, nil)

		err := uc.DeleteVendor(ctx, 7, 1)
		assert.ErrorIs(t, err, domain.ErrVendorNotApproved)
	})

	t.Run("delete removes registration and image objects", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: true}, nil)
		m.repo.On("ListImagesByVendor", uint(1)).Return([]domain.VendorImage{
			{ID: 10, VendorID: 1, Image: "vendors/1/a.jpg"},
		}, nil)
		m.repo.On("DeleteRegistration", uint(1)).Return(nil)
		m.repo.On("DeleteImage", uint(10)).Return(nil)
		m.store.On("RemoveObject", ctx, "vendors/1/a.jpg").Return(nil)

		err := uc.DeleteVendor(ctx, 7, 1)
		assert.NoError(t, err)
		m.store.AssertExpectations(t)
	})
}

func TestVendorListings(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("get vendor returns details with presigned images", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, CategoryID: 2, Details: "catering", IsApproved: true}, nil)
		m.repo.On("ListImagesByVendor", uint(1)).Return([]domain.VendorImage{
			{ID: 10, VendorID: 1, Image: "vendors/1/a.jpg", Title: "menu"},
		}, nil)
		m.store.On("PresignGetURL", ctx, "vendors/1/a.jpg", imageURLExpiry).
			Return("https://minio/a", nil)

		view, err := uc.GetVendor(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "catering", view.Details)
		assert.Len(t, view.Images, 1)
		assert.Equal(t, "https://minio/a", view.Images[0].URL)
	})

	t.Run("public listing forwards the filter", func(t *testing.T) {
		uc, m := newVendorUseCase()

		catID := uint(2)
		filter := domain.VendorFilter{CategoryID: &catID, Search: "cater"}
		want := []domain.VendorRegistration{{ID: 1, IsApproved: true}}
		m.repo.On("ListApproved", filter).Return(want, nil)

		got, err := uc.ListApprovedVendors(filter)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestVendorImages(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	t.Run("upload by the owner stores under the vendor prefix", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7, IsApproved: true}, nil)
		m.store.On("UploadStream", ctx, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "vendors/1/") && strings.HasSuffix(name, ".png")
		}), "image/png", mock.Anything, int64(3)).Return(nil)
		m.repo.On("CreateImage", mock.MatchedBy(func(i *domain.VendorImage) bool {
			return i.VendorID == 1 && i.Title == "menu" && i.Details == "our menu"
		})).Return(nil)

		img, err := uc.UploadVendorImage(ctx, 7, 1, "menu", "our menu", "menu.png", "image/png", bytes.NewReader([]byte("abc")), 3)
		assert.NoError(t, err)
		assert.Equal(t, "menu", img.Title)
		m.store.AssertExpectations(t)
	})

	t.Run("upload by another user is denied", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)

		_, err := uc.UploadVendorImage(ctx, 99, 1, "menu", "", "menu.png", "image/png", bytes.NewReader(nil), 0)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		m.store.AssertNotCalled(t, "UploadStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner can retitle an image", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetImage", uint(10)).
			Return(&domain.VendorImage{ID: 10, VendorID: 1, Image: "vendors/1/a.jpg", Title: "menu"}, nil)
		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)
		m.repo.On("UpdateImage", mock.MatchedBy(func(i *domain.VendorImage) bool {
			return i.ID == 10 && i.Title == "summer menu" && i.Details == "seasonal" && i.Image == "vendors/1/a.jpg"
		})).Return(nil)

		err := uc.UpdateVendorImage(7, 10, "summer menu", "seasonal")
		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("retitle by another user is denied", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetImage", uint(10)).
			Return(&domain.VendorImage{ID: 10, VendorID: 1}, nil)
		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)

		err := uc.UpdateVendorImage(99, 10, "x", "")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		m.repo.AssertNotCalled(t, "UpdateImage", mock.Anything)
	})

	t.Run("delete image checks ownership through the registration", func(t *testing.T) {
		uc, m := newVendorUseCase()

		m.repo.On("GetImage", uint(10)).
			Return(&domain.VendorImage{ID: 10, VendorID: 1, Image: "vendors/1/a.jpg"}, nil)
		m.repo.On("GetRegistration", uint(1)).
			Return(&domain.VendorRegistration{ID: 1, UserID: 7}, nil)
		m.repo.On("DeleteImage", uint(10)).Return(nil)
		m.store.On("RemoveObject", ctx, "vendors/1/a.jpg").Return(nil)

		err := uc.DeleteVendorImage(ctx, 7, 10)
		assert.NoError(t, err)
		m.store.AssertExpectations(t)
	})
}
