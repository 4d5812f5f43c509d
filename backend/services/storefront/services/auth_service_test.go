package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

func newAuth(repo *mockUserRepo) AuthService {
	return NewAuthService(repo, bcrypt.MinCost, zap.NewNop())
}

func TestRoleForEmail(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, RoleForEmail("joe.admin@x.com"))
	assert.Equal(t, models.RoleAdmin, RoleForEmail("ADMIN@shop.com"))
	assert.Equal(t, models.RoleUser, RoleForEmail("joe@x.com"))
}

func TestRegister_HashesPasswordAndDerivesRole(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("ExistsByEmail", mock.Anything, "joe.admin@x.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := newAuth(repo).Register(context.Background(), &models.RegisterRequest{
		Name: "Joe", Email: " Joe.Admin@x.com ", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "joe.admin@x.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("ExistsByEmail", mock.Anything, "joe@x.com").Return(true, nil)

	_, err := newAuth(repo).Register(context.Background(), &models.RegisterRequest{
		Name: "Joe", Email: "joe@x.com", Password: "secret123",
	})

	require.Error(t, err)
	appErr := apperrors.As(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, ErrMsgEmailTaken, appErr.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UniqueIndexRace(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("ExistsByEmail", mock.Anything, "joe@x.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := newAuth(repo).Register(context.Background(), &models.RegisterRequest{
		Name: "Joe", Email: "joe@x.com", Password: "secret123",
	})

	assert.Equal(t, http.StatusConflict, apperrors.As(err).Code)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "joe@x.com").
		Return(&models.User{ID: 3, Name: "Joe", Email: "joe@x.com", Password: string(hash), Role: models.RoleUser}, nil)

	user, err := newAuth(repo).Login(context.Background(), "joe@x.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "joe@x.com").
		Return(&models.User{ID: 3, Password: string(hash)}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)

	svc := newAuth(repo)
	_, wrongPassword := svc.Login(context.Background(), "joe@x.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "secret123")

	for _, err := range []error{wrongPassword, unknownEmail} {
		appErr := apperrors.As(err)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		assert.Equal(t, ErrMsgInvalidCredentials, appErr.Message)
	}
}

func TestLogin_StorageErrorIsInternal(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "joe@x.com").Return(nil, errors.New("db down"))

	_, err := newAuth(repo).Login(context.Background(), "joe@x.com", "x")

	assert.Equal(t, http.StatusInternalServerError, apperrors.As(err).Code)
}
