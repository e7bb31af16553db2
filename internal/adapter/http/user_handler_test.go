package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apphttp "github.com/meukanban/kanban-api/internal/adapter/http"
	"github.com/meukanban/kanban-api/internal/app/auth"
	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/mocks"
	"github.com/meukanban/kanban-api/internal/testutils"
	"github.com/meukanban/kanban-api/pkg/security"
)

func setupAuthRoutes(t *testing.T, users *mocks.MockUserRepository) *gin.Engine {
	t.Setenv("JWT_SECRET_KEY", "um-segredo-de-teste-com-mais-de-32-bytes")

	logger := testutils.TestLogger(t)
	keyManager, err := security.NewKeyManager(logger)
	require.NoError(t, err)

	service := auth.NewService(keyManager, users, logger, time.Hour, 6)
	handler := apphttp.NewUserHandler(service, logger)

	router := testutils.SetupTestRouter(t)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	return router
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("creates the user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		router := setupAuthRoutes(t, users)

		users.On("GetByEmail", mock.Anything, "maria@example.com").
			Return(nil, repository.ErrUserNotFound).Once()
		users.On("Create", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("string")).
			Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/register",
			map[string]string{
				"name":     "Maria",
				"email":    "maria@example.com",
				"password": "senha-forte",
			}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "maria@example.com", body["email"])
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		router := setupAuthRoutes(t, users)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/register",
			map[string]string{"name": "Maria"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("duplicate email is a 409", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		router := setupAuthRoutes(t, users)

		users.On("GetByEmail", mock.Anything, "maria@example.com").
			Return(&model.User{ID: "u1"}, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/register",
			map[string]string{
				"name":     "Maria",
				"email":    "maria@example.com",
				"password": "senha-forte",
			}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("returns token and user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		router := setupAuthRoutes(t, users)

		user := &model.User{ID: "u1", Name: "Maria", Email: "maria@example.com"}

		users.On("Authenticate", mock.Anything, "maria@example.com", "senha-forte").
			Return(user, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login",
			map[string]string{
				"email":    "maria@example.com",
				"password": "senha-forte",
			}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		testutils.RequireJSONContentType(t, resp)

		var body struct {
			Token string `json:"token"`
			User  struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "u1", body.User.ID)
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		router := setupAuthRoutes(t, users)

		users.On("Authenticate", mock.Anything, "maria@example.com", "errada").
			Return(nil, repository.ErrInvalidCredentials).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login",
			map[string]string{
				"email":    "maria@example.com",
				"password": "errada",
			}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})
}

// sanity check for the bcrypt round trip used by the repository layer
func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.DefaultCost)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("senha-forte")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("outra")))
}
