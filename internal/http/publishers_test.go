package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navidh0/librarian/internal/database/books"
	"github.com/navidh0/librarian/internal/entities"
)

func TestPublishersController_Create(t *testing.T) {
	t.Run("creates a publisher", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		controller := NewPublishersController(env.db)
		router := gin.New()
		router.POST("/api/publishers", asUser(1, entities.UserRoleAdmin), controller.Create)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/publishers",
			strings.NewReader(`{"name": "Penguin Books", "address": "London"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created entities.Publisher
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Penguin Books", created.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		controller := NewPublishersController(env.db)
		router := gin.New()
		router.POST("/api/publishers", asUser(1, entities.UserRoleAdmin), controller.Create)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/publishers", strings.NewReader(`{"name": "  "}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPublishersController_Delete(t *testing.T) {
	t.Run("deleting a publisher removes its books", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		book := env.createBook(t, "Orphaned", "9780000000001", 10,
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))

		controller := NewPublishersController(env.db)
		router := gin.New()
		router.DELETE("/api/publishers/:id", asUser(1, entities.UserRoleAdmin), controller.Delete)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/publishers/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		_, err := env.books.GetByID(book.ID)
		assert.ErrorIs(t, err, books.ErrBookNotFound)
	})

	t.Run("returns 404 for unknown publisher", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		controller := NewPublishersController(env.db)
		router := gin.New()
		router.DELETE("/api/publishers/:id", asUser(1, entities.UserRoleAdmin), controller.Delete)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/publishers/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorsController(t *testing.T) {
	t.Run("creates and lists authors sorted by name", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		controller := NewAuthorsController(env.db)
		router := gin.New()
		router.POST("/api/authors", asUser(1, entities.UserRoleAdmin), controller.Create)
		router.GET("/api/authors", asUser(1, entities.UserRoleAdmin), controller.List)

		for _, name := range []string{"Terry Pratchett", "Agatha Christie"} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/authors",
				strings.NewReader(`{"full_name": "`+name+`"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/authors", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		items := response["authors"].([]interface{})
		require.Len(t, items, 2)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "Agatha Christie", first["full_name"])
	})

	t.Run("rejects empty full_name", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		controller := NewAuthorsController(env.db)
		router := gin.New()
		router.POST("/api/authors", asUser(1, entities.UserRoleAdmin), controller.Create)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/authors", strings.NewReader(`{"full_name": ""}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthController_Status(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	controller := NewHealthController(env.db, "test")
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "ok", response["database"])
	assert.Equal(t, "test", response["version"])
}
