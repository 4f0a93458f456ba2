package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navidh0/librarian/internal/entities"
)

func createMember(t *testing.T, env *testEnv, username string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, PasswordHash: "x", Role: entities.UserRoleMember}
	require.NoError(t, env.db.DB.Create(user).Error)
	return user
}

func TestFavoritesController_Toggle(t *testing.T) {
	t.Run("alternates between added and removed", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		user := createMember(t, env, "reader")
		book := env.createBook(t, "The Hobbit", "9780000000001", 15,
			time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC))

		controller := NewFavoritesController(env.favorites, env.books)
		router := gin.New()
		router.POST("/api/books/:id/favorite", asUser(user.ID, entities.UserRoleMember), controller.Toggle)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books/1/favorite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "added", response["status"])
		assert.Equal(t, float64(book.ID), response["book_id"])

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("POST", "/api/books/1/favorite", nil)
		router.ServeHTTP(w, req)

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "removed", response["status"])
	})

	t.Run("returns 404 for unknown book", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		user := createMember(t, env, "reader")

		controller := NewFavoritesController(env.favorites, env.books)
		router := gin.New()
		router.POST("/api/books/:id/favorite", asUser(user.ID, entities.UserRoleMember), controller.Toggle)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books/999/favorite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFavoritesController_List(t *testing.T) {
	t.Run("returns only the requester's favorites", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		alice := createMember(t, env, "alice")
		bob := createMember(t, env, "bob")

		published := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		hers := env.createBook(t, "Hers", "9780000000001", 10, published)
		his := env.createBook(t, "His", "9780000000002", 10, published)

		_, err := env.favorites.Toggle(alice.ID, hers.ID)
		require.NoError(t, err)
		_, err = env.favorites.Toggle(bob.ID, his.ID)
		require.NoError(t, err)

		controller := NewFavoritesController(env.favorites, env.books)
		router := gin.New()
		router.GET("/api/books/favorites", asUser(alice.ID, entities.UserRoleMember), controller.List)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/favorites", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		items := response["books"].([]interface{})
		require.Len(t, items, 1)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "Hers", first["title"])
	})

	t.Run("returns an empty list when nothing is favorited", func(t *testing.T) {
		env, cleanup := setupTestEnv(t)
		defer cleanup()

		user := createMember(t, env, "reader")

		controller := NewFavoritesController(env.favorites, env.books)
		router := gin.New()
		router.GET("/api/books/favorites", asUser(user.ID, entities.UserRoleMember), controller.List)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/favorites", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"books": []}`, w.Body.String())
	})
}
