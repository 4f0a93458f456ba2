package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/database/books"
	"github.com/navidh0/librarian/internal/entities"
)

// FavoritesStore defines database operations for favorites management.
type FavoritesStore interface {
	Toggle(userID, bookID uint) (added bool, err error)
	ListBooksForUser(userID uint) ([]entities.Book, error)
}

// BookGetter provides read access to single books.
type BookGetter interface {
	GetByID(id uint) (*entities.Book, error)
}

type FavoritesController struct {
	store FavoritesStore
	books BookGetter
}

func NewFavoritesController(store FavoritesStore, books BookGetter) *FavoritesController {
	return &FavoritesController{store: store, books: books}
}

// Toggle flips the favorite state for the current user and the given book.
// Reports "added" or "removed" depending on the transition taken.
// POST /api/books/:id/favorite
func (fc *FavoritesController) Toggle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := fc.books.GetByID(id); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "toggle favorite")
		return
	}

	added, err := fc.store.Toggle(GetUserID(c), id)
	if err != nil {
		respondInternalError(c, err, "toggle favorite")
		return
	}

	status := "removed"
	if added {
		status = "added"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "book_id": id})
}

// List returns the current user's favorited books.
// GET /api/books/favorites
func (fc *FavoritesController) List(c *gin.Context) {
	items, err := fc.store.ListBooksForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}
	if items == nil {
		items = []entities.Book{}
	}
	c.JSON(http.StatusOK, gin.H{"books": items})
}
