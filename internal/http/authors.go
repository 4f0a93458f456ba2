package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	CreateAuthor(fullName, bio string) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

type authorForm struct {
	FullName string `form:"full_name" json:"full_name"`
	Bio      string `form:"bio" json:"bio"`
}

// List returns all authors.
// GET /api/authors (admin)
func (ac *AuthorsController) List(c *gin.Context) {
	items, err := ac.store.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": items})
}

// Create stores a new author.
// POST /api/authors (admin)
func (ac *AuthorsController) Create(c *gin.Context) {
	var form authorForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(form.FullName) == "" {
		respondValidationError(c, map[string]string{"full_name": "full_name is required"})
		return
	}

	author, err := ac.store.CreateAuthor(form.FullName, form.Bio)
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}
	respondCreated(c, author)
}
