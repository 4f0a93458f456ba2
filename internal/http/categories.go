package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/database/categories"
	"github.com/navidh0/librarian/internal/entities"
)

// CategoryStore defines database operations for category management.
type CategoryStore interface {
	Create(name string, parentID *uint) (*entities.Category, error)
	GetAll() ([]entities.Category, error)
	GetByID(id uint) (*entities.Category, error)
	Delete(id uint) error
}

type CategoriesController struct {
	store CategoryStore
}

func NewCategoriesController(store CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

type categoryForm struct {
	Name     string `form:"name" json:"name"`
	ParentID *uint  `form:"parent_id" json:"parent_id"`
}

// List returns all categories for the management view.
// GET /api/categories (admin)
func (cc *CategoriesController) List(c *gin.Context) {
	items, err := cc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

// Create stores a new category, optionally under a parent.
// POST /api/categories (admin)
func (cc *CategoriesController) Create(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	category, err := cc.store.Create(form.Name, form.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, categories.ErrNameRequired):
			respondValidationError(c, map[string]string{"name": err.Error()})
		case errors.Is(err, categories.ErrParentNotFound):
			respondValidationError(c, map[string]string{"parent_id": err.Error()})
		default:
			respondInternalError(c, err, "create category")
		}
		return
	}

	respondCreated(c, category)
}

// Delete removes a category. Its books keep existing with no category and
// its children become roots.
// DELETE /api/categories/:id (admin)
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.store.Delete(id); err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "delete category")
		return
	}

	respondSuccess(c, "category deleted")
}
