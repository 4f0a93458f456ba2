package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/database"
	"github.com/navidh0/librarian/internal/entities"
)

// PublisherStore defines database operations for publisher management.
type PublisherStore interface {
	CreatePublisher(name, address string) (*entities.Publisher, error)
	GetAllPublishers() ([]entities.Publisher, error)
	DeletePublisher(id uint) error
}

type PublishersController struct {
	store PublisherStore
}

func NewPublishersController(store PublisherStore) *PublishersController {
	return &PublishersController{store: store}
}

type publisherForm struct {
	Name    string `form:"name" json:"name"`
	Address string `form:"address" json:"address"`
}

// List returns all publishers.
// GET /api/publishers (admin)
func (pc *PublishersController) List(c *gin.Context) {
	items, err := pc.store.GetAllPublishers()
	if err != nil {
		respondInternalError(c, err, "list publishers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"publishers": items})
}

// Create stores a new publisher.
// POST /api/publishers (admin)
func (pc *PublishersController) Create(c *gin.Context) {
	var form publisherForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(form.Name) == "" {
		respondValidationError(c, map[string]string{"name": "name is required"})
		return
	}

	publisher, err := pc.store.CreatePublisher(form.Name, form.Address)
	if err != nil {
		respondInternalError(c, err, "create publisher")
		return
	}
	respondCreated(c, publisher)
}

// Delete removes a publisher and, by cascade, every book it published.
// DELETE /api/publishers/:id (admin)
func (pc *PublishersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.store.DeletePublisher(id); err != nil {
		if errors.Is(err, database.ErrPublisherNotFound) {
			respondNotFound(c, "publisher")
			return
		}
		respondInternalError(c, err, "delete publisher")
		return
	}

	respondSuccess(c, "publisher deleted")
}
