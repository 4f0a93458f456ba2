package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/database"
	"github.com/navidh0/librarian/internal/database/books"
	"github.com/navidh0/librarian/internal/database/categories"
	"github.com/navidh0/librarian/internal/entities"
)

// BookStore defines database operations for book management.
type BookStore interface {
	List(filter books.Filter) ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	Create(book *entities.Book) error
	Update(id uint, book *entities.Book) error
	Delete(id uint) error
	BulkDelete(filter books.Filter) (int64, error)
}

// CategoryReader provides the category set for the listing filter UI and
// category resolution on book writes.
type CategoryReader interface {
	GetAll() ([]entities.Category, error)
	GetByID(id uint) (*entities.Category, error)
}

// FavoriteMarks provides the requester's favorited book IDs for listings.
type FavoriteMarks interface {
	GetBookIDsForUser(userID uint) ([]uint, error)
}

// ReferenceResolver resolves publisher and author references on book writes.
type ReferenceResolver interface {
	GetPublisherByID(id uint) (*entities.Publisher, error)
	GetAuthorsByIDs(ids []uint) ([]entities.Author, error)
}

type BooksController struct {
	store      BookStore
	categories CategoryReader
	favorites  FavoriteMarks
	refs       ReferenceResolver
}

func NewBooksController(store BookStore, categories CategoryReader, favorites FavoriteMarks, refs ReferenceResolver) *BooksController {
	return &BooksController{
		store:      store,
		categories: categories,
		favorites:  favorites,
		refs:       refs,
	}
}

// List returns books matching the search filter, the category set for the
// filter UI, and the set of book IDs the requester has favorited.
// GET /api/books
func (bc *BooksController) List(c *gin.Context) {
	filter := books.ParseListFilter(c.Request.URL.Query())

	items, err := bc.store.List(filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	categories, err := bc.categories.GetAll()
	if err != nil {
		respondInternalError(c, err, "list categories for filter")
		return
	}

	favoriteIDs, err := bc.favorites.GetBookIDsForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "load favorite marks")
		return
	}
	if favoriteIDs == nil {
		favoriteIDs = []uint{}
	}

	c.JSON(http.StatusOK, gin.H{
		"books":             items,
		"categories":        categories,
		"favorite_book_ids": favoriteIDs,
	})
}

type bookForm struct {
	Title              string  `form:"title" json:"title"`
	ISBN               string  `form:"isbn" json:"isbn"`
	Price              float64 `form:"price" json:"price"`
	PublishDate        string  `form:"publish_date" json:"publish_date"`
	AvailabilityStatus string  `form:"availability_status" json:"availability_status"`
	PublisherID        uint    `form:"publisher_id" json:"publisher_id"`
	CategoryID         *uint   `form:"category_id" json:"category_id"`
	AuthorIDs          []uint  `form:"author_ids" json:"author_ids"`
}

// buildBook resolves the form's references and assembles a Book. Reference
// and date problems come back as field-level validation errors; the
// repository enforces the remaining invariants on write.
func (bc *BooksController) buildBook(form bookForm) (*entities.Book, map[string]string, error) {
	fields := make(map[string]string)

	var publishDate time.Time
	if form.PublishDate == "" {
		fields["publish_date"] = "publish_date is required"
	} else {
		parsed, err := time.Parse("2006-01-02", form.PublishDate)
		if err != nil {
			fields["publish_date"] = "publish_date must be in YYYY-MM-DD format"
		} else {
			publishDate = parsed
		}
	}

	if form.PublisherID == 0 {
		fields["publisher_id"] = "publisher is required"
	} else if _, err := bc.refs.GetPublisherByID(form.PublisherID); err != nil {
		if errors.Is(err, database.ErrPublisherNotFound) {
			fields["publisher_id"] = "publisher does not exist"
		} else {
			return nil, nil, err
		}
	}

	if form.CategoryID != nil {
		if _, err := bc.categories.GetByID(*form.CategoryID); err != nil {
			if errors.Is(err, categories.ErrCategoryNotFound) {
				fields["category_id"] = "category does not exist"
			} else {
				return nil, nil, err
			}
		}
	}

	authors, err := bc.refs.GetAuthorsByIDs(form.AuthorIDs)
	if err != nil {
		if errors.Is(err, database.ErrAuthorNotFound) {
			fields["author_ids"] = "one or more authors do not exist"
		} else {
			return nil, nil, err
		}
	}

	if len(fields) > 0 {
		return nil, fields, nil
	}

	return &entities.Book{
		Title:              form.Title,
		ISBN:               form.ISBN,
		Price:              form.Price,
		PublishDate:        publishDate,
		AvailabilityStatus: entities.Availability(form.AvailabilityStatus),
		PublisherID:        form.PublisherID,
		CategoryID:         form.CategoryID,
		Authors:            authors,
	}, nil, nil
}

// Create stores a new book.
// POST /api/books (admin)
func (bc *BooksController) Create(c *gin.Context) {
	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, fields, err := bc.buildBook(form)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	if fields != nil {
		respondValidationError(c, fields)
		return
	}

	if err := bc.store.Create(book); err != nil {
		var validation *books.ValidationError
		if errors.As(err, &validation) {
			respondValidationError(c, validation.Fields)
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	created, err := bc.store.GetByID(book.ID)
	if err != nil {
		respondCreated(c, book)
		return
	}
	respondCreated(c, created)
}

// Update replaces an existing book's fields, including its author set.
// PUT /api/books/:id (admin)
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form bookForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, fields, err := bc.buildBook(form)
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	if fields != nil {
		respondValidationError(c, fields)
		return
	}

	if err := bc.store.Update(id, book); err != nil {
		var validation *books.ValidationError
		switch {
		case errors.As(err, &validation):
			respondValidationError(c, validation.Fields)
		case errors.Is(err, books.ErrBookNotFound):
			respondNotFound(c, "book")
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	updated, err := bc.store.GetByID(id)
	if err != nil {
		respondSuccess(c, "book updated")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a single book.
// DELETE /api/books/:id (admin)
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(id); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, "book deleted")
}

// BulkDelete removes every book matching the filter and reports the count.
// With no parameters the filter matches the entire catalog; that delete-all
// behavior is intentional.
// DELETE /api/books (admin)
func (bc *BooksController) BulkDelete(c *gin.Context) {
	filter := books.ParseBulkDeleteFilter(c.Request.URL.Query())

	deleted, err := bc.store.BulkDelete(filter)
	if err != nil {
		respondInternalError(c, err, "bulk delete books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
