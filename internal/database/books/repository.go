package books

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/navidh0/librarian/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

var isbnPattern = regexp.MustCompile(`^[0-9]{13}$`)

// ValidationError reports field-level validation failures on book writes.
// The operation that produced it performed no partial write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid book: " + strings.Join(names, ", ")
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the books matching the filter with their publisher, category
// and authors preloaded, ordered ascending by title.
func (r *Repository) List(filter Filter) ([]entities.Book, error) {
	var books []entities.Book
	err := filter.apply(r.db.Model(&entities.Book{})).
		Preload("Publisher").
		Preload("Category").
		Preload("Authors").
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// GetByID retrieves a single book with its associations.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Publisher").
		Preload("Category").
		Preload("Authors").
		First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create validates and stores a new book together with its author links.
// book.Authors must carry existing author records; only the join rows are
// written, never the author rows themselves.
func (r *Repository) Create(book *entities.Book) error {
	if err := r.validate(book, 0); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Authors.*", "Publisher", "Category").Create(book).Error
	})
}

// Update replaces all editable fields of an existing book, including the
// many-to-many author set, as one atomic unit.
func (r *Repository) Update(id uint, book *entities.Book) error {
	if err := r.validate(book, id); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		existing.Title = book.Title
		existing.ISBN = book.ISBN
		existing.Price = book.Price
		existing.PublishDate = book.PublishDate
		existing.AvailabilityStatus = book.AvailabilityStatus
		existing.PublisherID = book.PublisherID
		existing.CategoryID = book.CategoryID

		if err := tx.Omit("Authors", "Publisher", "Category").Save(&existing).Error; err != nil {
			return err
		}

		authors := make([]entities.Author, len(book.Authors))
		copy(authors, book.Authors)
		if err := tx.Model(&existing).Association("Authors").Replace(authors); err != nil {
			return fmt.Errorf("failed to replace authors: %w", err)
		}

		book.ID = existing.ID
		return nil
	})
}

// Delete removes a single book, its favorites and its author links.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		return deleteBooks(tx, []uint{book.ID})
	})
}

// BulkDelete removes every book matching the filter and reports how many were
// deleted. An empty filter matches the whole catalog: bulk delete with no
// parameters is a deliberate delete-all operation.
func (r *Repository) BulkDelete(filter Filter) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := filter.apply(tx.Model(&entities.Book{})).
			Distinct("books.id").
			Pluck("books.id", &ids).Error; err != nil {
			return err
		}
		deleted = int64(len(ids))
		if len(ids) == 0 {
			return nil
		}
		return deleteBooks(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// deleteBooks removes the given books with their dependent rows inside the
// caller's transaction.
func deleteBooks(tx *gorm.DB, ids []uint) error {
	if err := tx.Where("book_id IN ?", ids).Delete(&entities.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM book_authors WHERE book_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&entities.Book{}).Error
}

// validate enforces the write-path invariants. excludeID carries the book's
// own ID on update so the ISBN uniqueness check skips it.
func (r *Repository) validate(book *entities.Book, excludeID uint) error {
	fields := make(map[string]string)

	if strings.TrimSpace(book.Title) == "" {
		fields["title"] = "title is required"
	}
	if !isbnPattern.MatchString(book.ISBN) {
		fields["isbn"] = "isbn must be exactly 13 numeric digits"
	}
	if book.Price < 0 {
		fields["price"] = "price must be non-negative"
	}
	if book.PublishDate.IsZero() {
		fields["publish_date"] = "publish_date is required"
	}
	if !book.AvailabilityStatus.Valid() {
		fields["availability_status"] = "availability_status must be 'available' or 'unavailable'"
	}
	if book.PublisherID == 0 {
		fields["publisher_id"] = "publisher is required"
	}

	if fields["isbn"] == "" {
		var count int64
		query := r.db.Model(&entities.Book{}).Where("isbn = ?", book.ISBN)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			fields["isbn"] = "a book with this isbn already exists"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
