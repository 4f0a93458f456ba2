// Package categories provides database operations for the category tree.
package categories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/navidh0/librarian/internal/entities"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameRequired     = errors.New("category name is required")
	ErrParentNotFound   = errors.New("parent category not found")
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new category, optionally attached to a parent.
func (r *Repository) Create(name string, parentID *uint) (*entities.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if parentID != nil {
		var parent entities.Category
		if err := r.db.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	category := &entities.Category{Name: name, ParentID: parentID}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// GetAll returns every category ordered by name.
func (r *Repository) GetAll() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetByID retrieves a single category.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category. Child categories lose their parent reference and
// books referencing it drop their category; neither children nor books are
// deleted. The whole operation runs in one transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category entities.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Model(&entities.Category{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Book{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}
