// Package favorites provides database operations for per-user book
// favorites. A favorite is unique per (user, book) pair.
package favorites

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navidh0/librarian/internal/entities"
)

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle flips the favorite state for a (user, book) pair. It returns true
// when the call created a favorite ("added") and false when it removed one
// ("removed").
//
// The check-then-act runs inside a transaction, and the create uses ON
// CONFLICT DO NOTHING so that two concurrent identical toggles cannot produce
// a duplicate pair: the existing row wins and the second create is a no-op.
func (r *Repository) Toggle(userID, bookID uint) (added bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Favorite
		findErr := tx.Where("user_id = ? AND book_id = ?", userID, bookID).
			First(&existing).Error

		if findErr == nil {
			added = false
			return tx.Delete(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		added = true
		favorite := entities.Favorite{UserID: userID, BookID: bookID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// IsFavorite reports whether the user has favorited the book.
func (r *Repository) IsFavorite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetBookIDsForUser returns the IDs of all books the user has favorited,
// for marking favorites in listings.
func (r *Repository) GetBookIDsForUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("book_id", &ids).Error
	return ids, err
}

// ListBooksForUser returns the user's favorited books with associations,
// ordered ascending by title like the main listing.
func (r *Repository) ListBooksForUser(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Model(&entities.Book{}).
		Joins("JOIN favorites ON favorites.book_id = books.id").
		Where("favorites.user_id = ?", userID).
		Preload("Publisher").
		Preload("Category").
		Preload("Authors").
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}
