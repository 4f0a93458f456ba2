package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/navidh0/librarian/internal/entities"
)

var (
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrAuthorNotFound    = errors.New("author not found")
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Publisher{},
		&entities.Category{},
		&entities.Author{},
		&entities.Book{},
		&entities.Favorite{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Publishers ---

func (d *Database) CreatePublisher(name, address string) (*entities.Publisher, error) {
	publisher := &entities.Publisher{Name: name, Address: address}
	if err := d.DB.Create(publisher).Error; err != nil {
		return nil, err
	}
	return publisher, nil
}

func (d *Database) GetPublisherByID(id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	err := d.DB.First(&publisher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPublisherNotFound
	}
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (d *Database) GetAllPublishers() ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := d.DB.Order("name ASC").Find(&publishers).Error
	return publishers, err
}

// DeletePublisher removes a publisher and every book it published, along with
// the books' favorites and author links. The whole cascade runs in one
// transaction so a failure leaves the catalog untouched.
func (d *Database) DeletePublisher(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		var publisher entities.Publisher
		if err := tx.First(&publisher, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPublisherNotFound
			}
			return err
		}

		var bookIDs []uint
		if err := tx.Model(&entities.Book{}).
			Where("publisher_id = ?", id).
			Pluck("id", &bookIDs).Error; err != nil {
			return err
		}

		if len(bookIDs) > 0 {
			if err := tx.Where("book_id IN ?", bookIDs).Delete(&entities.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM book_authors WHERE book_id IN ?", bookIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", bookIDs).Delete(&entities.Book{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&publisher).Error
	})
}

// --- Authors ---

func (d *Database) CreateAuthor(fullName, bio string) (*entities.Author, error) {
	author := &entities.Author{FullName: fullName, Bio: bio}
	if err := d.DB.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

func (d *Database) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := d.DB.Order("full_name ASC").Find(&authors).Error
	return authors, err
}

// GetAuthorsByIDs resolves a set of author IDs. Returns ErrAuthorNotFound if
// any requested ID does not exist, so book forms can report the bad reference.
func (d *Database) GetAuthorsByIDs(ids []uint) ([]entities.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var authors []entities.Author
	if err := d.DB.Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, err
	}
	if len(authors) != len(uniqueIDs(ids)) {
		return nil, ErrAuthorNotFound
	}
	return authors, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
