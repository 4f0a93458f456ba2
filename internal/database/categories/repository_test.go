package categories

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/navidh0/librarian/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_categories_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Publisher{},
		&entities.Category{},
		&entities.Author{},
		&entities.Book{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_Create(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	category, err := repo.Create("Fiction", nil)

	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Fiction", category.Name)
	assert.Nil(t, category.ParentID)
}

func TestRepository_Create_WithParent(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	parent, err := repo.Create("Fiction", nil)
	require.NoError(t, err)

	child, err := repo.Create("Science Fiction", &parent.ID)

	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

func TestRepository_Create_EmptyName(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create("   ", nil)

	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRepository_Create_MissingParent(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	missing := uint(999)
	_, err := repo.Create("Orphan", &missing)

	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestRepository_GetAll_SortedByName(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create("Thriller", nil)
	require.NoError(t, err)
	_, err = repo.Create("Fantasy", nil)
	require.NoError(t, err)
	_, err = repo.Create("Mystery", nil)
	require.NoError(t, err)

	categories, err := repo.GetAll()

	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Fantasy", categories[0].Name)
	assert.Equal(t, "Mystery", categories[1].Name)
	assert.Equal(t, "Thriller", categories[2].Name)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByID(999)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepository_Delete_DetachesChildrenAndBooks(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	parent, err := repo.Create("Fiction", nil)
	require.NoError(t, err)
	child, err := repo.Create("Science Fiction", &parent.ID)
	require.NoError(t, err)

	publisher := &entities.Publisher{Name: "Penguin Books"}
	require.NoError(t, db.Create(publisher).Error)
	book := &entities.Book{
		Title:              "Foundation",
		ISBN:               "9780000000001",
		Price:              12,
		PublishDate:        time.Date(1951, 6, 1, 0, 0, 0, 0, time.UTC),
		AvailabilityStatus: entities.AvailabilityAvailable,
		PublisherID:        publisher.ID,
		CategoryID:         &parent.ID,
	}
	require.NoError(t, db.Create(book).Error)

	require.NoError(t, repo.Delete(parent.ID))

	_, err = repo.GetByID(parent.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	// Child survives without a parent
	gotChild, err := repo.GetByID(child.ID)
	require.NoError(t, err)
	assert.Nil(t, gotChild.ParentID)

	// Book survives without a category
	var gotBook entities.Book
	require.NoError(t, db.First(&gotBook, book.ID).Error)
	assert.Nil(t, gotBook.CategoryID)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(999)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
