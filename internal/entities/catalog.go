package entities

import (
	"time"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// Valid reports whether the value is one of the known availability states.
func (a Availability) Valid() bool {
	return a == AvailabilityAvailable || a == AvailabilityUnavailable
}

type Publisher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Books     []Book    `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a self-referential tree. Deleting a parent nulls the children's
// ParentID rather than cascading.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200" json:"name"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"index;size:200" json:"full_name"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	Books     []Book    `gorm:"many2many:book_authors;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Title              string       `gorm:"index;size:255" json:"title"`
	ISBN               string       `gorm:"uniqueIndex;size:13" json:"isbn"`
	Price              float64      `gorm:"type:decimal(8,2)" json:"price"`
	PublishDate        time.Time    `gorm:"type:date" json:"publish_date"`
	AvailabilityStatus Availability `gorm:"size:20" json:"availability_status"`
	PublisherID        uint         `gorm:"index;not null" json:"publisher_id"`
	Publisher          Publisher    `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	CategoryID         *uint        `gorm:"index" json:"category_id,omitempty"`
	Category           *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Authors            []Author     `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Favorite is a per-user bookmark on a book. At most one row exists per
// (user, book) pair; the composite unique index backs the toggle operation.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_favorites_user_book" json:"book_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Publisher) TableName() string {
	return "publishers"
}

func (Category) TableName() string {
	return "categories"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (Favorite) TableName() string {
	return "favorites"
}
