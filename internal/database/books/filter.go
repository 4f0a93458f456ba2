// Package books provides database operations for the book catalog, including
// the composed search filter used by both the listing and bulk-delete
// endpoints.
package books

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/navidh0/librarian/internal/entities"
)

// Filter holds the optional search dimensions for book queries. A nil (or
// zero-value) dimension contributes no predicate; all present dimensions are
// ANDed together.
//
// Invalid parameter values are treated as absent rather than rejected. That
// permissive policy is intentional and load-bearing: search and bulk-delete
// callers expect a malformed min_price to behave exactly like an omitted one.
// Keep the parse-or-skip helpers below as the single place implementing it.
type Filter struct {
	Title        string
	Author       string
	CategoryID   *uint
	Availability *entities.Availability
	MinPrice     *float64
	MaxPrice     *float64

	// PublishDate is used by the listing endpoint (exact match);
	// StartDate/EndDate by bulk delete (inclusive range). The two endpoints
	// deliberately use different date shapes.
	PublishDate *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
}

// ParseListFilter builds a Filter from listing query parameters.
func ParseListFilter(values url.Values) Filter {
	return Filter{
		Title:        values.Get("title"),
		Author:       values.Get("author"),
		CategoryID:   parseCategoryID(values.Get("category")),
		Availability: parseAvailability(values.Get("availability")),
		MinPrice:     parsePrice(values.Get("min_price")),
		MaxPrice:     parsePrice(values.Get("max_price")),
		PublishDate:  parseDate(values.Get("publish_date")),
	}
}

// ParseBulkDeleteFilter builds a Filter from bulk-delete query parameters.
// Same conventions as the listing filter, but the date dimension is an
// inclusive start/end range instead of a single exact date.
func ParseBulkDeleteFilter(values url.Values) Filter {
	return Filter{
		Title:        values.Get("title"),
		Author:       values.Get("author"),
		CategoryID:   parseCategoryID(values.Get("category")),
		Availability: parseAvailability(values.Get("availability")),
		MinPrice:     parsePrice(values.Get("min_price")),
		MaxPrice:     parsePrice(values.Get("max_price")),
		StartDate:    parseDate(values.Get("start_date")),
		EndDate:      parseDate(values.Get("end_date")),
	}
}

// IsEmpty reports whether no dimension is active, i.e. the filter matches
// every book.
func (f Filter) IsEmpty() bool {
	return f.Title == "" && f.Author == "" && f.CategoryID == nil &&
		f.Availability == nil && f.MinPrice == nil && f.MaxPrice == nil &&
		f.PublishDate == nil && f.StartDate == nil && f.EndDate == nil
}

// apply composes the active predicates onto a book query. The author
// substring filter joins through book_authors, so the select is made DISTINCT
// to deduplicate books matched through multiple authors.
func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	if f.Title != "" {
		tx = tx.Where(`LOWER(books.title) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(f.Title)+"%")
	}
	if f.Author != "" {
		tx = tx.
			Joins("JOIN book_authors ON book_authors.book_id = books.id").
			Joins("JOIN authors ON authors.id = book_authors.author_id").
			Where(`LOWER(authors.full_name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(f.Author)+"%").
			Distinct("books.*")
	}
	if f.CategoryID != nil {
		tx = tx.Where("books.category_id = ?", *f.CategoryID)
	}
	if f.Availability != nil {
		tx = tx.Where("books.availability_status = ?", *f.Availability)
	}
	if f.MinPrice != nil {
		tx = tx.Where("books.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("books.price <= ?", *f.MaxPrice)
	}
	if f.PublishDate != nil {
		tx = tx.Where("books.publish_date = ?", *f.PublishDate)
	}
	if f.StartDate != nil {
		tx = tx.Where("books.publish_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		tx = tx.Where("books.publish_date <= ?", *f.EndDate)
	}
	return tx
}

// escapeLike neutralizes LIKE metacharacters so search input matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// --- parse-or-skip helpers ---
//
// Each helper returns nil for absent, empty, or syntactically invalid input.
// None of them ever surfaces an error to the caller.

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil
	}
	return &price
}

func parseCategoryID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	categoryID := uint(id)
	return &categoryID
}

func parseAvailability(raw string) *entities.Availability {
	status := entities.Availability(raw)
	if !status.Valid() {
		return nil
	}
	return &status
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &date
}
