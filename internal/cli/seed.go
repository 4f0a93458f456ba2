package cli

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/navidh0/librarian/internal/auth"
	"github.com/navidh0/librarian/internal/config"
	"github.com/navidh0/librarian/internal/database"
	"github.com/navidh0/librarian/internal/database/books"
	"github.com/navidh0/librarian/internal/database/categories"
	"github.com/navidh0/librarian/internal/entities"
)

// SeedCommand populates the catalog with sample data and can provision
// an initial admin account.
type SeedCommand struct {
	DatabasePath  string
	BookCount     int
	AdminUser     string
	AdminPassword string
	Verbose       bool
}

// NewSeedCommand creates a new SeedCommand
func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")
	fs.IntVar(&cmd.BookCount, "books", 100, "Number of sample books to create")
	fs.StringVar(&cmd.AdminUser, "admin-user", "", "Username for an admin account to create")
	fs.StringVar(&cmd.AdminPassword, "admin-password", "", "Password for the admin account")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log every created book")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors, categories, publishers and books.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -books 20\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -admin-user admin -admin-password changeme\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.AdminUser != "" && cmd.AdminPassword == "" {
		return fmt.Errorf("-admin-password is required when -admin-user is set")
	}

	return nil
}

var sampleAuthors = []string{
	"J.K. Rowling", "George Orwell", "Agatha Christie", "Isaac Asimov",
	"Haruki Murakami", "Terry Pratchett", "Dan Brown", "Suzanne Collins",
	"Stephen King", "Neil Gaiman",
}

var sampleCategories = []string{
	"Fiction", "Mystery", "Science Fiction", "Fantasy", "Non-Fiction", "Thriller",
}

var samplePublishers = []string{
	"Penguin Books", "Bloomsbury", "HarperCollins", "Random House", "Macmillan", "Simon & Schuster",
}

var sampleTitles = []string{
	"Harry Potter and the Sorcerer's Stone", "1984", "Murder on the Orient Express",
	"Foundation", "Kafka on the Shore", "The Hobbit", "Angels & Demons",
	"The Hunger Games", "The Shining", "American Gods", "Harry Potter and the Chamber of Secrets",
	"Animal Farm", "Death on the Nile", "I, Robot", "Norwegian Wood", "Good Omens",
	"Inferno", "Catching Fire", "It", "Coraline",
}

// Run executes the seed command
func (cmd *SeedCommand) Run() error {
	fmt.Println("📚 Librarian Seed")
	fmt.Println("=================")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Printf("📁 Database: %s\n", cmd.DatabasePath)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authors := make([]entities.Author, 0, len(sampleAuthors))
	for _, name := range sampleAuthors {
		author, err := db.CreateAuthor(name, "")
		if err != nil {
			return fmt.Errorf("failed to create author %q: %w", name, err)
		}
		authors = append(authors, *author)
	}
	fmt.Printf("✅ Created %d authors\n", len(authors))

	categoryRepo := categories.NewRepository(db.DB)
	cats := make([]entities.Category, 0, len(sampleCategories))
	for _, name := range sampleCategories {
		category, err := categoryRepo.Create(name, nil)
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		cats = append(cats, *category)
	}
	fmt.Printf("✅ Created %d categories\n", len(cats))

	pubs := make([]entities.Publisher, 0, len(samplePublishers))
	for _, name := range samplePublishers {
		publisher, err := db.CreatePublisher(name, "")
		if err != nil {
			return fmt.Errorf("failed to create publisher %q: %w", name, err)
		}
		pubs = append(pubs, *publisher)
	}
	fmt.Printf("✅ Created %d publishers\n", len(pubs))

	bookRepo := books.NewRepository(db.DB)
	seenISBNs := make(map[string]bool)
	for i := 0; i < cmd.BookCount; i++ {
		title := fmt.Sprintf("%s #%d", sampleTitles[rng.Intn(len(sampleTitles))], i+1)

		numAuthors := 1 + rng.Intn(2)
		perm := rng.Perm(len(authors))
		bookAuthors := make([]entities.Author, 0, numAuthors)
		for _, idx := range perm[:numAuthors] {
			bookAuthors = append(bookAuthors, authors[idx])
		}

		categoryID := cats[rng.Intn(len(cats))].ID
		availability := entities.AvailabilityAvailable
		if rng.Intn(2) == 1 {
			availability = entities.AvailabilityUnavailable
		}

		year := 1930 + rng.Intn(91)
		month := time.Month(1 + rng.Intn(12))
		day := 1 + rng.Intn(28)

		book := &entities.Book{
			Title:              title,
			ISBN:               generateISBN(rng, seenISBNs),
			Price:              float64(1000+rng.Intn(4001)) / 100,
			PublishDate:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			AvailabilityStatus: availability,
			PublisherID:        pubs[rng.Intn(len(pubs))].ID,
			CategoryID:         &categoryID,
			Authors:            bookAuthors,
		}

		if err := bookRepo.Create(book); err != nil {
			return fmt.Errorf("failed to create book %q: %w", title, err)
		}

		if cmd.Verbose {
			fmt.Printf("  📖 %s (%s)\n", book.Title, book.ISBN)
		}
	}
	fmt.Printf("✅ Created %d books\n", cmd.BookCount)

	if cmd.AdminUser != "" {
		cfg := config.NewConfig()
		service := auth.NewService(db.DB, cfg.Auth)
		user, err := service.CreateUser(cmd.AdminUser, "Administrator", cmd.AdminPassword, entities.UserRoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		fmt.Printf("✅ Created admin user %q (id=%d)\n", user.Username, user.ID)
	}

	fmt.Println("\n✅ Seeding complete!")
	return nil
}

// generateISBN returns a random 13-digit ISBN not present in seen.
func generateISBN(rng *rand.Rand, seen map[string]bool) string {
	for {
		digits := make([]byte, 13)
		for i := range digits {
			digits[i] = byte('0' + rng.Intn(10))
		}
		candidate := string(digits)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}
