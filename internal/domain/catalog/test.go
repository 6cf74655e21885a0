package catalog

import (
	"fmt"
	"strings"
	"time"
)

// MaxTitleLength bounds test titles; the original store enforces the same limit.
const MaxTitleLength = 512

// Difficulty is the declared difficulty of a test.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Visibility is the declared audience of a test.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

// Category is a catalog category associated with tests via a join relation.
type Category struct {
	id   string
	name string
}

// NewCategory creates a Category.
func NewCategory(id, name string) Category {
	return Category{id: id, name: name}
}

// ID returns the category identifier.
func (c *Category) ID() string { return c.id }

// Name returns the category display name.
func (c *Category) Name() string { return c.name }

// Creator is the public profile of a test author, used for result enrichment.
type Creator struct {
	ID       string
	Name     string
	Avatar   string
	Verified bool
}

// Test is a catalog entry (immutable value object). Tests are read-only
// inputs to search; the service never writes them back.
type Test struct {
	id             string
	title          string
	description    string
	customID       string
	slug           string
	coverImage     string
	totalQuestions int
	duration       int
	testType       string
	difficulty     Difficulty
	createdAt      time.Time
	createdBy      string
	visibility     Visibility
	isPublic       bool
	tags           []string
	categories     []Category
}

// New validates and creates a Test.
func New(id, title string, createdAt time.Time, createdBy string) (Test, error) {
	if id == "" {
		return Test{}, fmt.Errorf("test ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return Test{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Test{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if createdAt.IsZero() {
		return Test{}, fmt.Errorf("createdAt is required")
	}
	return Test{id: id, title: title, createdAt: createdAt, createdBy: createdBy}, nil
}

// Reconstruct creates a Test without validation (storage hydration).
func Reconstruct(
	id, title, description, customID, slug, coverImage string,
	totalQuestions, duration int,
	testType string, difficulty Difficulty,
	createdAt time.Time, createdBy string,
	visibility Visibility, isPublic bool,
	tags []string,
) Test {
	return Test{
		id: id, title: title, description: description,
		customID: customID, slug: slug, coverImage: coverImage,
		totalQuestions: totalQuestions, duration: duration,
		testType: testType, difficulty: difficulty,
		createdAt: createdAt, createdBy: createdBy,
		visibility: visibility, isPublic: isPublic,
		tags: tags,
	}
}

// ID returns the test identifier.
func (t *Test) ID() string { return t.id }

// Title returns the test title.
func (t *Test) Title() string { return t.title }

// Description returns the free-text description.
func (t *Test) Description() string { return t.description }

// CustomID returns the human-assigned identifier (e.g. "M001").
func (t *Test) CustomID() string { return t.customID }

// Slug returns the URL slug.
func (t *Test) Slug() string { return t.slug }

// CoverImage returns the cover image reference.
func (t *Test) CoverImage() string { return t.coverImage }

// TotalQuestions returns the question count.
func (t *Test) TotalQuestions() int { return t.totalQuestions }

// Duration returns the allotted duration in minutes.
func (t *Test) Duration() int { return t.duration }

// TestType returns the test type.
func (t *Test) TestType() string { return t.testType }

// Difficulty returns the difficulty level.
func (t *Test) Difficulty() Difficulty { return t.difficulty }

// CreatedAt returns the creation timestamp.
func (t *Test) CreatedAt() time.Time { return t.createdAt }

// CreatedBy returns the owner identifier.
func (t *Test) CreatedBy() string { return t.createdBy }

// Visibility returns the declared visibility.
func (t *Test) Visibility() Visibility { return t.visibility }

// IsPublic reports whether the test is publicly listed.
func (t *Test) IsPublic() bool { return t.isPublic }

// Tags returns the free-text tags.
func (t *Test) Tags() []string { return t.tags }

// Categories returns the associated categories.
func (t *Test) Categories() []Category { return t.categories }

// WithCategories returns a copy with the given categories attached.
func (t *Test) WithCategories(cats []Category) Test {
	c := *t
	c.categories = cats
	return c
}
