// Package catalog implements the browse side of the test catalog: the
// public feed, direct lookups, per-creator listings and the custom-id
// allocator.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/quizdex/quizdex/internal/domain"
	"github.com/quizdex/quizdex/internal/domain/actor"
	domcat "github.com/quizdex/quizdex/internal/domain/catalog"
	"github.com/quizdex/quizdex/internal/domain/search/policy"
)

// Pagination bounds for the feed.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

var customIDPrefix = regexp.MustCompile(`^(M|YT)$`)

// Item is a test plus its resolved creator (nil when the profile is gone).
type Item struct {
	Test    domcat.Test
	Creator *domcat.Creator
}

// Page is one feed page.
type Page struct {
	Items   []Item
	Page    int
	HasMore bool
}

// Service coordinates catalog reads.
type Service struct {
	repo     Repository
	creators CreatorReader

	defaultPageSize int
	maxPageSize     int
}

// New creates a catalog service.
func New(repo Repository, creators CreatorReader) *Service {
	return &Service{
		repo:            repo,
		creators:        creators,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithPagination overrides the feed page size bounds.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Feed returns one page of the public feed, most recent first.
func (s *Service) Feed(ctx context.Context, page, limit int, text, categoryID string) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidArgument, page)
	}
	if limit < 0 {
		return Page{}, fmt.Errorf("%w: limit must be non-negative, got %d", domain.ErrInvalidArgument, limit)
	}
	if limit == 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	tests, err := s.repo.ListPublic(ctx, FeedFilter{
		Text:       text,
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return Page{}, fmt.Errorf("list public tests: %w", err)
	}

	items, err := s.enrich(ctx, tests)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Items:   items,
		Page:    page,
		HasMore: len(tests) == limit,
	}, nil
}

// Get fetches one test by UUID, then custom id, then slug, the same
// resolution order callers use in URLs.
func (s *Service) Get(ctx context.Context, ref string) (Item, error) {
	if ref == "" {
		return Item{}, fmt.Errorf("%w: test reference is required", domain.ErrInvalidArgument)
	}

	var (
		t   domcat.Test
		err error
	)
	if _, uuidErr := uuid.Parse(ref); uuidErr == nil {
		t, err = s.repo.GetByID(ctx, ref)
	} else {
		t, err = s.repo.GetByCustomID(ctx, ref)
		if err != nil && isNotFound(err) {
			t, err = s.repo.GetBySlug(ctx, ref)
		}
	}
	if err != nil {
		return Item{}, fmt.Errorf("get test %q: %w", ref, err)
	}

	items, err := s.enrich(ctx, []domcat.Test{t})
	if err != nil {
		return Item{}, err
	}
	return items[0], nil
}

// BySlug fetches one test by its URL slug.
func (s *Service) BySlug(ctx context.Context, slug string) (Item, error) {
	if slug == "" {
		return Item{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidArgument)
	}
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return Item{}, fmt.Errorf("get test by slug %q: %w", slug, err)
	}
	items, err := s.enrich(ctx, []domcat.Test{t})
	if err != nil {
		return Item{}, err
	}
	return items[0], nil
}

// UserTests lists one creator's tests as visible to the caller: all of
// them for the creator themselves or an admin, public ones otherwise.
func (s *Service) UserTests(ctx context.Context, caller actor.Actor, creatorID string) ([]Item, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", domain.ErrInvalidArgument)
	}
	tests, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list tests of %q: %w", creatorID, err)
	}

	visible := tests[:0]
	for i := range tests {
		if policy.Visible(&tests[i], caller, creatorID) {
			visible = append(visible, tests[i])
		}
	}
	return s.enrich(ctx, visible)
}

// NextCustomID allocates the next zero-padded custom id for a prefix
// (M or YT). Unparseable stored ids fall back to <prefix>001.
func (s *Service) NextCustomID(ctx context.Context, prefix string) (string, error) {
	if !customIDPrefix.MatchString(prefix) {
		return "", fmt.Errorf("%w: prefix must be M or YT, got %q", domain.ErrInvalidArgument, prefix)
	}

	last, err := s.repo.LastCustomID(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("last custom id for %q: %w", prefix, err)
	}
	if last == "" {
		return prefix + "001", nil
	}

	n, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		return prefix + "001", nil
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}

// enrich attaches creator profiles to tests.
func (s *Service) enrich(ctx context.Context, tests []domcat.Test) ([]Item, error) {
	seen := map[string]struct{}{}
	var ids []string
	for i := range tests {
		id := tests[i].CreatedBy()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	creators := map[string]domcat.Creator{}
	if len(ids) > 0 {
		var err error
		creators, err = s.creators.Creators(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve creators: %w", err)
		}
	}

	items := make([]Item, len(tests))
	for i := range tests {
		items[i] = Item{Test: tests[i]}
		if c, ok := creators[tests[i].CreatedBy()]; ok {
			cc := c
			items[i].Creator = &cc
		}
	}
	return items, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
