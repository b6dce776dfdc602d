// Package catalog serves item and profession reference data. The catalog is
// authored content, immutable while the engine runs, so lookups sit behind an
// LRU cache that never needs invalidation.
package catalog

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/emberworks/ironhold/internal/domain"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/repository"
)

// cacheSize bounds each lookup cache. The full catalog fits comfortably.
const cacheSize = 512

// Service defines the interface for catalog operations
type Service interface {
	GetItemByID(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetProfessionByID(ctx context.Context, professionID int) (*domain.Profession, error)
	ListProfessions(ctx context.Context) ([]domain.Profession, error)
}

type service struct {
	repo        repository.Catalog
	itemsByID   *lru.Cache[int, *domain.Item]
	itemsByName *lru.Cache[string, *domain.Item]
	professions *lru.Cache[int, *domain.Profession]
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog) (Service, error) {
	byID, err := lru.New[int, *domain.Item](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create item cache: %w", err)
	}
	byName, err := lru.New[string, *domain.Item](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create item name cache: %w", err)
	}
	profs, err := lru.New[int, *domain.Profession](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profession cache: %w", err)
	}
	return &service{
		repo:        repo,
		itemsByID:   byID,
		itemsByName: byName,
		professions: profs,
	}, nil
}

func (s *service) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	if item, ok := s.itemsByID.Get(itemID); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
	}

	s.cacheItem(item)
	return item, nil
}

func (s *service) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	if item, ok := s.itemsByName.Get(name); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
	}

	s.cacheItem(item)
	return item, nil
}

// CreateItem adds a new catalog entry. Admin-only surface; the created item
// is cached immediately so the next lookup does not hit the store.
func (s *service) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	if item.Name == "" || !item.Category.Valid() {
		return nil, fmt.Errorf("%w: item requires a name and a known category", domain.ErrInvalidInput)
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.cacheItem(created)
	log.Info("Catalog item created", "item", created.Name, "category", created.Category)
	return created, nil
}

func (s *service) GetProfessionByID(ctx context.Context, professionID int) (*domain.Profession, error) {
	if p, ok := s.professions.Get(professionID); ok {
		return p, nil
	}

	p, err := s.repo.GetProfessionByID(ctx, professionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profession: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: profession id %d", domain.ErrUserNotFound, professionID)
	}

	s.professions.Add(p.ID, p)
	return p, nil
}

func (s *service) ListProfessions(ctx context.Context) ([]domain.Profession, error) {
	profs, err := s.repo.ListProfessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}
	for i := range profs {
		p := profs[i]
		s.professions.Add(p.ID, &p)
	}
	return profs, nil
}

func (s *service) cacheItem(item *domain.Item) {
	s.itemsByID.Add(item.ID, item)
	s.itemsByName.Add(item.Name, item)
}
