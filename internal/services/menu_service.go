package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"tovio-backoffice/internal/caching"
	"tovio-backoffice/internal/models"
	"tovio-backoffice/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MenuSnapshotFunc receives the full catalog after every mutation.
type MenuSnapshotFunc func(items []*models.MenuItem)

type MenuService interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, update *models.MenuItemUpdate) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.MenuItem, error)
	// Subscribe registers a callback that is invoked with the full catalog
	// snapshot after every mutation. The returned func removes the
	// registration; callers that drop it leak the callback for the life of
	// the process.
	Subscribe(fn MenuSnapshotFunc) (unsubscribe func())
}

const menuCacheTTL = 15 * time.Minute

type menuService struct {
	menuRepo     repositories.MenuRepository
	cacheService caching.CacheService
	logger       zerolog.Logger

	mu          sync.Mutex
	subscribers map[int]MenuSnapshotFunc
	nextSubID   int
}

func NewMenuService(menuRepo repositories.MenuRepository, cacheService caching.CacheService, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo:     menuRepo,
		cacheService: cacheService,
		logger:       logger,
		subscribers:  make(map[int]MenuSnapshotFunc),
	}
}

func (s *menuService) Create(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	item.ID = uuid.New()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

func (s *menuService) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(ctx, id)
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, update *models.MenuItemUpdate) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(item)
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.afterMutation(ctx)
	return item, nil
}

func (s *menuService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx)
	return nil
}

func (s *menuService) List(ctx context.Context) ([]*models.MenuItem, error) {
	if cached, err := s.cacheService.GetMenuSnapshot(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors shouldn't fail the read
		s.logger.Warn().Err(err).Msg("menu snapshot cache read failed")
	}

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetMenuSnapshot(ctx, items, menuCacheTTL); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Msg("failed to cache menu snapshot")
	}
	return items, nil
}

func (s *menuService) Subscribe(fn MenuSnapshotFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
		})
	}
}

// afterMutation invalidates the cached snapshot and pushes the fresh catalog
// to every subscriber. Notification failures never surface to the writer.
func (s *menuService) afterMutation(ctx context.Context) {
	if err := s.cacheService.InvalidateMenuSnapshot(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate menu snapshot cache")
	}

	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	fns := make([]MenuSnapshotFunc, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load menu snapshot for subscribers")
		return
	}
	for _, fn := range fns {
		fn(items)
	}
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" {
		return errors.New("menu item name is required")
	}
	if item.Price <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}
