package repository

import (
	"context"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"gorm.io/gorm"
)

type ArenaRepository interface {
	ListArenas(ctx context.Context, ownerID *uint) ([]domain.ArenaListing, error)
	FindArenaByID(ctx context.Context, id uint) (*domain.Arena, error)
	ListImagePaths(ctx context.Context, arenaID uint) ([]string, error)
	ListCourtsWithType(ctx context.Context, arenaID uint) ([]domain.CourtRow, error)
	CreateArena(ctx context.Context, arena *domain.Arena) error
	AddImage(ctx context.Context, image *domain.ArenaImage) error
}

type arenaRepository struct {
	db *gorm.DB
}

func NewArenaRepository(db *gorm.DB) ArenaRepository {
	return &arenaRepository{db: db}
}

// ListArenas returns arenas newest first, each with the path of its lowest-id image.
// A nil ownerID lists every arena.
func (r *arenaRepository) ListArenas(ctx context.Context, ownerID *uint) ([]domain.ArenaListing, error) {
	primaryImage := r.db.Model(&domain.ArenaImage{}).
		Select("arena_images.image_path").
		Where("arena_images.arena_id = arenas.id").
		Order("arena_images.id ASC").
		Limit(1)

	q := r.db.WithContext(ctx).Model(&domain.Arena{}).
		Select(`arenas.id, arenas.name, arenas.city, arenas.address,
			arenas.price_per_hour, arenas.availability, arenas.rating, (?) AS image`, primaryImage)
	if ownerID != nil {
		q = q.Where("arenas.owner_id = ?", *ownerID)
	}

	rows := []domain.ArenaListing{}
	if err := q.Order("arenas.id DESC").Scan(&rows).Error; err != nil {
		return nil, storageError("list arenas", err)
	}
	return rows, nil
}

func (r *arenaRepository) FindArenaByID(ctx context.Context, id uint) (*domain.Arena, error) {
	arena := &domain.Arena{}

	if err := r.db.WithContext(ctx).First(arena, id).Error; err != nil {
		return nil, notFoundOr("find arena", "Arena not found", err)
	}
	return arena, nil
}

func (r *arenaRepository) ListImagePaths(ctx context.Context, arenaID uint) ([]string, error) {
	paths := []string{}

	err := r.db.WithContext(ctx).Model(&domain.ArenaImage{}).
		Where("arena_id = ?", arenaID).
		Order("id ASC").
		Pluck("image_path", &paths).Error
	if err != nil {
		return nil, storageError("list arena images", err)
	}
	return paths, nil
}

func (r *arenaRepository) ListCourtsWithType(ctx context.Context, arenaID uint) ([]domain.CourtRow, error) {
	rows := []domain.CourtRow{}

	err := r.db.WithContext(ctx).
		Table("courts AS c").
		Select("c.id AS id, c.name AS name, ct.type_name AS type_name").
		Joins("JOIN court_types ct ON ct.id = c.court_type_id").
		Where("c.arena_id = ?", arenaID).
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("list courts", err)
	}
	return rows, nil
}

func (r *arenaRepository) CreateArena(ctx context.Context, arena *domain.Arena) error {
	if err := r.db.WithContext(ctx).Create(arena).Error; err != nil {
		return storageError("create arena", err)
	}
	return nil
}

func (r *arenaRepository) AddImage(ctx context.Context, image *domain.ArenaImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return storageError("add arena image", err)
	}
	return nil
}
