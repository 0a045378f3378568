package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/interfaces"
	"github.com/Aka-Ayaan/courtify/internal/repository"
	"github.com/Aka-Ayaan/courtify/pkg/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	imageMaxWidth = 1600
	imageQuality  = 85
)

type CatalogService interface {
	ListArenas(ctx context.Context) ([]dto.ArenaSummary, error)
	ListOwnerArenas(ctx context.Context, ownerID uint) ([]dto.ArenaSummary, error)
	GetArenaDetail(ctx context.Context, arenaID uint) (*dto.ArenaDetail, error)
	CreateArena(ctx context.Context, ownerID uint, input dto.CreateArenaRequest) (*dto.ArenaDetail, error)
	AddCourt(ctx context.Context, ownerID, arenaID uint, input dto.AddCourtRequest) (*dto.CourtResponse, error)
	AddArenaImage(ctx context.Context, ownerID, arenaID uint, data []byte) (*dto.ArenaImageResponse, error)
	ListCourtTypes(ctx context.Context) ([]dto.CourtTypeResponse, error)
	ArenaTimeSlots(ctx context.Context, arenaID uint) (*dto.TimeSlotsResponse, error)
}

type catalogService struct {
	arenaRepo   repository.ArenaRepository
	courtRepo   repository.CourtRepository
	accountRepo repository.AccountRepository
	uploader    interfaces.Uploader
}

func NewCatalogService(
	arenaRepo repository.ArenaRepository,
	courtRepo repository.CourtRepository,
	accountRepo repository.AccountRepository,
	uploader interfaces.Uploader,
) CatalogService {
	return &catalogService{
		arenaRepo:   arenaRepo,
		courtRepo:   courtRepo,
		accountRepo: accountRepo,
		uploader:    uploader,
	}
}

func (s *catalogService) ListArenas(ctx context.Context) ([]dto.ArenaSummary, error) {
	return s.listArenas(ctx, nil)
}

func (s *catalogService) ListOwnerArenas(ctx context.Context, ownerID uint) ([]dto.ArenaSummary, error) {
	return s.listArenas(ctx, &ownerID)
}

func (s *catalogService) listArenas(ctx context.Context, ownerID *uint) ([]dto.ArenaSummary, error) {
	rows, err := s.arenaRepo.ListArenas(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ArenaSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ArenaSummary{
			ID:           r.ID,
			Name:         r.Name,
			Location:     r.City,
			City:         r.City,
			Address:      r.Address,
			PricePerHour: r.PricePerHour,
			Availability: r.Availability,
			Rating:       r.Rating,
			Image:        r.Image,
		})
	}
	return out, nil
}

func (s *catalogService) GetArenaDetail(ctx context.Context, arenaID uint) (*dto.ArenaDetail, error) {
	arena, err := s.arenaRepo.FindArenaByID(ctx, arenaID)
	if err != nil {
		return nil, err
	}

	images, err := s.arenaRepo.ListImagePaths(ctx, arena.ID)
	if err != nil {
		return nil, err
	}

	courts, err := s.arenaRepo.ListCourtsWithType(ctx, arena.ID)
	if err != nil {
		return nil, err
	}

	return &dto.ArenaDetail{
		ID:           arena.ID,
		Name:         arena.Name,
		Address:      arena.Address,
		City:         arena.City,
		Rating:       arena.Rating,
		PricePerHour: arena.PricePerHour,
		Availability: arena.Availability,
		Timing:       arena.Timing,
		Amenities:    nonNil(arena.Amenities),
		Description:  arena.Description,
		Rules:        nonNil(arena.Rules),
		Images:       nonNil(images),
		Courts:       groupCourts(courts),
	}, nil
}

func (s *catalogService) CreateArena(ctx context.Context, ownerID uint, input dto.CreateArenaRequest) (*dto.ArenaDetail, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	if name == "" || city == "" {
		return nil, domain.NewError(domain.KindValidation, "Name and city required")
	}
	if input.PricePerHour < 0 {
		return nil, domain.NewError(domain.KindValidation, "pricePerHour must not be negative")
	}

	if err := s.ensureOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	arena := &domain.Arena{
		OwnerID:      ownerID,
		Name:         name,
		City:         city,
		Address:      strings.TrimSpace(input.Address),
		PricePerHour: input.PricePerHour,
		Availability: strings.TrimSpace(input.Availability),
		Timing:       strings.TrimSpace(input.Timing),
		Description:  input.Description,
		Amenities:    cleanList(input.Amenities),
		Rules:        cleanList(input.Rules),
	}
	if err := s.arenaRepo.CreateArena(ctx, arena); err != nil {
		return nil, err
	}
	log.Infof("arena created id=%d owner=%d", arena.ID, ownerID)

	return s.GetArenaDetail(ctx, arena.ID)
}

func (s *catalogService) AddCourt(ctx context.Context, ownerID, arenaID uint, input dto.AddCourtRequest) (*dto.CourtResponse, error) {
	typeName := strings.TrimSpace(input.CourtType)
	name := strings.TrimSpace(input.Name)
	if typeName == "" || name == "" {
		return nil, domain.NewError(domain.KindValidation, "courtType and name required")
	}

	arena, err := s.ownedArena(ctx, ownerID, arenaID)
	if err != nil {
		return nil, err
	}

	courtType, err := s.courtRepo.FindOrCreateType(ctx, typeName)
	if err != nil {
		return nil, err
	}

	court := &domain.Court{
		ArenaID:     arena.ID,
		CourtTypeID: courtType.ID,
		Name:        name,
	}
	if err := s.courtRepo.CreateCourt(ctx, court); err != nil {
		return nil, err
	}

	return &dto.CourtResponse{
		ID:        court.ID,
		ArenaID:   court.ArenaID,
		CourtType: courtType.TypeName,
		Name:      court.Name,
	}, nil
}

func (s *catalogService) AddArenaImage(ctx context.Context, ownerID, arenaID uint, data []byte) (*dto.ArenaImageResponse, error) {
	arena, err := s.ownedArena(ctx, ownerID, arenaID)
	if err != nil {
		return nil, err
	}

	jpg, err := utils.NormalizeToJPG(data, imageMaxWidth, imageQuality)
	if err != nil {
		return nil, domain.WrapError(domain.KindValidation, "Unsupported or corrupt image", err)
	}

	folder := fmt.Sprintf("arenas/%d", arena.ID)
	path, err := s.uploader.UploadBytes(ctx, folder, uuid.NewString(), jpg)
	if err != nil {
		log.Errorf("upload arena image arena=%d: %v", arena.ID, err)
		return nil, domain.WrapError(domain.KindStorage, "Image upload failed", err)
	}

	image := &domain.ArenaImage{ArenaID: arena.ID, ImagePath: path}
	if err := s.arenaRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}

	return &dto.ArenaImageResponse{
		ID:        image.ID,
		ArenaID:   image.ArenaID,
		ImagePath: image.ImagePath,
	}, nil
}

func (s *catalogService) ListCourtTypes(ctx context.Context) ([]dto.CourtTypeResponse, error) {
	types, err := s.courtRepo.ListCourtTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourtTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.CourtTypeResponse{ID: t.ID, TypeName: t.TypeName})
	}
	return out, nil
}

func (s *catalogService) ArenaTimeSlots(ctx context.Context, arenaID uint) (*dto.TimeSlotsResponse, error) {
	arena, err := s.arenaRepo.FindArenaByID(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	return &dto.TimeSlotsResponse{
		Timing: arena.Timing,
		Slots:  GenerateTimeSlots(arena.Timing),
	}, nil
}

func (s *catalogService) ensureOwner(ctx context.Context, ownerID uint) error {
	account, err := s.accountRepo.FindAccountByID(ctx, ownerID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.WrapError(domain.KindForbidden, "Arena owner account required", err)
		}
		return err
	}
	if account.UserType != domain.UserTypeOwner {
		return domain.NewError(domain.KindForbidden, "Arena owner account required")
	}
	return nil
}

func (s *catalogService) ownedArena(ctx context.Context, ownerID, arenaID uint) (*domain.Arena, error) {
	arena, err := s.arenaRepo.FindArenaByID(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	if arena.OwnerID != ownerID {
		return nil, domain.NewError(domain.KindForbidden, "You do not own this arena")
	}
	return arena, nil
}

// groupCourts keys court names by type, keeping the row order within each type.
func groupCourts(rows []domain.CourtRow) map[string][]string {
	grouped := make(map[string][]string)
	for _, r := range rows {
		grouped[r.TypeName] = append(grouped[r.TypeName], r.Name)
	}
	return grouped
}

func cleanList(in []string) domain.StringList {
	out := domain.StringList{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
