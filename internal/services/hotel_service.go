package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/staylist/staylist-backend/internal/metrics"
	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
)

// HotelPatch is the allow-listed update set for hotels.
type HotelPatch struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	CostPerNight   *float64 `json:"costPerNight"`
	AvailableRooms *int     `json:"availableRooms"`
	Image          *string  `json:"image"`
	AverageRating  *float64 `json:"averageRating"`
}

// HotelPage is the paginated list result.
type HotelPage struct {
	Hotels      []models.Hotel `json:"hotels"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Limit       int            `json:"limit"`
}

type HotelService struct {
	hotels repo.Hotels
	users  repo.Users
}

func NewHotelService(hotels repo.Hotels, users repo.Users) *HotelService {
	return &HotelService{hotels: hotels, users: users}
}

func (s *HotelService) Create(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	if err := h.Validate(); err != nil {
		return models.Hotel{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	// Existence check only; not transactional with the insert.
	ok, err := s.users.Exists(ctx, h.UserID)
	if err != nil {
		return models.Hotel{}, err
	}
	if !ok {
		return models.Hotel{}, fmt.Errorf("%w: userId does not reference an existing user", ErrValidation)
	}

	saved, err := s.hotels.Create(ctx, h)
	if err != nil {
		return models.Hotel{}, err
	}
	metrics.HotelsCreatedTotal.Inc()
	return saved, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (models.HotelWithOwner, error) {
	return s.hotels.GetWithOwner(ctx, id)
}

func (s *HotelService) List(ctx context.Context, page, limit int) (HotelPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	hotels, err := s.hotels.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return HotelPage{}, err
	}
	count, err := s.hotels.Count(ctx)
	if err != nil {
		return HotelPage{}, err
	}

	return HotelPage{
		Hotels:      hotels,
		TotalPages:  (count + limit - 1) / limit,
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

func (s *HotelService) Update(ctx context.Context, id string, p HotelPatch) (models.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return models.Hotel{}, err
	}

	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.CostPerNight != nil {
		h.CostPerNight = *p.CostPerNight
	}
	if p.AvailableRooms != nil {
		h.AvailableRooms = *p.AvailableRooms
	}
	if p.Image != nil {
		h.Image = *p.Image
	}
	if p.AverageRating != nil {
		h.AverageRating = *p.AverageRating
	}
	if err := h.Validate(); err != nil {
		return models.Hotel{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	return s.hotels.Update(ctx, h)
}

func (s *HotelService) Delete(ctx context.Context, id string) error {
	return s.hotels.Delete(ctx, id)
}

func (s *HotelService) Search(ctx context.Context, query string) ([]models.Hotel, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query parameter is required", ErrValidation)
	}
	return s.hotels.Search(ctx, query)
}
