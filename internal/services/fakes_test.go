package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
)

// In-memory repositories for service tests.

type fakeUsers struct {
	seq   int
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, ex := range f.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return models.User{}, repo.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) GetByRefreshToken(_ context.Context, token string) (models.User, error) {
	for _, u := range f.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			return *u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Search(_ context.Context, query string) ([]models.User, error) {
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u models.User) (models.User, error) {
	ex, ok := f.users[u.ID]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	u.RefreshToken = ex.RefreshToken
	u.UpdatedAt = time.Now()
	cp := u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUsers) SetRefreshToken(_ context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshToken = &token
	return nil
}

type fakeHotels struct {
	seq    int
	hotels []*models.Hotel
	owners *fakeUsers
}

func newFakeHotels(owners *fakeUsers) *fakeHotels {
	return &fakeHotels{owners: owners}
}

func (f *fakeHotels) Create(_ context.Context, h models.Hotel) (models.Hotel, error) {
	f.seq++
	h.ID = fmt.Sprintf("hotel-%d", f.seq)
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	cp := h
	f.hotels = append(f.hotels, &cp)
	return h, nil
}

func (f *fakeHotels) GetByID(_ context.Context, id string) (models.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return *h, nil
		}
	}
	return models.Hotel{}, repo.ErrNotFound
}

func (f *fakeHotels) GetWithOwner(ctx context.Context, id string) (models.HotelWithOwner, error) {
	h, err := f.GetByID(ctx, id)
	if err != nil {
		return models.HotelWithOwner{}, err
	}
	owner, err := f.owners.GetByID(ctx, h.UserID)
	if err != nil {
		return models.HotelWithOwner{}, err
	}
	return models.HotelWithOwner{Hotel: h, OwnerName: owner.Name, OwnerEmail: owner.Email}, nil
}

func (f *fakeHotels) List(_ context.Context, limit, offset int) ([]models.Hotel, error) {
	if offset >= len(f.hotels) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.hotels) {
		end = len(f.hotels)
	}
	var out []models.Hotel
	for _, h := range f.hotels[offset:end] {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeHotels) Count(_ context.Context) (int, error) {
	return len(f.hotels), nil
}

func (f *fakeHotels) Search(_ context.Context, query string) ([]models.Hotel, error) {
	q := strings.ToLower(query)
	var out []models.Hotel
	for _, h := range f.hotels {
		if strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Address), q) ||
			strings.Contains(strings.ToLower(h.Image), q) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHotels) Update(_ context.Context, h models.Hotel) (models.Hotel, error) {
	for i, ex := range f.hotels {
		if ex.ID == h.ID {
			h.UpdatedAt = time.Now()
			cp := h
			f.hotels[i] = &cp
			return h, nil
		}
	}
	return models.Hotel{}, repo.ErrNotFound
}

func (f *fakeHotels) Delete(_ context.Context, id string) error {
	for i, h := range f.hotels {
		if h.ID == id {
			f.hotels = append(f.hotels[:i], f.hotels[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}
