package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
)

func seedOwner(t *testing.T, users *fakeUsers) models.User {
	t.Helper()
	u, err := users.Create(context.Background(), models.User{
		Name: "Owner", Username: "owner", Email: "owner@example.com", Role: "user", PasswordHash: "x",
	})
	require.NoError(t, err)
	return u
}

func validHotel(userID string) models.Hotel {
	return models.Hotel{
		Name:           "Seaside Inn",
		Address:        "1 Beach Rd",
		CostPerNight:   120,
		AvailableRooms: 8,
		Image:          "https://img.example.com/seaside.jpg",
		AverageRating:  4.5,
		UserID:         userID,
	}
}

func TestHotelCreate(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	t.Run("ok", func(t *testing.T) {
		h, err := svc.Create(context.Background(), validHotel(owner.ID))
		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
	})

	t.Run("owner must exist", func(t *testing.T) {
		h := validHotel("no-such-user")
		_, err := svc.Create(context.Background(), h)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rating out of range", func(t *testing.T) {
		h := validHotel(owner.ID)
		h.AverageRating = 5.5
		_, err := svc.Create(context.Background(), h)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative cost", func(t *testing.T) {
		h := validHotel(owner.ID)
		h.CostPerNight = -1
		_, err := svc.Create(context.Background(), h)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestHotelList_Pagination(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	hotels := newFakeHotels(users)
	svc := NewHotelService(hotels, users)

	for i := 1; i <= 25; i++ {
		h := validHotel(owner.ID)
		h.Name = fmt.Sprintf("Hotel %02d", i)
		_, err := svc.Create(context.Background(), h)
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 10, page.Limit)
	require.Len(t, page.Hotels, 10)
	assert.Equal(t, "Hotel 11", page.Hotels[0].Name)
	assert.Equal(t, "Hotel 20", page.Hotels[9].Name)

	last, err := svc.List(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Hotels, 5)

	// Out-of-range page numbers return empty pages, not errors.
	beyond, err := svc.List(context.Background(), 9, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Hotels)
}

func TestHotelList_Defaults(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	svc := NewHotelService(newFakeHotels(users), users)

	page, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 0, page.TotalPages)
}

func TestHotelUpdate_PatchAppliesOnlySetFields(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	h, err := svc.Create(context.Background(), validHotel(owner.ID))
	require.NoError(t, err)

	rooms := 3
	updated, err := svc.Update(context.Background(), h.ID, HotelPatch{AvailableRooms: &rooms})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.AvailableRooms)
	assert.Equal(t, h.Name, updated.Name)
	assert.Equal(t, h.CostPerNight, updated.CostPerNight)
}

func TestHotelUpdate_InvalidPatchRejected(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	h, err := svc.Create(context.Background(), validHotel(owner.ID))
	require.NoError(t, err)

	rooms := -2
	_, err = svc.Update(context.Background(), h.ID, HotelPatch{AvailableRooms: &rooms})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHotelDelete(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	h, err := svc.Create(context.Background(), validHotel(owner.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), h.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), h.ID), repo.ErrNotFound)
}

func TestHotelGet_IncludesOwner(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	h, err := svc.Create(context.Background(), validHotel(owner.ID))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.Name, got.OwnerName)
	assert.Equal(t, owner.Email, got.OwnerEmail)
}

func TestHotelSearch(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	owner := seedOwner(t, users)
	svc := NewHotelService(newFakeHotels(users), users)

	h := validHotel(owner.ID)
	h.Name = "Mountain Lodge"
	_, err := svc.Create(context.Background(), h)
	require.NoError(t, err)

	t.Run("case-insensitive substring", func(t *testing.T) {
		got, err := svc.Search(context.Background(), "mountain")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := svc.Search(context.Background(), "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("no matches is not an error at this layer", func(t *testing.T) {
		got, err := svc.Search(context.Background(), "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
