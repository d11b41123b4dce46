package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staylist/staylist-backend/internal/models"
	"github.com/staylist/staylist-backend/internal/repository"
)

const hotelCols = `id, name, address, cost_per_night, available_rooms, image, average_rating, user_id, created_at, updated_at`

type hotelsRepo struct{ pool *pgxpool.Pool }

func NewHotels(pool *pgxpool.Pool) repository.Hotels {
	return &hotelsRepo{pool: pool}
}

func scanHotel(row pgx.Row) (models.Hotel, error) {
	var h models.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Address, &h.CostPerNight, &h.AvailableRooms, &h.Image, &h.AverageRating, &h.UserID, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Hotel{}, repository.ErrNotFound
	}
	return h, err
}

func (r *hotelsRepo) Create(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO hotels(id, name, address, cost_per_night, available_rooms, image, average_rating, user_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, h.Name, h.Address, h.CostPerNight, h.AvailableRooms, h.Image, h.AverageRating, h.UserID,
	)
	if err != nil {
		return models.Hotel{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *hotelsRepo) GetByID(ctx context.Context, id string) (models.Hotel, error) {
	return scanHotel(r.pool.QueryRow(ctx, `SELECT `+hotelCols+` FROM hotels WHERE id=$1`, id))
}

func (r *hotelsRepo) GetWithOwner(ctx context.Context, id string) (models.HotelWithOwner, error) {
	var h models.HotelWithOwner
	err := r.pool.QueryRow(ctx,
		`SELECT h.id, h.name, h.address, h.cost_per_night, h.available_rooms, h.image, h.average_rating,
		        h.user_id, h.created_at, h.updated_at, u.name, u.email
		 FROM hotels h JOIN users u ON u.id = h.user_id
		 WHERE h.id=$1`, id,
	).Scan(&h.ID, &h.Name, &h.Address, &h.CostPerNight, &h.AvailableRooms, &h.Image, &h.AverageRating,
		&h.UserID, &h.CreatedAt, &h.UpdatedAt, &h.OwnerName, &h.OwnerEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.HotelWithOwner{}, repository.ErrNotFound
	}
	return h, err
}

func (r *hotelsRepo) List(ctx context.Context, limit, offset int) ([]models.Hotel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+hotelCols+` FROM hotels ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHotels(rows)
}

func (r *hotelsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM hotels`).Scan(&n)
	return n, err
}

func (r *hotelsRepo) Search(ctx context.Context, query string) ([]models.Hotel, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT `+hotelCols+` FROM hotels
		 WHERE name ILIKE $1 OR address ILIKE $1 OR image ILIKE $1
		 ORDER BY created_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHotels(rows)
}

func (r *hotelsRepo) Update(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hotels SET name=$2, address=$3, cost_per_night=$4, available_rooms=$5, image=$6, average_rating=$7, updated_at=now()
		 WHERE id=$1`,
		h.ID, h.Name, h.Address, h.CostPerNight, h.AvailableRooms, h.Image, h.AverageRating,
	)
	if err != nil {
		return models.Hotel{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Hotel{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, h.ID)
}

func (r *hotelsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hotels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectHotels(rows pgx.Rows) ([]models.Hotel, error) {
	var out []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.CostPerNight, &h.AvailableRooms, &h.Image, &h.AverageRating, &h.UserID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
