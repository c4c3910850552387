package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// RoomRepository reads and writes the rooms table.
type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns every room ordered by name.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	const query = "SELECT id, name, kind, capacity FROM rooms ORDER BY name, id"
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r *RoomRepository) Upsert(ctx context.Context, tx *sqlx.Tx, rooms []models.Room) error {
	query := tx.Rebind(`INSERT INTO rooms (id, name, kind, capacity) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, kind = excluded.kind, capacity = excluded.capacity`)
	for _, room := range rooms {
		if _, err := tx.ExecContext(ctx, query, room.ID, room.Name, string(room.Kind), room.Capacity); err != nil {
			return fmt.Errorf("upsert room %s: %w", room.ID, err)
		}
	}
	return nil
}
