package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// TeacherRepository reads and writes the teachers table.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns every teacher ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	teachers := make([]models.Teacher, 0)
	const query = "SELECT id, name, email, avatar FROM teachers ORDER BY name, id"
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Upsert inserts teachers or refreshes the stored copy.
func (r *TeacherRepository) Upsert(ctx context.Context, tx *sqlx.Tx, teachers []models.Teacher) error {
	query := tx.Rebind(`INSERT INTO teachers (id, name, email, avatar) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email, avatar = excluded.avatar`)
	for _, t := range teachers {
		if _, err := tx.ExecContext(ctx, query, t.ID, t.Name, t.Email, t.Avatar); err != nil {
			return fmt.Errorf("upsert teacher %s: %w", t.ID, err)
		}
	}
	return nil
}
