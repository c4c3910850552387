package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

const courseColumns = "id, name, color, icon, description"

// CourseRepository reads and writes the courses table.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by name.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	courses := make([]models.Course, 0)
	query := "SELECT " + courseColumns + " FROM courses ORDER BY name, id"
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Upsert inserts courses or refreshes the stored copy.
func (r *CourseRepository) Upsert(ctx context.Context, tx *sqlx.Tx, courses []models.Course) error {
	query := tx.Rebind(`INSERT INTO courses (id, name, color, icon, description) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, color = excluded.color, icon = excluded.icon, description = excluded.description`)
	for _, c := range courses {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Name, c.Color, c.Icon, c.Description); err != nil {
			return fmt.Errorf("upsert course %s: %w", c.ID, err)
		}
	}
	return nil
}
