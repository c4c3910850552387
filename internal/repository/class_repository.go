package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

const classColumns = "id, course_id, teacher_id, room_id, title, description, day_of_week, start_time, end_time, date, period, status"

// ClassRepository reads and writes the classes table.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class ordered by weekday and start time.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassRecord, error) {
	classes := make([]models.ClassRecord, 0)
	query := "SELECT " + classColumns + " FROM classes ORDER BY day_of_week, start_time, id"
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Upsert inserts classes or refreshes the stored copy.
func (r *ClassRepository) Upsert(ctx context.Context, tx *sqlx.Tx, classes []models.ClassRecord) error {
	query := tx.Rebind(`INSERT INTO classes (` + classColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET course_id = excluded.course_id, teacher_id = excluded.teacher_id, room_id = excluded.room_id,
title = excluded.title, description = excluded.description, day_of_week = excluded.day_of_week, start_time = excluded.start_time,
end_time = excluded.end_time, date = excluded.date, period = excluded.period, status = excluded.status`)
	for _, c := range classes {
		var status *string
		if c.Status != nil {
			s := string(*c.Status)
			status = &s
		}
		if _, err := tx.ExecContext(ctx, query,
			c.ID, c.CourseID, c.TeacherID, c.RoomID, c.Title, c.Description,
			c.DayOfWeek, c.StartTime, c.EndTime, c.Date, c.Period, status,
		); err != nil {
			return fmt.Errorf("upsert class %s: %w", c.ID, err)
		}
	}
	return nil
}
