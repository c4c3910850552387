package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables are created in dependency order; classes references the other three.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    description TEXT
)`,
	`CREATE TABLE IF NOT EXISTS teachers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    avatar TEXT
)`,
	`CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    capacity INTEGER
)`,
	`CREATE TABLE IF NOT EXISTS classes (
    id TEXT PRIMARY KEY,
    course_id TEXT NOT NULL REFERENCES courses(id),
    teacher_id TEXT NOT NULL REFERENCES teachers(id),
    room_id TEXT NOT NULL REFERENCES rooms(id),
    title TEXT NOT NULL,
    description TEXT,
    day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    date TEXT,
    period TEXT,
    status TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_classes_course ON classes (course_id)`,
}

// EnsureSchema creates the kiosk tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
