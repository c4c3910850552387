package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-kiosk-api/internal/models"
)

// SQLSource loads the dataset from the kiosk tables in PostgreSQL or SQLite.
type SQLSource struct {
	db       *sqlx.DB
	courses  *CourseRepository
	teachers *TeacherRepository
	rooms    *RoomRepository
	classes  *ClassRepository
}

// NewSQLSource wires the table repositories over db.
func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{
		db:       db,
		courses:  NewCourseRepository(db),
		teachers: NewTeacherRepository(db),
		rooms:    NewRoomRepository(db),
		classes:  NewClassRepository(db),
	}
}

func (s *SQLSource) Name() string {
	return "sql:" + s.db.DriverName()
}

// Load reads all four tables.
func (s *SQLSource) Load(ctx context.Context) (models.Dataset, error) {
	var (
		ds  models.Dataset
		err error
	)
	if ds.Courses, err = s.courses.List(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Teachers, err = s.teachers.List(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Rooms, err = s.rooms.List(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Classes, err = s.classes.List(ctx); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

// Save upserts ds in one transaction, reference tables first.
func (s *SQLSource) Save(ctx context.Context, ds models.Dataset) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.courses.Upsert(ctx, tx, ds.Courses); err != nil {
		return err
	}
	if err = s.teachers.Upsert(ctx, tx, ds.Teachers); err != nil {
		return err
	}
	if err = s.rooms.Upsert(ctx, tx, ds.Rooms); err != nil {
		return err
	}
	if err = s.classes.Upsert(ctx, tx, ds.Classes); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
