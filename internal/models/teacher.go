package models

// Teacher is immutable reference data for an instructor.
type Teacher struct {
	ID     string  `db:"id" json:"id" yaml:"id" validate:"required"`
	Name   string  `db:"name" json:"name" yaml:"name" validate:"required"`
	Email  *string `db:"email" json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Avatar *string `db:"avatar" json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
