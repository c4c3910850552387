package models

// Course is immutable reference data for a technical course.
type Course struct {
	ID          string  `db:"id" json:"id" yaml:"id" validate:"required"`
	Name        string  `db:"name" json:"name" yaml:"name" validate:"required"`
	Color       string  `db:"color" json:"color" yaml:"color" validate:"omitempty,hexcolor"`
	Icon        string  `db:"icon" json:"icon" yaml:"icon"`
	Description *string `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
}
