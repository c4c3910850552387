package models

// RoomKind classifies where a class takes place.
type RoomKind string

const (
	RoomClassroom  RoomKind = "classroom"
	RoomLaboratory RoomKind = "laboratory"
	RoomWorkshop   RoomKind = "workshop"
)

// Room is immutable reference data for a teaching space.
type Room struct {
	ID       string   `db:"id" json:"id" yaml:"id" validate:"required"`
	Name     string   `db:"name" json:"name" yaml:"name" validate:"required"`
	Kind     RoomKind `db:"kind" json:"type" yaml:"type" validate:"required,oneof=classroom laboratory workshop"`
	Capacity *int     `db:"capacity" json:"capacity,omitempty" yaml:"capacity,omitempty" validate:"omitempty,min=1"`
}
