package schedule

import "github.com/noah-isme/course-kiosk-api/internal/models"

// Catalog resolves reference data by id. Enrichment depends on nothing else.
type Catalog interface {
	Course(id string) (models.Course, bool)
	Teacher(id string) (models.Teacher, bool)
	Room(id string) (models.Room, bool)
}

// MemoryCatalog is an immutable, map-backed Catalog. When ids repeat, the
// first entry wins.
type MemoryCatalog struct {
	courses  map[string]models.Course
	teachers map[string]models.Teacher
	rooms    map[string]models.Room
}

// NewCatalog indexes the reference tables.
func NewCatalog(courses []models.Course, teachers []models.Teacher, rooms []models.Room) *MemoryCatalog {
	c := &MemoryCatalog{
		courses:  make(map[string]models.Course, len(courses)),
		teachers: make(map[string]models.Teacher, len(teachers)),
		rooms:    make(map[string]models.Room, len(rooms)),
	}
	for _, course := range courses {
		if _, dup := c.courses[course.ID]; !dup {
			c.courses[course.ID] = course
		}
	}
	for _, teacher := range teachers {
		if _, dup := c.teachers[teacher.ID]; !dup {
			c.teachers[teacher.ID] = teacher
		}
	}
	for _, room := range rooms {
		if _, dup := c.rooms[room.ID]; !dup {
			c.rooms[room.ID] = room
		}
	}
	return c
}

func (c *MemoryCatalog) Course(id string) (models.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

func (c *MemoryCatalog) Teacher(id string) (models.Teacher, bool) {
	teacher, ok := c.teachers[id]
	return teacher, ok
}

func (c *MemoryCatalog) Room(id string) (models.Room, bool) {
	room, ok := c.rooms[id]
	return room, ok
}
