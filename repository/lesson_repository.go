package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// LessonRepository manages the video-course library.
type LessonRepository interface {
	GetAll() ([]models.Lesson, error)
	GetByID(id string) (*models.Lesson, error)
	Save(lesson models.Lesson) error
	Delete(id string) error
}

type lessonRepository struct {
	c *collection[models.Lesson]
}

// NewLessonRepository creates a LessonRepository.
func NewLessonRepository(st *store.Store) LessonRepository {
	return &lessonRepository{
		c: newCollection(st, keyLessons, schemaVersion, insertAppend,
			func(l models.Lesson) string { return l.ID }, defaultLessons),
	}
}

func (r *lessonRepository) GetAll() ([]models.Lesson, error)          { return r.c.All() }
func (r *lessonRepository) GetByID(id string) (*models.Lesson, error) { return r.c.Get(id) }
func (r *lessonRepository) Save(lesson models.Lesson) error           { return r.c.Save(lesson) }
func (r *lessonRepository) Delete(id string) error                    { return r.c.Delete(id) }
