package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// NoteRepository manages user-authored notes.
type NoteRepository interface {
	GetAll() ([]models.AdminNote, error)
	GetByID(id string) (*models.AdminNote, error)
	Save(note models.AdminNote) error
	Delete(id string) error
}

type noteRepository struct {
	c *collection[models.AdminNote]
}

// NewNoteRepository creates a NoteRepository. Notes are feed-like: newest
// first.
func NewNoteRepository(st *store.Store) NoteRepository {
	return &noteRepository{
		c: newCollection(st, keyNotes, schemaVersion, insertPrepend,
			func(n models.AdminNote) string { return n.ID },
			func() []models.AdminNote { return []models.AdminNote{} }),
	}
}

func (r *noteRepository) GetAll() ([]models.AdminNote, error)          { return r.c.All() }
func (r *noteRepository) GetByID(id string) (*models.AdminNote, error) { return r.c.Get(id) }
func (r *noteRepository) Save(note models.AdminNote) error             { return r.c.Save(note) }
func (r *noteRepository) Delete(id string) error                       { return r.c.Delete(id) }
