package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// UploadRepository manages the append-only log of user-submitted files.
type UploadRepository interface {
	GetAll() ([]models.UserUpload, error)
	GetByID(id string) (*models.UserUpload, error)
	Save(upload models.UserUpload) error
	Delete(id string) error
}

type uploadRepository struct {
	c *collection[models.UserUpload]
}

// NewUploadRepository creates an UploadRepository. Uploads are feed-like:
// newest first.
func NewUploadRepository(st *store.Store) UploadRepository {
	return &uploadRepository{
		c: newCollection(st, keyUploads, schemaVersion, insertPrepend,
			func(u models.UserUpload) string { return u.ID },
			func() []models.UserUpload { return []models.UserUpload{} }),
	}
}

func (r *uploadRepository) GetAll() ([]models.UserUpload, error)          { return r.c.All() }
func (r *uploadRepository) GetByID(id string) (*models.UserUpload, error) { return r.c.Get(id) }
func (r *uploadRepository) Save(upload models.UserUpload) error           { return r.c.Save(upload) }
func (r *uploadRepository) Delete(id string) error                        { return r.c.Delete(id) }
