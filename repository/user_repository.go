package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// UserRepository manages accounts.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	Save(user models.User) error
	Delete(id string) error
}

type userRepository struct {
	c *collection[models.User]
}

// NewUserRepository creates a UserRepository, seeded with the built-in admin
// account.
func NewUserRepository(st *store.Store) UserRepository {
	return &userRepository{
		c: newCollection(st, keyUsers, schemaVersion, insertAppend,
			func(u models.User) string { return u.ID }, defaultUsers),
	}
}

func (r *userRepository) GetAll() ([]models.User, error)          { return r.c.All() }
func (r *userRepository) GetByID(id string) (*models.User, error) { return r.c.Get(id) }
func (r *userRepository) Save(user models.User) error             { return r.c.Save(user) }
func (r *userRepository) Delete(id string) error                  { return r.c.Delete(id) }
