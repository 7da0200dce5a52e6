package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// PostRepository manages the blog content feed.
type PostRepository interface {
	GetAll() ([]models.BlogPost, error)
	GetByID(id string) (*models.BlogPost, error)
	Save(post models.BlogPost) error
	Delete(id string) error
}

type postRepository struct {
	c *collection[models.BlogPost]
}

// NewPostRepository creates a PostRepository. Posts are feed-like: new posts
// are prepended so the newest appears first.
func NewPostRepository(st *store.Store) PostRepository {
	return &postRepository{
		c: newCollection(st, keyPosts, schemaVersion, insertPrepend,
			func(p models.BlogPost) string { return p.ID }, defaultPosts),
	}
}

func (r *postRepository) GetAll() ([]models.BlogPost, error)       { return r.c.All() }
func (r *postRepository) GetByID(id string) (*models.BlogPost, error) { return r.c.Get(id) }
func (r *postRepository) Save(post models.BlogPost) error          { return r.c.Save(post) }
func (r *postRepository) Delete(id string) error                   { return r.c.Delete(id) }
