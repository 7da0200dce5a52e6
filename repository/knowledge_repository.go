package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// KnowledgeRepository manages the solution-library categories.
type KnowledgeRepository interface {
	GetAll() ([]models.KnowledgeCategory, error)
	GetByID(id string) (*models.KnowledgeCategory, error)
	Save(category models.KnowledgeCategory) error
	Delete(id string) error
}

type knowledgeRepository struct {
	c *collection[models.KnowledgeCategory]
}

// NewKnowledgeRepository creates a KnowledgeRepository.
func NewKnowledgeRepository(st *store.Store) KnowledgeRepository {
	return &knowledgeRepository{
		c: newCollection(st, keyKnowledge, schemaVersion, insertAppend,
			func(k models.KnowledgeCategory) string { return k.ID }, defaultKnowledge),
	}
}

func (r *knowledgeRepository) GetAll() ([]models.KnowledgeCategory, error) { return r.c.All() }
func (r *knowledgeRepository) GetByID(id string) (*models.KnowledgeCategory, error) {
	return r.c.Get(id)
}
func (r *knowledgeRepository) Save(category models.KnowledgeCategory) error { return r.c.Save(category) }
func (r *knowledgeRepository) Delete(id string) error                       { return r.c.Delete(id) }
