package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// ProjectRepository manages KPI dashboard projects.
type ProjectRepository interface {
	GetAll() ([]models.DashboardProject, error)
	GetByID(id string) (*models.DashboardProject, error)
	Save(project models.DashboardProject) error
	Delete(id string) error
}

type projectRepository struct {
	c *collection[models.DashboardProject]
}

// NewProjectRepository creates a ProjectRepository. Projects are catalog-like
// and keep insertion order.
func NewProjectRepository(st *store.Store) ProjectRepository {
	return &projectRepository{
		c: newCollection(st, keyProjects, schemaVersion, insertAppend,
			func(p models.DashboardProject) string { return p.ID }, defaultProjects),
	}
}

func (r *projectRepository) GetAll() ([]models.DashboardProject, error) { return r.c.All() }
func (r *projectRepository) GetByID(id string) (*models.DashboardProject, error) {
	return r.c.Get(id)
}
func (r *projectRepository) Save(project models.DashboardProject) error { return r.c.Save(project) }
func (r *projectRepository) Delete(id string) error                     { return r.c.Delete(id) }
