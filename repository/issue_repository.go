package repository

import (
	"coachhub/models"
	"coachhub/store"
)

// IssueRepository manages the preset issues that seed the scripted branch of
// the diagnosis chat.
type IssueRepository interface {
	GetAll() ([]models.DiagnosisIssue, error)
	GetByID(id string) (*models.DiagnosisIssue, error)
	Save(issue models.DiagnosisIssue) error
	Delete(id string) error
}

type issueRepository struct {
	c *collection[models.DiagnosisIssue]
}

// NewIssueRepository creates an IssueRepository.
func NewIssueRepository(st *store.Store) IssueRepository {
	return &issueRepository{
		c: newCollection(st, keyIssues, schemaVersion, insertAppend,
			func(i models.DiagnosisIssue) string { return i.ID }, defaultIssues),
	}
}

func (r *issueRepository) GetAll() ([]models.DiagnosisIssue, error)          { return r.c.All() }
func (r *issueRepository) GetByID(id string) (*models.DiagnosisIssue, error) { return r.c.Get(id) }
func (r *issueRepository) Save(issue models.DiagnosisIssue) error            { return r.c.Save(issue) }
func (r *issueRepository) Delete(id string) error                            { return r.c.Delete(id) }
