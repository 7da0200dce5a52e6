package repository

import (
	"log"

	"coachhub/models"
	"coachhub/store"
)

// PermissionRepository manages the entitlement matrix and the capability
// definitions the admin console edits it through.
type PermissionRepository interface {
	GetConfig() (models.PermissionConfig, error)
	SaveConfig(config models.PermissionConfig) error
	GetDefinitions() ([]models.PermissionDefinition, error)
	SaveDefinition(def models.PermissionDefinition) error
	DeleteDefinition(id string) error
}

type permissionRepository struct {
	st   *store.Store
	defs *collection[models.PermissionDefinition]
}

// NewPermissionRepository creates a PermissionRepository.
func NewPermissionRepository(st *store.Store) PermissionRepository {
	return &permissionRepository{
		st: st,
		defs: newCollection(st, keyPermDefs, schemaVersion, insertAppend,
			func(d models.PermissionDefinition) string { return d.ID }, defaultPermissionDefinitions),
	}
}

func (r *permissionRepository) GetConfig() (models.PermissionConfig, error) {
	var config models.PermissionConfig
	if err := r.st.Load(keyPermConfig, schemaVersion, defaultPermissionConfig(), &config); err != nil {
		return models.PermissionConfig{}, err
	}
	// A persisted matrix can carry null plan rows (e.g. an admin saved an
	// empty config); materialize them before backfilling.
	if config.Free == nil {
		config.Free = make(map[string]bool)
	}
	if config.Pro == nil {
		config.Pro = make(map[string]bool)
	}
	// Stored configs predating a capability get its default slot filled in so
	// the admin console always has a key to edit.
	defaults := defaultPermissionConfig()
	for key, allowed := range defaults.Free {
		if _, ok := config.Free[key]; !ok {
			config.Free[key] = allowed
		}
	}
	for key, allowed := range defaults.Pro {
		if _, ok := config.Pro[key]; !ok {
			config.Pro[key] = allowed
		}
	}
	return config, nil
}

func (r *permissionRepository) SaveConfig(config models.PermissionConfig) error {
	// Never persist a null plan row; an empty map keeps later reads total.
	if config.Free == nil {
		config.Free = make(map[string]bool)
	}
	if config.Pro == nil {
		config.Pro = make(map[string]bool)
	}
	return r.st.Save(keyPermConfig, schemaVersion, config)
}

func (r *permissionRepository) GetDefinitions() ([]models.PermissionDefinition, error) {
	return r.defs.All()
}

func (r *permissionRepository) SaveDefinition(def models.PermissionDefinition) error {
	return r.defs.Save(def)
}

// DeleteDefinition removes a capability definition and purges its key from
// both plan rows of the matrix, so no stale boolean entry survives without a
// definition to edit it through.
func (r *permissionRepository) DeleteDefinition(id string) error {
	def, err := r.defs.Get(id)
	if err != nil {
		return err
	}
	if err := r.defs.Delete(id); err != nil {
		return err
	}
	if def == nil {
		return nil
	}
	config, err := r.GetConfig()
	if err != nil {
		return err
	}
	delete(config.Free, def.Key)
	delete(config.Pro, def.Key)
	log.Printf("INFO: [PermissionRepository] Purged capability key '%s' from the entitlement matrix.", def.Key)
	return r.SaveConfig(config)
}
