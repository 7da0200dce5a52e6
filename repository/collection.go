package repository

import (
	"log"

	"coachhub/store"
)

// insertMode controls where a new entity lands in its collection: feed-like
// collections (posts, uploads, notes) show newest first, catalog-like
// collections (lessons, projects, categories) keep natural order.
type insertMode int

const (
	insertPrepend insertMode = iota
	insertAppend
)

// collection implements the shared repository semantics over one store key:
// whole-collection load (seeding defaults on first read), linear-scan lookup,
// upsert by id, and filter-and-rewrite delete. Field validation is the
// caller's job, not the repository's.
type collection[E any] struct {
	st      *store.Store
	key     string
	version int
	mode    insertMode
	idOf    func(E) string
	seed    func() []E
}

func newCollection[E any](st *store.Store, key string, version int, mode insertMode, idOf func(E) string, seed func() []E) *collection[E] {
	return &collection[E]{st: st, key: key, version: version, mode: mode, idOf: idOf, seed: seed}
}

// All returns the full collection in its persisted order.
func (c *collection[E]) All() ([]E, error) {
	var items []E
	if err := c.st.Load(c.key, c.version, c.seed(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the entity with the given id, or nil if absent. Absence is a
// valid non-error result.
func (c *collection[E]) Get(id string) (*E, error) {
	items, err := c.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.idOf(items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Save upserts: an entity with a known id is replaced in place, a new one is
// inserted according to the collection's insert mode. The whole collection is
// rewritten afterwards.
func (c *collection[E]) Save(entity E) error {
	items, err := c.All()
	if err != nil {
		return err
	}
	id := c.idOf(entity)
	for i := range items {
		if c.idOf(items[i]) == id {
			items[i] = entity
			return c.st.Save(c.key, c.version, items)
		}
	}
	if c.mode == insertPrepend {
		items = append([]E{entity}, items...)
	} else {
		items = append(items, entity)
	}
	return c.st.Save(c.key, c.version, items)
}

// Delete removes the entity with the given id and rewrites the collection.
// Deleting a non-existent id is a no-op, not an error.
func (c *collection[E]) Delete(id string) error {
	items, err := c.All()
	if err != nil {
		return err
	}
	kept := items[:0:0]
	removed := false
	for _, item := range items {
		if !removed && c.idOf(item) == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		log.Printf("INFO: [Repository] Delete of missing id '%s' from '%s' is a no-op.", id, c.key)
		return nil
	}
	return c.st.Save(c.key, c.version, kept)
}
