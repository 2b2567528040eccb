// Package idmap holds in-memory legacy-ID to UUID lookup maps, preloaded
// per entity from the target's legacy_*_id columns before a migration run.
package idmap

import (
	"fmt"

	migrate "github.com/dentalops/dispatch-migrate"
)

// Map resolves legacy IDs of a single entity to target row UUIDs.
type Map struct {
	entity migrate.Entity
	ids    map[migrate.LegacyID]string
}

// New creates an empty map for an entity.
func New(entity migrate.Entity) *Map {
	return &Map{
		entity: entity,
		ids:    make(map[migrate.LegacyID]string),
	}
}

// FromPairs creates a map seeded with existing legacy-ID to UUID pairs.
func FromPairs(entity migrate.Entity, pairs map[migrate.LegacyID]string) *Map {
	m := New(entity)
	for id, uid := range pairs {
		m.ids[id] = uid
	}
	return m
}

// Put records a mapping, typically right after a row is inserted.
func (m *Map) Put(id migrate.LegacyID, uid string) {
	m.ids[id] = uid
}

// Lookup returns the UUID for a legacy ID.
func (m *Map) Lookup(id migrate.LegacyID) (string, bool) {
	uid, ok := m.ids[id]
	return uid, ok
}

// UUID returns the UUID for a legacy ID or ErrMappingNotFound.
func (m *Map) UUID(id migrate.LegacyID) (string, error) {
	uid, ok := m.ids[id]
	if !ok {
		return "", fmt.Errorf("%w: %s %d", migrate.ErrMappingNotFound, m.entity, id)
	}
	return uid, nil
}

// Len returns the number of mappings.
func (m *Map) Len() int {
	return len(m.ids)
}

// Set is a collection of maps keyed by entity.
type Set struct {
	maps map[migrate.Entity]*Map
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{maps: make(map[migrate.Entity]*Map)}
}

// Add registers a map for its entity, replacing any previous one.
func (s *Set) Add(m *Map) {
	s.maps[m.entity] = m
}

// Get returns the map for an entity, creating an empty one if absent.
func (s *Set) Get(entity migrate.Entity) *Map {
	m, ok := s.maps[entity]
	if !ok {
		m = New(entity)
		s.maps[entity] = m
	}
	return m
}

// UUID resolves a legacy foreign key through the entity's map.
func (s *Set) UUID(entity migrate.Entity, id migrate.LegacyID) (string, error) {
	return s.Get(entity).UUID(id)
}
