// Package celestial holds the fixed catalog of orbiting bodies.
package celestial

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a body id is not part of the catalog.
var ErrNotFound = errors.New("celestial: body not found")

// ErrInvalidCatalog is returned when a catalog breaks one of the registry invariants.
var ErrInvalidCatalog = errors.New("celestial: invalid catalog")

// Body is one orbiting body. Values are immutable once the registry is built.
type Body struct {
	ID            int
	Name          string
	OrbitalRadius float64 // Distance from the central body
	DisplaySize   float64 // Render scale
	AngularSpeed  float64 // Radians per tick at 60 ticks/s; sign is the direction
	PayloadText   string  // Message revealed on discovery
	Color         string  // Hex "#rrggbb", presentation only
}

// Registry is the read-only catalog. Safe for concurrent use since nothing mutates it.
type Registry struct {
	bodies []Body
	index  map[int]int // id -> position in bodies
	secret string
}

// New validates bodies and builds a registry ordered by id.
// Ids must be unique and dense (1..N); radius and size must be positive.
func New(bodies []Body, secret string) (*Registry, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidCatalog)
	}

	sorted := make([]Body, len(bodies))
	copy(sorted, bodies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	index := make(map[int]int, len(sorted))
	for i, b := range sorted {
		if _, dup := index[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidCatalog, b.ID)
		}
		if b.ID != i+1 {
			return nil, fmt.Errorf("%w: ids must be 1..%d, found %d", ErrInvalidCatalog, len(sorted), b.ID)
		}
		if b.OrbitalRadius <= 0 {
			return nil, fmt.Errorf("%w: body %d has non-positive orbital radius", ErrInvalidCatalog, b.ID)
		}
		if b.DisplaySize <= 0 {
			return nil, fmt.Errorf("%w: body %d has non-positive display size", ErrInvalidCatalog, b.ID)
		}
		index[b.ID] = i
	}

	return &Registry{bodies: sorted, index: index, secret: secret}, nil
}

// All returns the full catalog in id order. The slice is a copy.
func (r *Registry) All() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

// Get returns the body with the given id.
func (r *Registry) Get(id int) (Body, error) {
	i, ok := r.index[id]
	if !ok {
		return Body{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r.bodies[i], nil
}

// Size returns the number of bodies, which is also the number to collect.
func (r *Registry) Size() int {
	return len(r.bodies)
}

// Secret returns the message revealed once the secret is unlocked.
func (r *Registry) Secret() string {
	return r.secret
}

// MaxRadius returns the largest orbital radius in the catalog.
func (r *Registry) MaxRadius() float64 {
	max := 0.0
	for _, b := range r.bodies {
		if b.OrbitalRadius > max {
			max = b.OrbitalRadius
		}
	}
	return max
}
