package catalog

import (
	"fmt"
	"sync"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// Catalog is the ordered registry of achievement definitions.
// Registration order is the evaluation and reporting order.
// Once sealed it is read-only.
type Catalog struct {
	mu        sync.RWMutex
	defs      []domain.Achievement
	index     map[string]int
	supported map[domain.CriterionType]bool
	sealed    bool
}

// New creates an empty catalog accepting the given criterion types,
// or every declared criterion type when none are given.
func New(supported ...domain.CriterionType) *Catalog {
	if len(supported) == 0 {
		supported = domain.AllCriterionTypes()
	}
	set := make(map[domain.CriterionType]bool, len(supported))
	for _, c := range supported {
		set[c] = true
	}
	return &Catalog{
		index:     make(map[string]int),
		supported: set,
	}
}

// Register validates and appends a definition
func (c *Catalog) Register(def domain.Achievement) error {
	if err := c.validate(def); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealed {
		return fmt.Errorf("%w: cannot register %q", domain.ErrCatalogSealed, def.ID)
	}
	if _, exists := c.index[def.ID]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateAchievement, def.ID)
	}

	c.index[def.ID] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

func (c *Catalog) validate(def domain.Achievement) error {
	switch {
	case def.ID == "":
		return fmt.Errorf("%w: empty id", domain.ErrInvalidAchievement)
	case def.Criterion.Threshold <= 0:
		return fmt.Errorf("%w: %q threshold must be positive, got %v", domain.ErrInvalidAchievement, def.ID, def.Criterion.Threshold)
	case def.Points < 0:
		return fmt.Errorf("%w: %q points must not be negative, got %d", domain.ErrInvalidAchievement, def.ID, def.Points)
	case !def.Category.Valid():
		return fmt.Errorf("%w: %q has unknown category %q", domain.ErrInvalidAchievement, def.ID, def.Category)
	case !def.Tier.Valid():
		return fmt.Errorf("%w: %q has unknown tier %q", domain.ErrInvalidAchievement, def.ID, def.Tier)
	case !c.supported[def.Criterion.Type]:
		return fmt.Errorf("%w: %q uses %q", domain.ErrUnknownCriterion, def.ID, def.Criterion.Type)
	}
	return nil
}

// Seal forbids further registration
func (c *Catalog) Seal() {
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()
}

// Sealed reports whether Seal has been called
func (c *Catalog) Sealed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sealed
}

// GetByID looks up a definition
func (c *Catalog) GetByID(id string) (domain.Achievement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return domain.Achievement{}, false
	}
	return c.defs[i], true
}

// ListAll returns a copy of every definition in registration order
func (c *Catalog) ListAll() []domain.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Achievement, len(c.defs))
	copy(out, c.defs)
	return out
}

// Position returns the registration index of id
func (c *Catalog) Position(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	return i, ok
}

// Len is the number of definitions
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
