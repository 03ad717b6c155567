package enemy

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownEnemy is returned when a name is not in the catalog.
var ErrUnknownEnemy = errors.New("unknown enemy")

// MinTier and MaxTier bound enemy difficulty.
const (
	MinTier = 1
	MaxTier = 4
)

// Catalog maps enemy names to their constructor functions.
var Catalog = map[string]func() *Enemy{
	"Thieving Raven":      ThievingRaven,
	"Stinging Scorpion":   StingingScorpion,
	"Burrowing Mole":      BurrowingMole,
	"Grumpy Toad":         GrumpyToad,
	"Crafty Fox":          CraftyFox,
	"Training Dummy":      TrainingDummy,
	"Diving Hawk":         DivingHawk,
	"Goblin Saboteur":     GoblinSaboteur,
	"Venomous Cobra":      VenomousCobra,
	"Shadow Bat":          ShadowBat,
	"Snapping Turtle":     SnappingTurtle,
	"Merciless Porcupine": MercilessPorcupine,
	"Nightmare Squid":     NightmareSquid,
	"One-Eyed Terror":     OneEyedTerror,
	"Stone Sentinel":      StoneSentinel,
	"Swarming Ants":       SwarmingAnts,
	"Chromatic Chameleon": ChromaticChameleon,
	"Kraken's Grasp":      KrakensGrasp,
	"The Hydra":           TheHydra,
	"Ancient Dragon":      AncientDragon,
	"Void Serpent":        VoidSerpent,
	"Blazing Phoenix":     BlazingPhoenix,
}

// LookupEnemy builds a fresh enemy by name.
func LookupEnemy(name string) (*Enemy, error) {
	ctor, ok := Catalog[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEnemy, "%q", name)
	}
	return ctor(), nil
}

// Registry indexes enemies by name and by tier.
type Registry struct {
	byName map[string]*Enemy
	byTier map[int][]*Enemy
}

// NewRegistry creates a registry holding the given enemies.
func NewRegistry(enemies ...*Enemy) *Registry {
	r := &Registry{
		byName: make(map[string]*Enemy),
		byTier: make(map[int][]*Enemy),
	}
	for _, e := range enemies {
		r.Register(e)
	}
	return r
}

// DefaultRegistry holds every enemy in Catalog.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, ctor := range Catalog {
		r.Register(ctor())
	}
	return r
}

// Register adds or replaces an enemy. Registering the same name twice leaves
// a single entry.
func (r *Registry) Register(e *Enemy) {
	if e == nil {
		return
	}
	if old, ok := r.byName[e.Name]; ok {
		r.byTier[old.Tier] = removeEnemy(r.byTier[old.Tier], old.Name)
	}
	r.byName[e.Name] = e
	tier := append(r.byTier[e.Tier], e)
	sort.Slice(tier, func(i, j int) bool { return tier[i].Name < tier[j].Name })
	r.byTier[e.Tier] = tier
}

func removeEnemy(list []*Enemy, name string) []*Enemy {
	out := list[:0]
	for _, e := range list {
		if e.Name != name {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the enemy registered under name.
func (r *Registry) Lookup(name string) (*Enemy, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Tier returns the enemies of a tier sorted by name, placeholders included.
func (r *Registry) Tier(tier int) []*Enemy {
	return append([]*Enemy(nil), r.byTier[tier]...)
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered enemies.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Select draws up to n distinct non-placeholder enemies from a tier.
func (r *Registry) Select(rng Rand, tier, n int) []*Enemy {
	var pool []*Enemy
	for _, e := range r.byTier[tier] {
		if !e.Placeholder {
			pool = append(pool, e)
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	if rng == nil {
		rng = globalRand{}
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// SelectForced returns only the named enemy when it exists, bypassing the
// random draw. Unknown or empty names fall back to Select. The bool reports
// whether the forced enemy was used.
func (r *Registry) SelectForced(rng Rand, tier, n int, name string) ([]*Enemy, bool) {
	if name != "" {
		if e, ok := r.byName[name]; ok {
			return []*Enemy{e}, true
		}
	}
	return r.Select(rng, tier, n), false
}
