// Package epistemic implements the possible-worlds engine behind pokesight.
// A Model holds every configuration the opponent's Pokémon could still be,
// narrows that set as facts become public, and answers modal queries
// ("do we know they run Swords Dance?", "how likely is a Focus Sash?") over
// what survives.
package epistemic

import (
	"fmt"
	"sort"
)

// SeedRecord is one catalog entry used to build a world: a concrete move
// set plus scalar attributes.
type SeedRecord struct {
	Moves   []string
	Scalars map[string]string
}

// Model tracks what we know about one hidden configuration as a set of
// surviving possible worlds. Eliminated worlds are kept as history; the
// transfer is one-way, so the surviving set only ever shrinks within a
// battle.
//
// Query conventions on an empty surviving set are asymmetric on purpose,
// mirroring the modal definitions: Knows is vacuously true (every world in
// an empty set satisfies anything), Possibly is false, and Probability is
// 0. Callers that care must check Remaining first.
//
// A Model is owned by one goroutine at a time; it does no internal locking.
type Model struct {
	surviving  map[string]World
	eliminated map[string]World
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		surviving:  make(map[string]World),
		eliminated: make(map[string]World),
	}
}

// Seed builds one world per record and adds it to the surviving set, with
// deterministic ids "{name}_{index}". Seeding is additive: existing worlds
// are never disturbed, and seeding the same catalog twice coalesces on id.
// A world that was already eliminated this battle stays eliminated.
//
// The whole batch is validated up front; if any record is missing its move
// list the model is left untouched and a CatalogRecordError identifies the
// offender.
func (m *Model) Seed(name string, records []SeedRecord) error {
	for i, rec := range records {
		if rec.Moves == nil {
			return &CatalogRecordError{Index: i, Reason: "missing move list"}
		}
	}

	for i, rec := range records {
		w := NewWorld(worldID(name, i), name, rec.Moves, rec.Scalars)
		if _, gone := m.eliminated[w.id]; gone {
			continue
		}
		m.surviving[w.id] = w
	}
	return nil
}

func worldID(name string, index int) string {
	return fmt.Sprintf("%s_%d", name, index)
}

// Eliminate performs a public-announcement update: the proposition is now
// commonly known to be true, so every surviving world inconsistent with it
// moves to the eliminated partition. Returns the number of worlds dropped.
//
// An empty surviving set is never narrowed further; the call is a no-op
// returning 0, not an error.
func (m *Model) Eliminate(p Proposition) int {
	dropped := 0
	for id, w := range m.surviving {
		if w.Satisfies(p) {
			continue
		}
		delete(m.surviving, id)
		m.eliminated[id] = w
		dropped++
	}
	return dropped
}

// Knows evaluates K(p): true iff p holds in every surviving world.
// Vacuously true when nothing survives.
func (m *Model) Knows(p Proposition) bool {
	for _, w := range m.surviving {
		if !w.Satisfies(p) {
			return false
		}
	}
	return true
}

// Possibly evaluates ◇p: true iff p holds in at least one surviving world.
func (m *Model) Possibly(p Proposition) bool {
	for _, w := range m.surviving {
		if w.Satisfies(p) {
			return true
		}
	}
	return false
}

// Probability returns the fraction of surviving worlds satisfying p under
// a uniform distribution, or 0 when nothing survives.
func (m *Model) Probability(p Proposition) float64 {
	if len(m.surviving) == 0 {
		return 0.0
	}
	count := 0
	for _, w := range m.surviving {
		if w.Satisfies(p) {
			count++
		}
	}
	return float64(count) / float64(len(m.surviving))
}

// KnownMoves returns the moves present in every surviving world — the
// moves the opponent is guaranteed to have whichever world is the truth.
// Empty when nothing survives.
func (m *Model) KnownMoves() []string {
	var known map[string]struct{}
	for _, w := range m.surviving {
		if known == nil {
			known = make(map[string]struct{})
			for _, mv := range w.Moves() {
				known[mv] = struct{}{}
			}
			continue
		}
		for mv := range known {
			if !w.HasMove(mv) {
				delete(known, mv)
			}
		}
	}
	return sortedKeys(known)
}

// PossibleMoves returns the union of move sets across surviving worlds.
func (m *Model) PossibleMoves() []string {
	possible := make(map[string]struct{})
	for _, w := range m.surviving {
		for _, mv := range w.Moves() {
			possible[mv] = struct{}{}
		}
	}
	return sortedKeys(possible)
}

// PossibleScalars returns every value the named scalar attribute takes
// across surviving worlds.
func (m *Model) PossibleScalars(attr string) []string {
	values := make(map[string]struct{})
	for _, w := range m.surviving {
		values[w.Scalar(attr)] = struct{}{}
	}
	return sortedKeys(values)
}

// KnownScalar returns the value of the named scalar attribute iff every
// surviving world agrees on it. The second return is false when the value
// is not yet pinned down (or nothing survives) — absence, not an error.
func (m *Model) KnownScalar(attr string) (string, bool) {
	if len(m.surviving) == 0 {
		return "", false
	}
	var value string
	first := true
	for _, w := range m.surviving {
		if first {
			value = w.Scalar(attr)
			first = false
			continue
		}
		if w.Scalar(attr) != value {
			return "", false
		}
	}
	return value, true
}

// Remaining returns how many worlds survive.
func (m *Model) Remaining() int { return len(m.surviving) }

// EliminatedCount returns how many worlds have been ruled out.
func (m *Model) EliminatedCount() int { return len(m.eliminated) }

// Worlds returns the surviving worlds sorted by id. Iteration order over
// the partitions carries no meaning; the sort exists only so rendered
// output is stable.
func (m *Model) Worlds() []World {
	worlds := make([]World, 0, len(m.surviving))
	for _, w := range m.surviving {
		worlds = append(worlds, w)
	}
	sort.Slice(worlds, func(i, j int) bool { return worlds[i].id < worlds[j].id })
	return worlds
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
