package epistemic

import (
	"fmt"
	"sort"
	"strings"
)

// World is one candidate configuration for a tracked Pokémon: a concrete
// move set plus scalar attributes (item, ability). Worlds are immutable
// after construction; identity is the ID alone, so the same world can be
// referenced from the surviving and eliminated partitions without aliasing
// concerns.
type World struct {
	id      string
	name    string
	moves   map[string]struct{}
	scalars map[string]string
}

// NewWorld constructs a world. The move list and scalar map are copied, so
// the caller keeps no handle into the world's state.
func NewWorld(id, name string, moves []string, scalars map[string]string) World {
	w := World{
		id:      id,
		name:    name,
		moves:   make(map[string]struct{}, len(moves)),
		scalars: make(map[string]string, len(scalars)),
	}
	for _, m := range moves {
		w.moves[m] = struct{}{}
	}
	for k, v := range scalars {
		w.scalars[k] = v
	}
	return w
}

// ID returns the world's stable identifier.
func (w World) ID() string { return w.id }

// Name returns the tracked entity this world belongs to.
func (w World) Name() string { return w.name }

// Moves returns the move set, sorted.
func (w World) Moves() []string {
	moves := make([]string, 0, len(w.moves))
	for m := range w.moves {
		moves = append(moves, m)
	}
	sort.Strings(moves)
	return moves
}

// HasMove reports whether the move is in this world's move set.
func (w World) HasMove(move string) bool {
	_, ok := w.moves[move]
	return ok
}

// Scalar returns the named scalar attribute ("" if the world doesn't
// carry it).
func (w World) Scalar(attr string) string { return w.scalars[attr] }

// Satisfies evaluates the proposition against this world. It is pure: the
// same world/proposition pair always yields the same answer.
func (w World) Satisfies(p Proposition) bool {
	var holds bool
	switch p.Kind {
	case KindTag:
		holds = w.HasMove(p.Value)
	case KindScalar:
		holds = w.scalars[p.Attr] == p.Value
	}
	if p.Negated {
		return !holds
	}
	return holds
}

// String renders the world like "Garchomp[Dragon Claw, Earthquake | item=Focus Sash | ability=Rough Skin]".
func (w World) String() string {
	attrs := make([]string, 0, len(w.scalars))
	for k := range w.scalars {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)

	parts := []string{strings.Join(w.Moves(), ", ")}
	for _, k := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", k, w.scalars[k]))
	}
	return fmt.Sprintf("%s[%s]", w.name, strings.Join(parts, " | "))
}
