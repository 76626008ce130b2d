// Package tracker orchestrates one epistemic model per revealed opponent
// Pokémon, translating battle observations into public-announcement
// updates.
package tracker

import (
	"github.com/pokesight/pokesight/internal/catalog"
	"github.com/pokesight/pokesight/internal/epistemic"
	"github.com/pokesight/pokesight/internal/search"
)

// Observation kinds. These are also the values stored in the observation
// log, so renaming one is a breaking change for existing databases.
const (
	KindReveal  = "reveal"
	KindMove    = "move"
	KindItem    = "item"
	KindAbility = "ability"
	KindNoItem  = "noitem"
)

// Entry is one event in a battle: a reveal or an observed fact.
type Entry struct {
	Pokemon string `json:"pokemon"`
	Kind    string `json:"kind"`
	Value   string `json:"value,omitempty"`
}

// Tracker holds the epistemic state for one battle. It is rebuilt from the
// observation log on every run; nothing epistemic is ever persisted.
type Tracker struct {
	catalog *catalog.Catalog
	models  map[string]*epistemic.Model
	order   []string
	log     []Entry
}

// New creates a tracker over the given catalog.
func New(cat *catalog.Catalog) *Tracker {
	return &Tracker{
		catalog: cat,
		models:  make(map[string]*epistemic.Model),
	}
}

// ResolveName maps user input onto a catalog Pokémon name, or fails with
// suggestions.
func (t *Tracker) ResolveName(input string) (string, error) {
	name, ok := search.Resolve(input, t.catalog.Names())
	if !ok {
		return "", &UnknownPokemonError{
			Name:        search.Normalize(input),
			Suggestions: search.Suggest(input, t.catalog.Names(), 3),
		}
	}
	return name, nil
}

// Reveal initializes a model for an opponent Pokémon from its catalog
// sets. Returns how many possible worlds the Pokémon starts with.
func (t *Tracker) Reveal(input string) (int, error) {
	name, err := t.ResolveName(input)
	if err != nil {
		return 0, err
	}
	if _, ok := t.models[name]; ok {
		return 0, &AlreadyRevealedError{Name: name}
	}

	records := t.catalog.Sets(name)
	seeds := make([]epistemic.SeedRecord, len(records))
	for i, rec := range records {
		seeds[i] = epistemic.SeedRecord{
			Moves: rec.Moves,
			Scalars: map[string]string{
				"item":    rec.Item,
				"ability": rec.Ability,
			},
		}
	}

	model := epistemic.NewModel()
	if err := model.Seed(name, seeds); err != nil {
		return 0, err
	}

	t.models[name] = model
	t.order = append(t.order, name)
	t.log = append(t.log, Entry{Pokemon: name, Kind: KindReveal})
	return model.Remaining(), nil
}

// ObserveMove records that a Pokémon used a move and eliminates every
// world without it. Returns the number of worlds eliminated.
func (t *Tracker) ObserveMove(pokemon, move string) (int, error) {
	return t.observe(pokemon, KindMove, move)
}

// ObserveItem records that a Pokémon's held item was revealed.
func (t *Tracker) ObserveItem(pokemon, item string) (int, error) {
	return t.observe(pokemon, KindItem, item)
}

// ObserveAbility records that a Pokémon's ability was revealed.
func (t *Tracker) ObserveAbility(pokemon, ability string) (int, error) {
	return t.observe(pokemon, KindAbility, ability)
}

// ObserveNoItem records that a Pokémon definitely lacks an item (knocked
// off, consumed elsewhere, ...). Unlike the positive observations this is
// never refused: learning an item is absent is informative even when no
// catalog set carried it.
func (t *Tracker) ObserveNoItem(pokemon, item string) (int, error) {
	return t.observe(pokemon, KindNoItem, item)
}

func (t *Tracker) observe(pokemon, kind, value string) (int, error) {
	name, err := t.ResolveName(pokemon)
	if err != nil {
		return 0, err
	}
	model, ok := t.models[name]
	if !ok {
		return 0, &NotRevealedError{Name: name}
	}

	value = t.resolveValue(name, kind, value)
	prop := propositionFor(kind, value)

	// A positive observation no surviving world allows would wipe the
	// model; more likely the opponent runs an off-catalog set or the user
	// made a typo, so refuse and let them decide.
	if kind != KindNoItem && !model.Possibly(prop) {
		return 0, &OffCatalogError{Pokemon: name, Kind: kind, Value: value}
	}

	dropped := model.Eliminate(prop)
	t.log = append(t.log, Entry{Pokemon: name, Kind: kind, Value: value})
	return dropped, nil
}

// CanonicalValue maps a user-typed move/item/ability onto the catalog
// spelling for queries, the same way observations are resolved.
func (t *Tracker) CanonicalValue(pokemon, kind, value string) string {
	if name, err := t.ResolveName(pokemon); err == nil {
		pokemon = name
	}
	return t.resolveValue(pokemon, kind, value)
}

// resolveValue maps a user-typed move/item/ability onto the catalog
// spelling when one matches, and falls back to plain title-casing.
func (t *Tracker) resolveValue(pokemon, kind, value string) string {
	var candidates []string
	switch kind {
	case KindMove:
		candidates = t.catalog.AllMoves(pokemon)
	case KindItem, KindNoItem:
		candidates = t.catalog.AllItems(pokemon)
	case KindAbility:
		candidates = t.catalog.AllAbilities(pokemon)
	}
	if resolved, ok := search.Resolve(value, candidates); ok {
		return resolved
	}
	return search.Normalize(value)
}

func propositionFor(kind, value string) epistemic.Proposition {
	switch kind {
	case KindMove:
		return epistemic.TagProposition(value)
	case KindItem:
		return epistemic.ScalarProposition("item", value)
	case KindNoItem:
		return epistemic.ScalarProposition("item", value).Negate()
	case KindAbility:
		return epistemic.ScalarProposition("ability", value)
	}
	// observe only passes the kinds above
	return epistemic.Proposition{}
}

// Replay rebuilds tracker state from a stored observation log.
func (t *Tracker) Replay(entries []Entry) error {
	for _, e := range entries {
		var err error
		switch e.Kind {
		case KindReveal:
			_, err = t.Reveal(e.Pokemon)
		case KindMove:
			_, err = t.ObserveMove(e.Pokemon, e.Value)
		case KindItem:
			_, err = t.ObserveItem(e.Pokemon, e.Value)
		case KindAbility:
			_, err = t.ObserveAbility(e.Pokemon, e.Value)
		case KindNoItem:
			_, err = t.ObserveNoItem(e.Pokemon, e.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Model returns the epistemic model for a revealed Pokémon.
func (t *Tracker) Model(name string) (*epistemic.Model, bool) {
	m, ok := t.models[name]
	return m, ok
}

// Revealed returns revealed Pokémon in reveal order.
func (t *Tracker) Revealed() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// History returns the battle's event log in order.
func (t *Tracker) History() []Entry {
	out := make([]Entry, len(t.log))
	copy(out, t.log)
	return out
}

// Catalog returns the catalog this tracker was built over.
func (t *Tracker) Catalog() *catalog.Catalog { return t.catalog }
