// Package catalog loads competitive Pokémon set data in the Smogon export
// format and turns it into the concrete seed records the epistemic engine
// consumes.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Record is one concrete set: the shape the engine seeds a world from.
type Record struct {
	Set     string   `json:"set"`
	Moves   []string `json:"moves"`
	Item    string   `json:"item"`
	Ability string   `json:"ability"`
}

// option is a set slot that holds either one value or a list of
// interchangeable choices (Smogon "slash notation").
type option []string

func (o *option) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*o = option{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*o = option(list)
	return nil
}

// first returns the concrete choice for a slot, or the fallback when the
// slot was absent from the export.
func (o option) first(fallback string) string {
	if len(o) == 0 {
		return fallback
	}
	return o[0]
}

// rawSet is one named set as exported by data.pkmn.cc. Fields we don't
// model (EVs, natures, tera types) are ignored by the decoder.
type rawSet struct {
	Moves   []option `json:"moves"`
	Item    option   `json:"item"`
	Ability option   `json:"ability"`
}

// Catalog holds the decoded set database for one format.
type Catalog struct {
	pokemon map[string]map[string]rawSet
	names   []string
}

// Decode parses a raw Smogon sets export (pokemon -> set name -> set).
func Decode(data []byte) (*Catalog, error) {
	var pokemon map[string]map[string]rawSet
	if err := json.Unmarshal(data, &pokemon); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	names := make([]string, 0, len(pokemon))
	for name := range pokemon {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{pokemon: pokemon, names: names}, nil
}

// Names returns every Pokémon in the catalog, sorted.
func (c *Catalog) Names() []string { return c.names }

// Len returns how many Pokémon the catalog covers.
func (c *Catalog) Len() int { return len(c.names) }

// Has reports whether the Pokémon appears in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.pokemon[name]
	return ok
}

// Sets returns the concrete sets for a Pokémon. Slashed slots collapse to
// their first option, matching how sample sets are usually read; set names
// come back in sorted order so output is stable.
func (c *Catalog) Sets(name string) []Record {
	raw, ok := c.pokemon[name]
	if !ok {
		return nil
	}

	setNames := make([]string, 0, len(raw))
	for sn := range raw {
		setNames = append(setNames, sn)
	}
	sort.Strings(setNames)

	records := make([]Record, 0, len(setNames))
	for _, sn := range setNames {
		rs := raw[sn]
		moves := make([]string, 0, len(rs.Moves))
		for _, slot := range rs.Moves {
			moves = append(moves, slot.first(""))
		}
		records = append(records, Record{
			Set:     sn,
			Moves:   moves,
			Item:    rs.Item.first("Unknown"),
			Ability: rs.Ability.first("Unknown"),
		})
	}
	return records
}

// AllMoves returns every move a Pokémon's sets mention, slash options
// included.
func (c *Catalog) AllMoves(name string) []string {
	moves := make(map[string]struct{})
	for _, rs := range c.pokemon[name] {
		for _, slot := range rs.Moves {
			for _, m := range slot {
				moves[m] = struct{}{}
			}
		}
	}
	return sorted(moves)
}

// AllItems returns every item a Pokémon's sets mention, slash options
// included.
func (c *Catalog) AllItems(name string) []string {
	items := make(map[string]struct{})
	for _, rs := range c.pokemon[name] {
		for _, it := range rs.Item {
			items[it] = struct{}{}
		}
	}
	return sorted(items)
}

// AllAbilities returns every ability a Pokémon's sets mention.
func (c *Catalog) AllAbilities(name string) []string {
	abilities := make(map[string]struct{})
	for _, rs := range c.pokemon[name] {
		for _, ab := range rs.Ability {
			abilities[ab] = struct{}{}
		}
	}
	return sorted(abilities)
}

// Search returns catalog names containing the query, case-insensitive.
func (c *Catalog) Search(query string) []string {
	query = strings.ToLower(query)
	var matches []string
	for _, name := range c.names {
		if strings.Contains(strings.ToLower(name), query) {
			matches = append(matches, name)
		}
	}
	return matches
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
