package tracker

import (
	"fmt"
	"strings"
)

// UnknownPokemonError reports a name that matched nothing in the catalog.
type UnknownPokemonError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownPokemonError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown Pokémon %q", e.Name)
	}
	return fmt.Sprintf("unknown Pokémon %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// AlreadyRevealedError reports a second reveal of the same Pokémon.
type AlreadyRevealedError struct {
	Name string
}

func (e *AlreadyRevealedError) Error() string {
	return fmt.Sprintf("%s already revealed", e.Name)
}

// NotRevealedError reports an observation for a Pokémon that hasn't been
// revealed yet.
type NotRevealedError struct {
	Name string
}

func (e *NotRevealedError) Error() string {
	return fmt.Sprintf("%s not revealed yet; run 'pokesight reveal %s' first", e.Name, e.Name)
}

// OffCatalogError reports a positive observation that no surviving world
// allows: either the opponent runs a non-standard set or the input was a
// typo. The model is left untouched.
type OffCatalogError struct {
	Pokemon string
	Kind    string
	Value   string
}

func (e *OffCatalogError) Error() string {
	return fmt.Sprintf("%s %q is not possible for any remaining %s set", e.Kind, e.Value, e.Pokemon)
}
