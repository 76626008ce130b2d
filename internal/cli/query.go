package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pokesight/pokesight/internal/epistemic"
	"github.com/pokesight/pokesight/internal/tracker"
)

// QueryResult is the answer to a modal query about one Pokémon.
type QueryResult struct {
	Pokemon     string  `json:"pokemon"`
	Kind        string  `json:"kind"`
	Value       string  `json:"value"`
	Proposition string  `json:"proposition"`
	Knows       bool    `json:"knows"`
	Possibly    bool    `json:"possibly"`
	Probability float64 `json:"probability"`
}

var knowCmd = &cobra.Command{
	Use:   "know",
	Short: "Query what is known about a Pokémon",
}

// runQuery evaluates K, possibility and probability of a proposition.
func runQuery(kind, pokemon, value string) error {
	tr, _, err := loadBattleTracker()
	if err != nil {
		return err
	}

	name, err := tr.ResolveName(pokemon)
	if err != nil {
		return err
	}
	model, ok := tr.Model(name)
	if !ok {
		return &tracker.NotRevealedError{Name: name}
	}

	value = tr.CanonicalValue(name, kind, value)

	var prop epistemic.Proposition
	switch kind {
	case tracker.KindMove:
		prop = epistemic.TagProposition(value)
	case tracker.KindItem:
		prop = epistemic.ScalarProposition("item", value)
	case tracker.KindAbility:
		prop = epistemic.ScalarProposition("ability", value)
	}

	result := &QueryResult{
		Pokemon:     name,
		Kind:        kind,
		Value:       value,
		Proposition: prop.String(),
		Knows:       model.Knows(prop),
		Possibly:    model.Possibly(prop),
		Probability: model.Probability(prop),
	}
	emit(result, func() {
		fmt.Printf("\n=== Query: Does %s have %s? ===\n", name, value)
		switch {
		case result.Knows:
			fmt.Printf("  K(%s): YES - We KNOW they have it (100%%)\n", value)
		case result.Possibly:
			fmt.Printf("  K(%s): NO - We don't know for certain\n", value)
			fmt.Printf("  Possibly(%s): YES - It's possible (%.0f%% of remaining sets)\n",
				value, result.Probability*100)
		default:
			fmt.Printf("  K(not %s): YES - We KNOW they DON'T have it (0%%)\n", value)
		}
	})
	return nil
}

var knowMoveCmd = &cobra.Command{
	Use:   "move <pokemon> <move>",
	Short: "Query: do we know the Pokémon has this move?",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(tracker.KindMove, args[0], strings.Join(args[1:], " "))
	},
}

var knowItemCmd = &cobra.Command{
	Use:   "item <pokemon> <item>",
	Short: "Query: do we know the Pokémon holds this item?",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(tracker.KindItem, args[0], strings.Join(args[1:], " "))
	},
}

var knowAbilityCmd = &cobra.Command{
	Use:   "ability <pokemon> <ability>",
	Short: "Query: do we know the Pokémon's ability?",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(tracker.KindAbility, args[0], strings.Join(args[1:], " "))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [pokemon]",
	Short: "Show the epistemic state for all or one revealed Pokémon",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, _, err := loadBattleTracker()
		if err != nil {
			return err
		}

		names := tr.Revealed()
		if len(args) > 0 {
			name, err := tr.ResolveName(strings.Join(args, " "))
			if err != nil {
				return err
			}
			names = []string{name}
		}

		var statuses []*PokemonStatus
		for _, name := range names {
			if st := buildStatus(tr, name); st != nil {
				statuses = append(statuses, st)
			}
		}

		emit(statuses, func() {
			if len(statuses) == 0 {
				fmt.Println("No Pokémon revealed yet.")
				return
			}
			for _, st := range statuses {
				printStatus(st)
			}
		})
		return nil
	},
}

var pokemonCmd = &cobra.Command{
	Use:   "pokemon",
	Short: "List Pokémon available in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg.Catalog.Format)
		if err != nil {
			return err
		}

		type entry struct {
			Name string `json:"name"`
			Sets int    `json:"sets"`
		}
		entries := make([]entry, 0, cat.Len())
		for _, name := range cat.Names() {
			entries = append(entries, entry{Name: name, Sets: len(cat.Sets(name))})
		}

		emit(entries, func() {
			fmt.Printf("Available Pokémon (%s):\n", cfg.Catalog.Format)
			for _, e := range entries {
				fmt.Printf("  * %s (%d sets)\n", e.Name, e.Sets)
			}
		})
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by partial Pokémon name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg.Catalog.Format)
		if err != nil {
			return err
		}

		matches := cat.Search(strings.Join(args, " "))
		emit(matches, func() {
			if len(matches) == 0 {
				fmt.Println("No matches.")
				return
			}
			for _, name := range matches {
				fmt.Printf("  * %s\n", name)
			}
		})
		return nil
	},
}

func init() {
	knowCmd.AddCommand(knowMoveCmd)
	knowCmd.AddCommand(knowItemCmd)
	knowCmd.AddCommand(knowAbilityCmd)

	rootCmd.AddCommand(knowCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pokemonCmd)
	rootCmd.AddCommand(searchCmd)
}
