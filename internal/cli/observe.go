package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pokesight/pokesight/internal/tracker"
)

// PokemonStatus is the rendered epistemic state for one revealed Pokémon.
type PokemonStatus struct {
	Pokemon           string   `json:"pokemon"`
	Remaining         int      `json:"remaining_sets"`
	Eliminated        int      `json:"eliminated_sets"`
	KnownMoves        []string `json:"known_moves,omitempty"`
	PossibleMoves     []string `json:"possible_moves,omitempty"`
	KnownItem         string   `json:"known_item,omitempty"`
	PossibleItems     []string `json:"possible_items,omitempty"`
	KnownAbility      string   `json:"known_ability,omitempty"`
	PossibleAbilities []string `json:"possible_abilities,omitempty"`
	Sets              []string `json:"sets,omitempty"`
}

// buildStatus snapshots the model for one revealed Pokémon.
func buildStatus(tr *tracker.Tracker, name string) *PokemonStatus {
	model, ok := tr.Model(name)
	if !ok {
		return nil
	}

	st := &PokemonStatus{
		Pokemon:    name,
		Remaining:  model.Remaining(),
		Eliminated: model.EliminatedCount(),
		KnownMoves: model.KnownMoves(),
	}

	// Possible moves minus the known ones; the known list already covers
	// those.
	known := make(map[string]bool, len(st.KnownMoves))
	for _, m := range st.KnownMoves {
		known[m] = true
	}
	for _, m := range model.PossibleMoves() {
		if !known[m] {
			st.PossibleMoves = append(st.PossibleMoves, m)
		}
	}

	if item, ok := model.KnownScalar("item"); ok {
		st.KnownItem = item
	} else {
		st.PossibleItems = model.PossibleScalars("item")
	}
	if ability, ok := model.KnownScalar("ability"); ok {
		st.KnownAbility = ability
	} else {
		st.PossibleAbilities = model.PossibleScalars("ability")
	}

	if model.Remaining() <= 4 {
		for _, w := range model.Worlds() {
			st.Sets = append(st.Sets, w.String())
		}
	}
	return st
}

func printStatus(st *PokemonStatus) {
	fmt.Printf("\n--- %s ---\n", st.Pokemon)
	fmt.Printf("Possible sets remaining: %d\n", st.Remaining)
	if len(st.KnownMoves) > 0 {
		fmt.Printf("Known moves: %s\n", strings.Join(st.KnownMoves, ", "))
	}
	if len(st.PossibleMoves) > 0 {
		fmt.Printf("Possible moves: %s\n", strings.Join(st.PossibleMoves, ", "))
	}
	if st.KnownItem != "" {
		fmt.Printf("Known item: %s\n", st.KnownItem)
	} else if len(st.PossibleItems) > 0 {
		fmt.Printf("Possible items: %s\n", strings.Join(st.PossibleItems, ", "))
	}
	if st.KnownAbility != "" {
		fmt.Printf("Known ability: %s\n", st.KnownAbility)
	} else if len(st.PossibleAbilities) > 0 {
		fmt.Printf("Possible abilities: %s\n", strings.Join(st.PossibleAbilities, ", "))
	}
	if len(st.Sets) > 0 {
		fmt.Println("Remaining possible sets:")
		for _, s := range st.Sets {
			fmt.Printf("  * %s\n", s)
		}
	}
}

// ObservationResult is the outcome of a reveal or observation.
type ObservationResult struct {
	Observed   string         `json:"observed"`
	Eliminated int            `json:"eliminated"`
	Status     *PokemonStatus `json:"status"`
}

var revealCmd = &cobra.Command{
	Use:   "reveal <pokemon>",
	Short: "Opponent sends out a Pokémon; initialize its hypothesis space",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, battle, err := loadBattleTracker()
		if err != nil {
			return err
		}

		input := strings.Join(args, " ")
		worlds, err := tr.Reveal(input)
		if err != nil {
			return err
		}
		if err := recordObservation(tr, battle.BattleID); err != nil {
			return fmt.Errorf("failed to record observation: %w", err)
		}

		revealed := tr.Revealed()
		name := revealed[len(revealed)-1]
		st := buildStatus(tr, name)
		result := &ObservationResult{
			Observed: fmt.Sprintf("Opponent sent out %s", name),
			Status:   st,
		}
		emit(result, func() {
			fmt.Printf("%s revealed! Initialized with %d possible sets.\n", name, worlds)
			printStatus(st)
		})
		return nil
	},
}

// runObservation handles the shared flow of move/item/ability/noitem.
func runObservation(kind, pokemon, value string) error {
	tr, battle, err := loadBattleTracker()
	if err != nil {
		return err
	}

	var dropped int
	switch kind {
	case tracker.KindMove:
		dropped, err = tr.ObserveMove(pokemon, value)
	case tracker.KindItem:
		dropped, err = tr.ObserveItem(pokemon, value)
	case tracker.KindAbility:
		dropped, err = tr.ObserveAbility(pokemon, value)
	case tracker.KindNoItem:
		dropped, err = tr.ObserveNoItem(pokemon, value)
	}
	if err != nil {
		return err
	}
	if err := recordObservation(tr, battle.BattleID); err != nil {
		return fmt.Errorf("failed to record observation: %w", err)
	}

	log := tr.History()
	last := log[len(log)-1]
	st := buildStatus(tr, last.Pokemon)
	result := &ObservationResult{
		Observed:   describeEntry(last),
		Eliminated: dropped,
		Status:     st,
	}
	emit(result, func() {
		fmt.Printf("Observed: %s\n", result.Observed)
		fmt.Printf("Eliminated %d world(s)\n", dropped)
		printStatus(st)
	})
	return nil
}

func describeEntry(e tracker.Entry) string {
	switch e.Kind {
	case tracker.KindMove:
		return fmt.Sprintf("%s used %s", e.Pokemon, e.Value)
	case tracker.KindItem:
		return fmt.Sprintf("%s has %s", e.Pokemon, e.Value)
	case tracker.KindAbility:
		return fmt.Sprintf("%s has ability %s", e.Pokemon, e.Value)
	case tracker.KindNoItem:
		return fmt.Sprintf("%s does NOT have %s", e.Pokemon, e.Value)
	}
	return fmt.Sprintf("%s %s", e.Pokemon, e.Value)
}

var moveCmd = &cobra.Command{
	Use:   "move <pokemon> <move>",
	Short: "Observe a Pokémon using a move",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runObservation(tracker.KindMove, args[0], strings.Join(args[1:], " "))
	},
}

var itemCmd = &cobra.Command{
	Use:   "item <pokemon> <item>",
	Short: "Observe a Pokémon's held item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runObservation(tracker.KindItem, args[0], strings.Join(args[1:], " "))
	},
}

var abilityCmd = &cobra.Command{
	Use:   "ability <pokemon> <ability>",
	Short: "Observe a Pokémon's ability",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runObservation(tracker.KindAbility, args[0], strings.Join(args[1:], " "))
	},
}

var noitemCmd = &cobra.Command{
	Use:   "noitem <pokemon> <item>",
	Short: "Record that a Pokémon definitely lacks an item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runObservation(tracker.KindNoItem, args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(abilityCmd)
	rootCmd.AddCommand(noitemCmd)
}
