package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pokesight/pokesight/internal/catalog"
	"github.com/pokesight/pokesight/internal/db"
	"github.com/pokesight/pokesight/internal/tracker"
)

// ActiveBattle stores the current active battle info
type ActiveBattle struct {
	BattleID  string    `json:"battle_id"`
	Format    string    `json:"format"`
	Opponent  string    `json:"opponent,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// getActiveBattlePath returns the path to store the active battle
func getActiveBattlePath() string {
	// Try project-local first
	if _, err := os.Stat(".pokesight"); err == nil {
		return ".pokesight/active-battle.json"
	}
	// Fall back to home directory
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pokesight", "active-battle.json")
}

// saveActiveBattle saves the current active battle
func saveActiveBattle(battle *ActiveBattle) error {
	path := getActiveBattlePath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(battle, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// loadActiveBattle loads the current active battle
func loadActiveBattle() (*ActiveBattle, error) {
	data, err := os.ReadFile(getActiveBattlePath())
	if err != nil {
		return nil, err
	}
	var battle ActiveBattle
	if err := json.Unmarshal(data, &battle); err != nil {
		return nil, err
	}
	return &battle, nil
}

// clearActiveBattle removes the active battle file
func clearActiveBattle() error {
	return os.Remove(getActiveBattlePath())
}

// requireActiveBattle gets the active battle or returns an error
func requireActiveBattle() (*ActiveBattle, error) {
	battle, err := loadActiveBattle()
	if err != nil {
		return nil, fmt.Errorf("no active battle. Run 'pokesight start' first")
	}
	return battle, nil
}

// loadCatalog loads the set catalog for a format through the sqlite cache.
func loadCatalog(format string) (*catalog.Catalog, error) {
	src := catalog.NewSource(cfg.Catalog.URL, format, cfg.Catalog.TTL(), db.NewCatalogRepository(database))
	cat, err := src.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// loadBattleTracker rebuilds the active battle's epistemic state by
// replaying its observation log against a freshly seeded tracker.
func loadBattleTracker() (*tracker.Tracker, *ActiveBattle, error) {
	battle, err := requireActiveBattle()
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(battle.Format)
	if err != nil {
		return nil, nil, err
	}

	observations, err := db.NewBattleRepository(database).Observations(battle.BattleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load observations: %w", err)
	}

	entries := make([]tracker.Entry, len(observations))
	for i, obs := range observations {
		entries[i] = tracker.Entry{Pokemon: obs.Pokemon, Kind: obs.Kind, Value: obs.Value}
	}

	tr := tracker.New(cat)
	if err := tr.Replay(entries); err != nil {
		return nil, nil, fmt.Errorf("failed to replay battle log: %w", err)
	}
	return tr, battle, nil
}

// recordObservation appends the tracker's newest log entry to the battle's
// stored observation log.
func recordObservation(tr *tracker.Tracker, battleID string) error {
	log := tr.History()
	if len(log) == 0 {
		return nil
	}
	last := log[len(log)-1]
	return db.NewBattleRepository(database).AddObservation(&db.Observation{
		BattleID:  battleID,
		Pokemon:   last.Pokemon,
		Kind:      last.Kind,
		Value:     last.Value,
		CreatedAt: time.Now(),
	})
}

var startCmd = &cobra.Command{
	Use:   "start [opponent]",
	Short: "Begin tracking a new battle",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		battle := &ActiveBattle{
			BattleID:  uuid.New().String(),
			Format:    cfg.Catalog.Format,
			StartedAt: time.Now(),
		}
		var opponent *string
		if len(args) > 0 {
			battle.Opponent = args[0]
			opponent = &args[0]
		}

		repo := db.NewBattleRepository(database)
		if err := repo.Create(&db.Battle{
			BattleID:  battle.BattleID,
			Format:    battle.Format,
			Opponent:  opponent,
			StartedAt: battle.StartedAt,
		}); err != nil {
			return fmt.Errorf("failed to create battle: %w", err)
		}
		if err := saveActiveBattle(battle); err != nil {
			return err
		}

		emit(battle, func() {
			fmt.Printf("Battle started (%s, format %s).\n", battle.BattleID[:8], battle.Format)
			fmt.Println("Use 'pokesight reveal <pokemon>' when the opponent sends something out.")
		})
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the active battle",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, battle, err := loadBattleTracker()
		if err != nil {
			return err
		}

		if err := db.NewBattleRepository(database).End(battle.BattleID); err != nil {
			return fmt.Errorf("failed to end battle: %w", err)
		}
		if err := clearActiveBattle(); err != nil && !os.IsNotExist(err) {
			return err
		}

		summary := map[string]interface{}{
			"battle_id":    battle.BattleID,
			"revealed":     tr.Revealed(),
			"observations": len(tr.History()),
		}
		emit(summary, func() {
			fmt.Printf("Battle %s finished: %d Pokémon revealed, %d events logged.\n",
				battle.BattleID[:8], len(tr.Revealed()), len(tr.History()))
		})
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the active battle's observation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		battle, err := requireActiveBattle()
		if err != nil {
			return err
		}

		observations, err := db.NewBattleRepository(database).Observations(battle.BattleID)
		if err != nil {
			return fmt.Errorf("failed to load observations: %w", err)
		}

		emit(observations, func() {
			if len(observations) == 0 {
				fmt.Println("No observations yet.")
				return
			}
			for i, obs := range observations {
				fmt.Printf("%d. %s\n", i+1, describeObservation(obs))
			}
		})
		return nil
	},
}

func describeObservation(obs *db.Observation) string {
	switch obs.Kind {
	case tracker.KindReveal:
		return fmt.Sprintf("Opponent sent out %s", obs.Pokemon)
	case tracker.KindMove:
		return fmt.Sprintf("%s used %s", obs.Pokemon, obs.Value)
	case tracker.KindItem:
		return fmt.Sprintf("%s's %s was revealed", obs.Pokemon, obs.Value)
	case tracker.KindAbility:
		return fmt.Sprintf("%s's ability %s was revealed", obs.Pokemon, obs.Value)
	case tracker.KindNoItem:
		return fmt.Sprintf("%s does not have %s", obs.Pokemon, obs.Value)
	}
	return fmt.Sprintf("%s: %s %s", obs.Pokemon, obs.Kind, obs.Value)
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(historyCmd)
}
