// Package cli provides the command-line interface for pokesight
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokesight/pokesight/internal/config"
	"github.com/pokesight/pokesight/internal/db"
)

var (
	database   *db.DB
	cfg        config.Config
	outputJSON bool // --json flag for machine-readable output (default is text for humans)
	verbose    bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "pokesight",
	Short: "Track what you know about your opponent's team",
	Long: `pokesight - Hidden-Information Tracking for Pokémon Battles

Track which sets your opponent's Pokémon could still be running as moves,
items and abilities are revealed, and query what you know for certain.

Quick Start:
  pokesight start                      # Begin tracking a battle
  pokesight reveal garchomp            # Opponent sends out a Pokémon
  pokesight move garchomp "swords dance"   # Observe a move
  pokesight item garchomp "focus sash"     # Observe a held item
  pokesight know move garchomp earthquake  # Query: do we KNOW they have it?
  pokesight status                     # See remaining possible sets
  pokesight done                       # Finish the battle`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB init for help commands
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		database, err = db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database != nil {
			database.Close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		outputError(err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Machine-readable JSON output (default is text)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(versionCmd)
}

// emit outputs a result: JSON when --json is set, otherwise the text
// renderer.
func emit(result interface{}, text func()) {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
	} else {
		text()
	}
}

// outputError outputs an error in the appropriate format
func outputError(err error) {
	if outputJSON {
		result := map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
		enc := json.NewEncoder(os.Stderr)
		enc.Encode(result)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pokesight version 1.0.0")
	},
}
