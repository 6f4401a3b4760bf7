package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybersafe/cybersafe/internal/config"
	"github.com/cybersafe/cybersafe/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display counts of registered users and stored game scores.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		scores, err := db.CountGameScores(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count game scores: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Registered Users: %d\n", users)
		fmt.Printf("Stored Game Scores: %d\n", scores)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
