package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCommand creates the migrate command
func MigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.store.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}
