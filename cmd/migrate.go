package cmd

import (
	"fmt"

	"github.com/Daskott/rolodex/server"
	"github.com/Daskott/rolodex/server/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := serverConfig(cfgFile, isDevEnv)
		if err != nil {
			return err
		}

		srvConfig, err := server.LoadServerConfig(config)
		if err != nil {
			return err
		}

		db, err := models.OpenDB(srvConfig.Database, isDevEnv)
		if err != nil {
			return err
		}

		if err := models.AutoMigrate(db); err != nil {
			return formattedError("migration failed: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s database is up to date\n", srvConfig.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
