package cmd

import (
	"strings"

	devConfig "github.com/Daskott/rolodex/dev/config"
	"github.com/Daskott/rolodex/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start a rolodex server",
	Long:  `The rolodex server exposes the users REST API on the configured port`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := serverConfig(cfgFile, isDevEnv)
		cobra.CheckErr(err)

		server.Start(config, isDevEnv)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

// serverConfig reads the server config from cfgFile, or from the bundled
// dev config in dev mode. Environment variables override both, e.g.
// ROLODEX_LISTENER_PORT overrides 'rolodex.listener.port'.
func serverConfig(cfgFile string, devMode bool) (*viper.Viper, error) {
	config := viper.New()
	setConfigDefaults(config)

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv() // read in environment variables that match

	// Common PaaS variables
	config.BindEnv("rolodex.listener.port", "PORT")
	config.BindEnv("database.postgres.dsn", "DATABASE_URL")
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	if devMode && cfgFile == "" {
		config.SetConfigType("yaml")
		if err := config.ReadConfig(strings.NewReader(devConfig.SERVER_YML)); err != nil {
			return nil, formattedError("error reading dev server config: %v", err)
		}
		return config, nil
	}

	if cfgFile == "" {
		return config, nil
	}

	config.SetConfigFile(cfgFile)
	if err := config.ReadInConfig(); err != nil {
		return nil, formattedError("error reading server config file: %v", err)
	}

	return config, nil
}

func setConfigDefaults(config *viper.Viper) {
	config.SetDefault("rolodex.listener.port", 4000)
	config.SetDefault("rolodex.timeZone", "UTC")
	config.SetDefault("database.driver", "sqlite")
	config.SetDefault("database.dir", ".")
	config.SetDefault("google.storage.sqliteBackupSchedule", "*/30 * * * *")
}
