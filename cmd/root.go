/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/Daskott/rolodex/colors"
	"github.com/Daskott/rolodex/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	envFile  string
	isDevEnv bool
)

// rootCmd represents the base command when called without any subcommands.
// It is built at package level so subcommand init funcs can register on it.
var rootCmd = createRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(loadEnvFile)

	rootCmd.Version = fmt.Sprintf("v%s", version.Version)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "rolodex",
		Short: `rolodex is a user directory service.

It serves a REST API to list, create, view, edit & delete users
and their addresses, backed by sqlite or postgres.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file for the server (yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables to load")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	return cmd
}

// loadEnvFile reads variables from envFile into the process environment.
// Variables that are already set are not overridden, and a missing file is not an error.
func loadEnvFile() {
	if envFile == "" {
		return
	}

	err := godotenv.Load(envFile)
	if err != nil && envFile != ".env" {
		cobra.CheckErr(formattedError("unable to load env file %s: %v", envFile, err))
	}
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(colors.Red(format), a...)
}
