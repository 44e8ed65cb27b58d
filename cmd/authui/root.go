package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:              "authui",
	Short:            "authui serves the login page of the authentication API.",
	SilenceErrors:    true,
	SilenceUsage:     true,
	PersistentPreRun: recordCommandExecutionContext,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, loginCmd, versionCmd)
}
