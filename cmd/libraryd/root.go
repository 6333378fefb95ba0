package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-records-go/library/shell/config"
)

const serviceName = "libraryd"

type rootOptions struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Library records service",
		Long: `libraryd keeps the records of a library: authors, books, borrowers and loans.

Configuration is read from the environment, optionally seeded from an .env file.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional .env file to load before reading the environment")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newUserCommand(opts),
	)

	return root
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.envFile)
}
