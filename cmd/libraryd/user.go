package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-records-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-records-go/library/shell"
)

func newUserCommand(root *rootOptions) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	var username, password string

	add := &cobra.Command{
		Use:   "add",
		Short: "Register a user that can log in to the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := newLogger(cfg)

			store, err := openStorage(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer store.close()

			handler := registeruser.NewCommandHandler(shell.Dependencies{Engine: store.engine, Logger: logger})

			result, err := handler.Handle(ctx, registeruser.BuildCommand(username, password))
			if err != nil {
				return err
			}

			logger.InfoContext(ctx, "user registered", "user_id", result.Value.ID.String(), "username", result.Value.Username)

			return nil
		},
	}

	add.Flags().StringVar(&username, "username", "", "login name of the new user")
	add.Flags().StringVar(&password, "password", "", "password of the new user")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")

	user.AddCommand(add)

	return user
}
