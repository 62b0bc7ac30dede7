package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/save"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Allocate a new cloud save profile",
		Long: `Ask the cloud save server for a fresh profile key. Without --remote a
key is generated locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.RemoteURL == "" {
				key := save.NewProfileKey()
				color.Yellow("No remote configured, generated a local key")
				fmt.Println(key)
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
			defer cancel()
			key, err := save.NewHTTPRemote(cfg.RemoteURL, remoteTimeout).Register(ctx)
			if err != nil {
				return fmt.Errorf("register profile: %w", err)
			}
			color.Green("Registered profile, use it with --profile %s", key)
			fmt.Println(key)
			return nil
		},
	}
}
