package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/uofr/moodle-block-export-quiz/internal/config"
	"github.com/uofr/moodle-block-export-quiz/pkg/auth"
)

// newTokenCmd выпускает тестовую сессию для локальной разработки
func newTokenCmd() *cobra.Command {
	var (
		userID  uint
		courses []uint
		caps    []string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			sessions, err := auth.NewSessionService(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.Audience)
			if err != nil {
				return err
			}

			claims := auth.SessionClaims{
				UserID:       userID,
				Sesskey:      uuid.NewString(),
				Courses:      courses,
				Capabilities: caps,
			}
			token, err := sessions.Issue(claims, ttl)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token:   %s\n", token)
			fmt.Fprintf(out, "sesskey: %s\n", claims.Sesskey)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 2, "user id")
	cmd.Flags().UintSliceVar(&courses, "course", nil, "enrolled course ids")
	cmd.Flags().StringSliceVar(&caps, "cap", nil, "granted capabilities")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
