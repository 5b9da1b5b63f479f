package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	v1 "github.com/kubev2v/handoff/api/v1"
	"github.com/kubev2v/handoff/internal/config"
	"github.com/kubev2v/handoff/pkg/client"
)

func newSubmitCommand(a *app) *cobra.Command {
	var (
		serverURL string
		token     string
		basic     bool
		wait      bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one item to a running server",
		Long:  "Submit one item to a running server. --contains overrides the server substring for constrained items.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.NewClient(serverURL, client.WithBearerToken(token))
			if err != nil {
				return err
			}

			req := v1.WorkRequest{}
			if basic {
				kind := v1.WorkKindBasic
				req.Kind = &kind
			} else if cmd.Flags().Changed("contains") {
				req.Contains = &a.cfg.Work.Contains
			}

			work, err := c.SubmitWork(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to submit work: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("submitted"), work.Id)
			if !wait {
				return nil
			}

			work, err = c.WaitForWork(cmd.Context(), work.Id, interval)
			if err != nil {
				return err
			}
			if work.Error != nil {
				fmt.Fprintln(out, color.RedString(*work.Error))
				return fmt.Errorf("work %s failed", work.Id)
			}
			fmt.Fprintln(out, color.GreenString(*work.Identifier))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&serverURL, "server", fmt.Sprintf("http://localhost:%d", config.NewConfigurationWithDefaults().Server.HTTPPort), "Base URL of the handoff server")
	flags.StringVar(&token, "token", "", "Bearer token sent to the server")
	flags.BoolVar(&basic, "basic", false, "Submit a basic item")
	flags.BoolVar(&wait, "wait", true, "Wait for the result")
	flags.DurationVar(&interval, "wait-interval", 100*time.Millisecond, "Polling interval while waiting")

	return cmd
}
