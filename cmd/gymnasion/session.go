package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/gymnasion/internal/cli"
	"github.com/aretw0/gymnasion/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored sessions",
	Long:  `List, inspect, and remove sessions kept by the configured store (the file store by default).`,
}

func openSessions(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadPersistentConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, nil)
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sessions, err := app.Engine.Sessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Sessions:")
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		asMarkdown, _ := cmd.Flags().GetBool("markdown")

		app, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.Engine.Session(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", sessionID, err)
		}

		out := cmd.OutOrStdout()
		if asMarkdown {
			md := tui.SessionMarkdown(sess)
			render, err := tui.NewRenderer()
			if err == nil {
				if rendered, err := render(md); err == nil {
					md = rendered
				}
			}
			fmt.Fprint(out, md)
			return nil
		}

		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling session: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [session-id]...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("name at least one session, or pass --all")
		}

		app, err := openSessions(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ids := args
		if all {
			if ids, err = app.Engine.Sessions(cmd.Context()); err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
		}

		var errs []error
		out := cmd.OutOrStdout()
		for _, sessionID := range ids {
			if err := app.Engine.Delete(cmd.Context(), sessionID); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", sessionID, err))
				continue
			}
			fmt.Fprintf(out, "Removed session '%s'\n", sessionID)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionInspectCmd.Flags().Bool("markdown", false, "Render a readable summary instead of JSON")
	sessionRmCmd.Flags().Bool("all", false, "Remove every stored session")
}
