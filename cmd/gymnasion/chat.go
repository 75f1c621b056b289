package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/internal/cli"
	"github.com/aretw0/gymnasion/internal/presentation/tui"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Write with gymnasion in the terminal",
	Long: `Starts an interactive session. Each line you write is answered; the session is
kept in the file store, so you can leave and pick it up later with the same --session.

Commands: :mode NAME, :status, :reset, exit.

With --json each input line is a request such as {"text": "...", "mode": "imitation"}
(or {"command": "status"}) and each answer is one JSON line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPersistentConfig(cmd)
		if err != nil {
			return err
		}
		sessionID, _ := cmd.Flags().GetString("session")
		modeName, _ := cmd.Flags().GetString("mode")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := cli.NewApp(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer app.Close()

		mode, ok := domain.ParseMode(modeName)
		if !ok && modeName != "" {
			app.Logger.Warn("unknown mode, using default", "mode", modeName, "default", mode)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			h := gymnasion.NewJSONHandler(cmd.InOrStdin(), cmd.OutOrStdout(), sessionID)
			h.Mode = mode
			return h.Serve(ctx, app.Engine)
		}

		r := gymnasion.NewRunner(sessionID)
		r.Input = cmd.InOrStdin()
		r.Output = cmd.OutOrStdout()
		r.Mode = mode

		// Banner, prompt and markdown only on a terminal; pipes get plain lines.
		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		r.Headless = !interactive
		if interactive {
			tui.PrintBanner(r.Output)
			r.Prompt = tui.Prompt(r.Output)
			if render, err := tui.NewRenderer(); err == nil {
				r.Renderer = render
			}
		}

		return r.Run(ctx, app.Engine)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "chat", "Session to write in")
	chatCmd.Flags().StringP("mode", "m", string(domain.DefaultMode), "Strategy mode")
	chatCmd.Flags().Uint64("seed", 0, "Seed every random choice (env GYMNASION_SEED)")
	chatCmd.Flags().Bool("json", false, "Speak JSON-lines instead of text, for programs")
}
