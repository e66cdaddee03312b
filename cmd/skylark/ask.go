package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/skylark/internal/cli"
	"github.com/aretw0/skylark/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single business question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout)
		defer cancel()

		app, err := cli.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		opts := cli.AskOptions{ShowTools: true}
		plain, _ := cmd.Flags().GetBool("plain")
		if fd := int(os.Stdout.Fd()); !plain && term.IsTerminal(fd) {
			opts.Render = true
			if w, _, err := term.GetSize(fd); err == nil {
				opts.Width = w
			}
			if banner, _ := cmd.Flags().GetBool("banner"); banner {
				tui.PrintBanner(out)
			}
		}

		return cli.Ask(ctx, app.Turns, strings.Join(args, " "), out, opts)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Bool("plain", false, "Print the raw markdown answer")
	askCmd.Flags().Bool("banner", true, "Show the banner on interactive terminals")
}
