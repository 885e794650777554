// Package main is the entry point for the walletclaw CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flemzord/walletclaw/internal/core"
	"github.com/flemzord/walletclaw/pkg/app"

	// Module registrations.
	_ "github.com/flemzord/walletclaw/internal/gateway"
	_ "github.com/flemzord/walletclaw/internal/telemetry"
	_ "github.com/flemzord/walletclaw/modules/channel/telegram"
	_ "github.com/flemzord/walletclaw/modules/provider/gemini"
	_ "github.com/flemzord/walletclaw/modules/tool/moneylover"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "walletclaw",
		Short:         "A Telegram-facing conversational wallet assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), startCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and compiled modules",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("walletclaw %s (commit: %s, built: %s)\n", version, commit, date)
			mods := core.GetModules()
			if len(mods) == 0 {
				fmt.Println("\nNo compiled modules.")
				return
			}
			fmt.Println("\nCompiled modules:")
			for _, mod := range mods {
				fmt.Printf("  %s\n", mod.ID)
			}
		},
	}
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start walletclaw with all configured modules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return app.Run(app.RunParams{
				ConfigPath: cfgPath,
				Version:    version,
				Commit:     commit,
				Date:       date,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			if err := app.CheckConfig(path); err != nil {
				return err
			}
			fmt.Println("Configuration OK")
			return nil
		},
	})
	return cmd
}
