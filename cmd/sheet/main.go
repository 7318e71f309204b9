// Package main is the entry point for the character sheet CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

var (
	envFile    string
	storeFlag  string
	playerFlag string
	timeout    time.Duration
	jsonOutput bool

	sheet *app
)

var rootCmd = &cobra.Command{
	Use:   "sheet",
	Short: "D&D 5e character sheet",
	Long: `sheet keeps 5e character sheets in a local SQLite file or Redis and
computes the derived statistics: armor class, initiative, hit points,
proficiency bonus, passive perception and the proficiency lists.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), appOptions{
			EnvFile:  envFile,
			Store:    storeFlag,
			PlayerID: playerFlag,
		})
		if err != nil {
			return err
		}
		sheet = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read configuration from this .env file (default ./.env)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Override SHEET_STORE (sqlite, redis, memory)")
	rootCmd.PersistentFlags().StringVar(&playerFlag, "player", "", "Override PLAYER_ID")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for a single command")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print characters as JSON")

	rootCmd.AddCommand(createCmd, showCmd, listCmd, deleteCmd, statsCmd)
	rootCmd.AddCommand(avatarCmd, expCmd, levelUpCmd, identityCmd)
	rootCmd.AddCommand(hpCmd, maxHPCmd, statusCmd, deathSavesCmd)
	rootCmd.AddCommand(abilitiesCmd, savesCmd, skillCmd, toggleCmd, coinCmd)
	rootCmd.AddCommand(noteCmd, equipCmd, weaponCmd, spellCmd, slotCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if sheet != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if closeErr := sheet.close(closeCtx); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
		}
		cancel()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps app errors onto exit statuses. Flag and argument errors
// from cobra carry no code and count as usage errors.
func exitCode(err error) int {
	var appErr *errors.Error
	if !errors.As(err, &appErr) {
		return errors.CodeInvalidArgument.ExitCode()
	}
	return appErr.Code.ExitCode()
}
