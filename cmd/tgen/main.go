package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/syssam/tgen/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tgen",
		Short: "tgen - template driven project generator",
		Long: `tgen generates project files from a model of entities and a catalog of
targets. Each target names a template and the file and folder patterns of
the generated file; entity targets are generated once per entity.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.SQLCmd())
	rootCmd.AddCommand(cli.TargetsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
