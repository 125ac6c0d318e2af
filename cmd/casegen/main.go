package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	servecmder "github.com/papercomputeco/casegen/cmd/casegen/serve"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:          "casegen",
		Short:        "Generate manual test cases from UI screenshots",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(servecmder.NewServeCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
