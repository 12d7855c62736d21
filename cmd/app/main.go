package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	"github.com/spf13/cobra"

	"github.com/CedrusPay/sluice/internal/bootstrap"
)

// NewRootCommand builds the sluice command line surface.
func NewRootCommand() *cobra.Command {
	var options bootstrap.Options

	var logLevel string

	command := &cobra.Command{
		Use:           "sluice [input.csv]",
		Short:         "sluice streams client transactions into a final balance snapshot",
		Long:          "sluice consumes a stream of deposits, withdrawals and dispute events, applies them per client with strict ordering, and prints the resulting account snapshot to stdout.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) > 0 {
				options.InputPath = args[0]
			}

			if (options.Source == "" || options.Source == bootstrap.SourceCSV) && options.InputPath == "" {
				return errors.New("an input file is required for the csv source")
			}

			if logLevel != "" {
				// The logger reads LOG_LEVEL from the environment at init.
				os.Setenv("LOG_LEVEL", logLevel)
			}

			service, err := bootstrap.InitService(options)
			if err != nil {
				return err
			}

			return service.Run(command.Context())
		},
	}

	command.Flags().StringVar(&options.Source, "source", bootstrap.SourceCSV, "stream source: csv or amqp")
	command.Flags().IntVar(&options.BackpressureCapacity, "backpressure", 0, "ingest channel depth (default 256)")
	command.Flags().IntVar(&options.RegistryCapacity, "registry-capacity", 0, "maximum live account workers (default 5000)")
	command.Flags().DurationVar(&options.IdleTimeout, "idle-timeout", 0, "idle time before a worker is eviction-eligible (default 5m)")
	command.Flags().StringVar(&options.RabbitURI, "rabbit-uri", "", "amqp connection uri (amqp source)")
	command.Flags().StringVar(&options.RabbitQueue, "rabbit-queue", "", "queue to consume (amqp source)")
	command.Flags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info or debug (default error)")

	return command
}

func main() {
	libCommons.InitLocalEnvConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
