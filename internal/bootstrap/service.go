package bootstrap

import (
	"context"
	"io"
	"os"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libLog "github.com/LerianStudio/lib-commons/v2/commons/log"

	"github.com/CedrusPay/sluice/internal/adapters/csv"
	"github.com/CedrusPay/sluice/internal/adapters/storage"
	"github.com/CedrusPay/sluice/internal/services"
	"github.com/CedrusPay/sluice/pkg/mmodel"
)

// TransactionSource produces the transaction stream consumed by the engine.
// Implementations close out when the stream ends and return only setup
// failures.
type TransactionSource interface {
	Run(ctx context.Context, out chan<- *mmodel.Transaction) error
}

// Service is the application glue where we put all top level components to be
// used.
type Service struct {
	Engine     *services.Engine
	Repository storage.Repository
	Source     TransactionSource
	Logger     libLog.Logger

	// Output receives the final snapshot; stdout unless overridden. Logs go
	// to stderr so the snapshot stays clean for redirection.
	Output io.Writer

	config services.Config
}

// Run drives the pipeline end to end: source into the bounded ingest channel,
// engine until the stream drains, then the snapshot.
func (s *Service) Run(ctx context.Context) error {
	ctx = libCommons.ContextWithLogger(ctx, s.Logger)

	stream := make(chan *mmodel.Transaction, s.config.BackpressureCapacity)

	sourceResult := make(chan error, 1)

	go func() {
		sourceResult <- s.Source.Run(ctx, stream)
	}()

	started := time.Now()

	if err := s.Engine.Run(ctx, stream); err != nil {
		return err
	}

	if err := <-sourceResult; err != nil {
		return err
	}

	s.Logger.Infof("processed transactions in %s", time.Since(started))

	output := s.Output
	if output == nil {
		output = os.Stdout
	}

	return csv.NewSnapshotWriter(output).Write(s.Repository.All())
}
