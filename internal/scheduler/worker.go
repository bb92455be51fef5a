package scheduler

import (
	"context"
	"fmt"

	"party_phonecountry/platform/config"
	"party_phonecountry/platform/logger"

	"github.com/hibiken/asynq"
)

// Renormalizer runs a renormalization pass over the stored contacts.
type Renormalizer interface {
	Renormalize(ctx context.Context, requestedBy string, batchSize int) (scanned int, updated int, err error)
}

type Worker struct {
	server       *asynq.Server
	mux          *asynq.ServeMux
	renormalizer Renormalizer
	log          *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, renormalizer Renormalizer, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 2
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger: newAsynqLogger(log),
	})

	w := &Worker{
		server:       server,
		renormalizer: renormalizer,
		log:          log,
	}
	w.mux = w.newMux()
	return w, nil
}

func (w *Worker) newMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRenormalizeContacts, w.handleRenormalizeContacts)
	return mux
}

func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker failed to start", "error", err)
		return err
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}

func (w *Worker) handleRenormalizeContacts(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRenormalizeContactsPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	scanned, updated, err := w.renormalizer.Renormalize(ctx, payload.RequestedBy, payload.BatchSize)
	if err != nil {
		return err
	}

	w.log.Info("renormalize task finished",
		"requested_by", payload.RequestedBy,
		"scanned", scanned,
		"updated", updated,
	)
	return nil
}
