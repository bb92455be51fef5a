package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/config"
	"party_phonecountry/platform/redisconn"

	"github.com/hibiken/asynq"
)

const renormalizeTimeout = 30 * time.Minute

// Client enqueues background jobs on the asynq queue.
type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return errors.Join(c.client.Close(), c.inspector.Close())
}

// EnqueueRenormalize queues a renormalization pass over every phone-kind
// contact. Only one pass can be queued or running at a time; an archived or
// completed pass is removed so a new one can take its id.
func (c *Client) EnqueueRenormalize(ctx context.Context, requestedBy string, batchSize int) (string, string, error) {
	task, err := NewRenormalizeContactsTask(RenormalizeContactsPayload{
		RequestedBy: requestedBy,
		BatchSize:   batchSize,
	})
	if err != nil {
		return "", "", err
	}

	info, err := c.enqueueRenormalize(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		var released bool
		released, err = c.releaseFinishedRenormalize()
		if err != nil {
			return "", "", err
		}
		if !released {
			return "", "", apperr.Conflict("a renormalization is already queued")
		}
		info, err = c.enqueueRenormalize(ctx, task)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return "", "", apperr.Conflict("a renormalization is already queued")
		}
	}
	if err != nil {
		return "", "", fmt.Errorf("enqueue renormalize: %w", err)
	}
	return info.ID, info.Queue, nil
}

func (c *Client) enqueueRenormalize(ctx context.Context, task *asynq.Task) (*asynq.TaskInfo, error) {
	return c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(renormalizeTaskID),
		asynq.Timeout(renormalizeTimeout),
		asynq.MaxRetry(3),
	)
}

// releaseFinishedRenormalize deletes the previous pass when it can no longer
// run and reports whether the task id is free again.
func (c *Client) releaseFinishedRenormalize() (bool, error) {
	info, err := c.inspector.GetTaskInfo(c.queue, renormalizeTaskID)
	if errors.Is(err, asynq.ErrTaskNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect renormalize task: %w", err)
	}

	switch info.State {
	case asynq.TaskStateArchived, asynq.TaskStateCompleted:
	default:
		return false, nil
	}

	if err := c.inspector.DeleteTask(c.queue, renormalizeTaskID); err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return false, fmt.Errorf("delete finished renormalize task: %w", err)
	}
	return true, nil
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	opt, err := redisconn.Options(cfg)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
