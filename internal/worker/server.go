package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"earnings-service/internal/consumers"
	"earnings-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.CascadeProcessor
}

func NewWorker(processor *consumers.CascadeProcessor) *Worker {
	return &Worker{Processor: processor}
}

func (w *Worker) HandleReferralCascade(ctx context.Context, t *asynq.Task) error {
	var p services.ReferralCascadePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessReferralCascade(p)
}

func (w *Worker) HandleProfitRun(ctx context.Context, t *asynq.Task) error {
	var p services.ProfitRunPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessProfitRun(p)
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.CascadeProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(services.TaskReferralCascade, worker.HandleReferralCascade)
	mux.HandleFunc(services.TaskProfitRun, worker.HandleProfitRun)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker: %v", err)
	}
}
