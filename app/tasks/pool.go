package tasks

import (
	"context"
	"log/slog"
	"sync"
)

var _ Runner = (*Pool)(nil)

type Pool struct {
	workerCount int
}

func NewPool(workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{workerCount: workerCount}
}

// Run executes every task in batch. With a single worker tasks run strictly
// in batch order. Failures are logged and left on the task; there are no
// retries.
func (p *Pool) Run(ctx context.Context, batch []TaskInterface) {
	if len(batch) == 0 {
		return
	}

	taskQueue := make(chan TaskInterface, len(batch))
	for _, task := range batch {
		taskQueue <- task
	}
	close(taskQueue)

	workers := min(p.workerCount, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, i, taskQueue, &wg)
	}
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int, taskQueue <-chan TaskInterface, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskQueue {
		p.executeTask(ctx, id, task)
	}
}

func (p *Pool) executeTask(ctx context.Context, workerID int, task TaskInterface) {
	task.Start()

	if err := task.Execute(ctx); err != nil {
		slog.WarnContext(ctx, "Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"source", task.GetSourceName(),
			"duration", task.GetDuration(),
			"error", err)
	}
}
