package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyRetention is how many results are kept per task.
const historyRetention = 20

// Scheduler runs the collection sync on a fixed interval.
// It replaces the external cron trigger when bindays runs as a server.
type Scheduler struct {
	config  domain.SchedulerConfig
	store   driven.SchedulerStore
	invoker driving.Invoker
	tick    time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	invoker driving.Invoker,
) *Scheduler {
	return &Scheduler{
		config:  config,
		store:   store,
		invoker: invoker,
		tick:    time.Minute,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for running tasks to complete
	s.wg.Wait()

	return nil
}

// initialiseTasks ensures all configured tasks exist in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	if taskCfg := s.config.GetTaskConfig(domain.TaskIDCollectionSync); taskCfg.Enabled {
		if err := s.ensureTask(ctx, domain.TaskIDCollectionSync, "Collection Sync", taskCfg); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates or updates a task in the store.
// A new task is due immediately.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  time.Now(),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = time.Now().Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, task)
		}
	}
}

// runTask executes a single task in the background. Its next run is pushed
// out before it starts so a slow run is not picked up again by the next tick.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	task.NextRun = time.Now().Add(task.Interval)
	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Warn("scheduler: failed to save task %s: %v", task.ID, err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDCollectionSync:
			result.ItemsProcessed, err = s.runCollectionSync(ctx)
		default:
			logger.Warn("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = time.Now()
		if err != nil {
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}
		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}
		if pruneErr := s.store.PruneHistory(ctx, historyRetention); pruneErr != nil {
			logger.Warn("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runCollectionSync performs one run and converts its response into a result.
func (s *Scheduler) runCollectionSync(ctx context.Context) (int, error) {
	if s.invoker == nil {
		return 0, nil
	}

	resp := s.invoker.Run(ctx)
	switch body := resp.Body.(type) {
	case domain.SummaryBody:
		if body.CalendarError != "" {
			return body.CalendarEvents, errors.New(body.CalendarError)
		}
		return body.CalendarEvents, nil
	case domain.FailureBody:
		return 0, errors.New(body.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("run returned status %d", resp.StatusCode)
	}
	return 0, nil
}
