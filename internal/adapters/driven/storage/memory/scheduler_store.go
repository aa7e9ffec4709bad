// Package memory provides in-memory implementations of the driven store ports.
// State lives only as long as the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Ensure SchedulerStore implements the interface.
var _ driven.SchedulerStore = (*SchedulerStore)(nil)

// SchedulerStore is an in-memory implementation of driven.SchedulerStore.
type SchedulerStore struct {
	mu      sync.RWMutex
	tasks   map[string]domain.ScheduledTask
	results map[string][]domain.TaskResult
}

// NewSchedulerStore creates a new in-memory scheduler store.
func NewSchedulerStore() *SchedulerStore {
	return &SchedulerStore{
		tasks:   make(map[string]domain.ScheduledTask),
		results: make(map[string][]domain.TaskResult),
	}
}

// GetTask retrieves a scheduled task by ID.
// Returns nil and no error if the task does not exist.
func (s *SchedulerStore) GetTask(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

// ListTasks returns all scheduled tasks ordered by ID.
func (s *SchedulerStore) ListTasks(_ context.Context) ([]domain.ScheduledTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// SaveTask stores or updates a task.
func (s *SchedulerStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

// RecordResult appends a task execution result.
func (s *SchedulerStore) RecordResult(_ context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.TaskID] = append(s.results[result.TaskID], *result)
	return nil
}

// GetTaskHistory returns up to limit results, most recent first.
func (s *SchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := s.results[taskID]
	history := make([]domain.TaskResult, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		if limit > 0 && len(history) == limit {
			break
		}
		history = append(history, results[i])
	}
	return history, nil
}

// PruneHistory keeps the most recent keep results per task.
func (s *SchedulerStore) PruneHistory(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, results := range s.results {
		if len(results) > keep {
			s.results[id] = append([]domain.TaskResult(nil), results[len(results)-keep:]...)
		}
	}
	return nil
}
