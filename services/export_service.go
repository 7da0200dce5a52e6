package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ExportStatus is the lifecycle state of a simulated document preparation.
type ExportStatus string

const (
	ExportRunning   ExportStatus = "running"
	ExportCompleted ExportStatus = "completed"
	ExportCancelled ExportStatus = "cancelled"
)

// ExportTask tracks one simulated "prepare download" run. No real file is
// produced; the task exists so the client can render progress and the run can
// be cancelled explicitly instead of leaking a free-running timer.
type ExportTask struct {
	ID       string       `json:"id"`
	FileName string       `json:"file_name"`
	Status   ExportStatus `json:"status"`
	Progress int          `json:"progress"` // 0-100
}

// ExportService runs cancellable simulated export tasks.
type ExportService interface {
	Start(fileName string) *ExportTask
	Get(id string) *ExportTask
	Cancel(id string) bool
}

type exportService struct {
	mu      sync.Mutex
	tasks   map[string]*ExportTask
	cancels map[string]chan struct{}
	tick    time.Duration
}

// NewExportService creates an ExportService. tick controls how often progress
// advances; tests pass a short tick.
func NewExportService(tick time.Duration) ExportService {
	if tick <= 0 {
		tick = 200 * time.Millisecond
	}
	return &exportService{
		tasks:   make(map[string]*ExportTask),
		cancels: make(map[string]chan struct{}),
		tick:    tick,
	}
}

// Start begins a simulated export and returns its initial state.
func (s *exportService) Start(fileName string) *ExportTask {
	task := &ExportTask{
		ID:       uuid.NewString(),
		FileName: fileName,
		Status:   ExportRunning,
	}
	done := make(chan struct{})

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.cancels[task.ID] = done
	s.mu.Unlock()

	go s.run(task.ID, done)
	log.Printf("INFO: [ExportService] Started export task %s for '%s'.", task.ID, fileName)
	return s.Get(task.ID)
}

func (s *exportService) run(id string, done chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			task, ok := s.tasks[id]
			if !ok || task.Status != ExportRunning {
				s.mu.Unlock()
				return
			}
			task.Progress += 10
			if task.Progress >= 100 {
				task.Progress = 100
				task.Status = ExportCompleted
				delete(s.cancels, id)
				s.mu.Unlock()
				log.Printf("INFO: [ExportService] Export task %s completed.", id)
				return
			}
			s.mu.Unlock()
		}
	}
}

// Get returns a snapshot of the task, or nil if unknown.
func (s *exportService) Get(id string) *ExportTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil
	}
	snapshot := *task
	return &snapshot
}

// Cancel stops a running task. Cancelling a finished or unknown task reports
// false.
func (s *exportService) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status != ExportRunning {
		return false
	}
	task.Status = ExportCancelled
	if done, ok := s.cancels[id]; ok {
		close(done)
		delete(s.cancels, id)
	}
	log.Printf("INFO: [ExportService] Export task %s cancelled at %d%%.", id, task.Progress)
	return true
}
