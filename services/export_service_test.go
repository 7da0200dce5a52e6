package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitForStatus(t *testing.T, service ExportService, id string, want ExportStatus) *ExportTask {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("task %s never reached status %s", id, want)
			return nil
		default:
			if task := service.Get(id); task != nil && task.Status == want {
				return task
			}
			time.Sleep(2 * time.Millisecond)
		}
	}
}

func TestExportService(t *testing.T) {
	t.Run("Task runs to completion at full progress", func(t *testing.T) {
		service := NewExportService(2 * time.Millisecond)

		task := service.Start("运营诊断报告.pdf")
		assert.Equal(t, ExportRunning, task.Status)
		assert.Equal(t, 0, task.Progress)
		assert.Equal(t, "运营诊断报告.pdf", task.FileName)

		finished := waitForStatus(t, service, task.ID, ExportCompleted)
		assert.Equal(t, 100, finished.Progress)
	})

	t.Run("Cancel stops a running task and freezes its progress", func(t *testing.T) {
		service := NewExportService(time.Hour) // never ticks during the test

		task := service.Start("报表.xlsx")
		assert.True(t, service.Cancel(task.ID))

		cancelled := service.Get(task.ID)
		assert.Equal(t, ExportCancelled, cancelled.Status)
		assert.Equal(t, 0, cancelled.Progress)

		// A cancelled task cannot be cancelled again.
		assert.False(t, service.Cancel(task.ID))
	})

	t.Run("Cancel after completion reports false", func(t *testing.T) {
		service := NewExportService(2 * time.Millisecond)

		task := service.Start("报表.xlsx")
		waitForStatus(t, service, task.ID, ExportCompleted)

		assert.False(t, service.Cancel(task.ID))
	})

	t.Run("Unknown task id", func(t *testing.T) {
		service := NewExportService(2 * time.Millisecond)

		assert.Nil(t, service.Get("no-such-task"))
		assert.False(t, service.Cancel("no-such-task"))
	})

	t.Run("Get returns a snapshot, not the live task", func(t *testing.T) {
		service := NewExportService(time.Hour)

		task := service.Start("快照.pdf")
		snapshot := service.Get(task.ID)
		snapshot.Progress = 999

		assert.Equal(t, 0, service.Get(task.ID).Progress)
	})
}
