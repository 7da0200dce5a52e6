package repository

import (
	"testing"

	"coachhub/models"
	"coachhub/store"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	st, err := store.New(db)
	assert.NoError(t, err)
	return st
}

func TestPostRepository(t *testing.T) {
	t.Run("First read seeds the default posts", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))

		posts, err := repo.GetAll()

		assert.NoError(t, err)
		assert.Len(t, posts, 2)
		assert.Equal(t, "1001", posts[0].ID)
	})

	t.Run("New posts are prepended so the feed shows newest first", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))

		err := repo.Save(models.BlogPost{ID: "99", Title: "新文章", Author: "运营研究组"})

		assert.NoError(t, err)
		posts, _ := repo.GetAll()
		assert.Len(t, posts, 3)
		assert.Equal(t, "99", posts[0].ID)
	})

	t.Run("Saving a known id replaces it in place", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))
		repo.Save(models.BlogPost{ID: "99", Title: "初稿"})

		err := repo.Save(models.BlogPost{ID: "99", Title: "修订稿"})

		assert.NoError(t, err)
		posts, _ := repo.GetAll()
		assert.Len(t, posts, 3)
		assert.Equal(t, "修订稿", posts[0].Title)
	})

	t.Run("GetByID returns nil for an absent id", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))

		post, err := repo.GetByID("no-such-post")

		assert.NoError(t, err)
		assert.Nil(t, post)
	})

	t.Run("Create then delete leaves the collection unchanged", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))
		before, _ := repo.GetAll()

		assert.NoError(t, repo.Save(models.BlogPost{ID: "99", Title: "临时"}))
		assert.NoError(t, repo.Delete("99"))

		after, err := repo.GetAll()
		assert.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Deleting a missing id is a no-op", func(t *testing.T) {
		repo := NewPostRepository(newTestStore(t))
		before, _ := repo.GetAll()

		assert.NoError(t, repo.Delete("no-such-post"))

		after, _ := repo.GetAll()
		assert.Equal(t, before, after)
	})
}

func TestLessonRepository(t *testing.T) {
	t.Run("New lessons are appended in catalog order", func(t *testing.T) {
		repo := NewLessonRepository(newTestStore(t))
		seeded, _ := repo.GetAll()

		err := repo.Save(models.Lesson{ID: "9001", Title: "新课程"})

		assert.NoError(t, err)
		lessons, _ := repo.GetAll()
		assert.Len(t, lessons, len(seeded)+1)
		assert.Equal(t, "9001", lessons[len(lessons)-1].ID)
	})

	t.Run("Generated transcript persists onto the lesson", func(t *testing.T) {
		repo := NewLessonRepository(newTestStore(t))
		lesson, err := repo.GetByID("3001")
		assert.NoError(t, err)
		assert.NotNil(t, lesson)

		lesson.Transcript = []models.TranscriptLine{{Time: 0, Text: "重写的字幕"}}
		assert.NoError(t, repo.Save(*lesson))

		reloaded, _ := repo.GetByID("3001")
		assert.Equal(t, lesson.Transcript, reloaded.Transcript)
	})
}

func TestPermissionRepository(t *testing.T) {
	t.Run("Default matrix gates pro features for the free plan", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))

		config, err := repo.GetConfig()

		assert.NoError(t, err)
		assert.False(t, config.Free[CapDownloadResources])
		assert.True(t, config.Free[CapViewDashboard])
		assert.True(t, config.Pro[CapDownloadResources])
	})

	t.Run("Saved matrix edits survive a reload", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))
		config, _ := repo.GetConfig()
		config.Free[CapDownloadResources] = true

		assert.NoError(t, repo.SaveConfig(config))

		reloaded, _ := repo.GetConfig()
		assert.True(t, reloaded.Free[CapDownloadResources])
	})

	t.Run("Saving an empty config round-trips without losing the built-ins", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))

		assert.NoError(t, repo.SaveConfig(models.PermissionConfig{}))

		reloaded, err := repo.GetConfig()
		assert.NoError(t, err)
		assert.NotNil(t, reloaded.Free)
		assert.NotNil(t, reloaded.Pro)
		assert.True(t, reloaded.Pro[CapDownloadResources])
		assert.False(t, reloaded.Free[CapDownloadResources])
	})

	t.Run("A single null plan row is materialized on read", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))

		assert.NoError(t, repo.SaveConfig(models.PermissionConfig{
			Free: map[string]bool{CapViewDashboard: false},
		}))

		reloaded, err := repo.GetConfig()
		assert.NoError(t, err)
		assert.False(t, reloaded.Free[CapViewDashboard])
		assert.NotNil(t, reloaded.Pro)
		assert.True(t, reloaded.Pro[CapAIAssistant])
	})

	t.Run("Stored config missing a built-in key gets its default filled", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))
		config, _ := repo.GetConfig()
		delete(config.Free, CapCourseNotes)
		assert.NoError(t, repo.SaveConfig(config))

		reloaded, _ := repo.GetConfig()

		allowed, ok := reloaded.Free[CapCourseNotes]
		assert.True(t, ok)
		assert.False(t, allowed)
	})

	t.Run("Deleting a definition purges its matrix entries", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))
		custom := models.PermissionDefinition{ID: "p99", Key: "beta_reports", Label: "测试报表"}
		assert.NoError(t, repo.SaveDefinition(custom))

		config, _ := repo.GetConfig()
		config.Free["beta_reports"] = false
		config.Pro["beta_reports"] = true
		assert.NoError(t, repo.SaveConfig(config))

		assert.NoError(t, repo.DeleteDefinition("p99"))

		defs, _ := repo.GetDefinitions()
		for _, def := range defs {
			assert.NotEqual(t, "p99", def.ID)
		}
		reloaded, _ := repo.GetConfig()
		_, inFree := reloaded.Free["beta_reports"]
		_, inPro := reloaded.Pro["beta_reports"]
		assert.False(t, inFree)
		assert.False(t, inPro)
	})

	t.Run("Deleting an unknown definition is a no-op", func(t *testing.T) {
		repo := NewPermissionRepository(newTestStore(t))

		assert.NoError(t, repo.DeleteDefinition("no-such-def"))
	})
}

func TestSiteRepository(t *testing.T) {
	t.Run("Intro video singleton round-trips", func(t *testing.T) {
		repo := NewSiteRepository(newTestStore(t))

		video, err := repo.GetIntroVideo()
		assert.NoError(t, err)
		assert.NotEmpty(t, video.URL)

		video.Title = "新版介绍"
		assert.NoError(t, repo.SaveIntroVideo(video))

		reloaded, _ := repo.GetIntroVideo()
		assert.Equal(t, "新版介绍", reloaded.Title)
	})

	t.Run("Email log appends newest first", func(t *testing.T) {
		repo := NewSiteRepository(newTestStore(t))
		seeded, _ := repo.GetEmailLog()

		entry := models.EmailLog{ID: "e99", To: "ops@coachhub.cn", Subject: "诊断摘要"}
		assert.NoError(t, repo.AppendEmailLog(entry))

		entries, err := repo.GetEmailLog()
		assert.NoError(t, err)
		assert.Len(t, entries, len(seeded)+1)
		assert.Equal(t, "e99", entries[0].ID)
	})
}
