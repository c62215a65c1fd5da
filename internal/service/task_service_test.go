package service

import (
	"context"
	"testing"
	"time"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewTaskService(db, repository.NewGormTaskRepository(), repository.NewGormUserRepository())
	return svc, db
}

func TestTaskService_GetUserTasks_GeneratesDailySet(t *testing.T) {
	ctx := context.Background()
	svc, db := newTaskService(t)
	user := createTestUser(t, db, "tasks@example.com", 0)

	tasks, err := svc.GetUserTasks(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, model.DailyTaskCount)

	titles := map[string]bool{}
	for _, template := range model.DailyTaskTemplates {
		titles[template.Title] = true
	}
	for _, task := range tasks {
		assert.True(t, titles[task.Title], "task %q must come from the template pool", task.Title)
		assert.NotEmpty(t, task.Icon)
		assert.NotEmpty(t, task.Color)
		assert.NotEmpty(t, task.ProgressColor)
		assert.GreaterOrEqual(t, task.ProgressPercent, 0.0)
		assert.LessOrEqual(t, task.ProgressPercent, 1.0)
	}
}

func TestTaskService_GetUserTasks_SameDayIsStable(t *testing.T) {
	ctx := context.Background()
	svc, db := newTaskService(t)
	user := createTestUser(t, db, "stable@example.com", 0)

	first, err := svc.GetUserTasks(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.GetUserTasks(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, second, model.DailyTaskCount)
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
	}

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, model.DailyTaskCount, count, "a second fetch must not regenerate tasks")
}

func TestTaskService_GetUserTasks_PrunesOldAndRegenerates(t *testing.T) {
	ctx := context.Background()
	svc, db := newTaskService(t)
	user := createTestUser(t, db, "prune@example.com", 0)

	stale := &model.Task{
		UserID: user.ID,
		Title:  "old task",
	}
	require.NoError(t, db.Create(stale).Error)
	// Backdate past the 7 day retention window.
	require.NoError(t, db.Model(stale).Update("created_at", time.Now().AddDate(0, 0, -8)).Error)

	tasks, err := svc.GetUserTasks(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, model.DailyTaskCount)

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Where("user_id = ? AND title = ?", user.ID, "old task").Count(&count).Error)
	assert.EqualValues(t, 0, count, "tasks older than a week are pruned")
}

func TestTaskService_GetUserTasks_ResponseDefaults(t *testing.T) {
	ctx := context.Background()
	svc, db := newTaskService(t)
	user := createTestUser(t, db, "defaults@example.com", 0)

	bare := &model.Task{
		UserID:          user.ID,
		Title:           "today's bare task",
		ProgressPercent: 50,
	}
	require.NoError(t, db.Create(bare).Error)

	tasks, err := svc.GetUserTasks(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	var item *model.TaskItemResponse
	for i := range tasks {
		if tasks[i].Title == "today's bare task" {
			item = &tasks[i]
		}
	}
	require.NotNil(t, item)
	assert.Equal(t, "task", item.Icon)
	assert.Equal(t, "#000000", item.Color)
	assert.Equal(t, "#FFD700", item.ProgressColor)
	assert.InDelta(t, 0.5, item.ProgressPercent, 1e-9)
}

func TestTaskService_GetUserTasks_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	_, err := svc.GetUserTasks(ctx, 424242)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
