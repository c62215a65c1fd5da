package service

import (
	"context"
	"math/rand"
	"time"

	"hangulhub/internal/middleware"
	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"gorm.io/gorm"
)

type TaskService interface {
	GetUserTasks(ctx context.Context, userID uint) ([]model.TaskItemResponse, error)
}

type taskService struct {
	db       *gorm.DB
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func NewTaskService(db *gorm.DB, taskRepo repository.TaskRepository, userRepo repository.UserRepository) TaskService {
	return &taskService{db: db, taskRepo: taskRepo, userRepo: userRepo}
}

// GetUserTasks returns today's tasks, generating a fresh random set of four
// on the first call of the day.
func (s *taskService) GetUserTasks(ctx context.Context, userID uint) ([]model.TaskItemResponse, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error loading tasks", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	today := todaysTasks(tasks)
	if len(today) == 0 {
		today, err = s.generateDailyTasks(ctx, userID)
		if err != nil {
			logger.Error("Error generating daily tasks", "error", err, "user_id", userID)
			return nil, model.ErrInternalServer
		}
	}

	if len(today) > model.DailyTaskCount {
		today = today[:model.DailyTaskCount]
	}

	responses := make([]model.TaskItemResponse, 0, len(today))
	for _, task := range today {
		responses = append(responses, newTaskItem(task))
	}
	return responses, nil
}

func (s *taskService) generateDailyTasks(ctx context.Context, userID uint) ([]*model.Task, error) {
	var created []*model.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cutoff := time.Now().AddDate(0, 0, -7)
		if err := s.taskRepo.DeleteCreatedBefore(ctx, tx, userID, cutoff); err != nil {
			return err
		}

		templates := make([]model.TaskTemplate, len(model.DailyTaskTemplates))
		copy(templates, model.DailyTaskTemplates)
		rand.Shuffle(len(templates), func(i, j int) {
			templates[i], templates[j] = templates[j], templates[i]
		})

		count := model.DailyTaskCount
		if count > len(templates) {
			count = len(templates)
		}
		tasks := make([]*model.Task, 0, count)
		for _, template := range templates[:count] {
			tasks = append(tasks, &model.Task{
				UserID:        userID,
				Title:         template.Title,
				IconName:      template.IconName,
				Color:         template.Color,
				ProgressColor: template.ProgressColor,
			})
		}
		if err := s.taskRepo.CreateBatch(ctx, tx, tasks); err != nil {
			return err
		}
		created = tasks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func todaysTasks(tasks []*model.Task) []*model.Task {
	now := time.Now()
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	today := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.CreatedAt.Before(start) {
			today = append(today, task)
		}
	}
	return today
}

func newTaskItem(task *model.Task) model.TaskItemResponse {
	icon := task.IconName
	if icon == "" {
		icon = "task"
	}
	color := task.Color
	if color == "" {
		color = "#000000"
	}
	progressColor := task.ProgressColor
	if progressColor == "" {
		progressColor = "#FFD700"
	}
	return model.TaskItemResponse{
		Title:           task.Title,
		Icon:            icon,
		Color:           color,
		ProgressColor:   progressColor,
		ProgressPercent: task.ProgressPercent / 100.0,
	}
}
