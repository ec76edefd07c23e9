package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
	"taskboard/internal/domain/services"
)

// TaskNotifier pushes task change events to project subscribers. The
// websocket hub implements it; a no-op implementation is fine for tests.
type TaskNotifier interface {
	BroadcastTaskEvent(projectID, action string, task *models.Task)
}

type taskService struct {
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	notifier    TaskNotifier
	logger      *slog.Logger
}

// NewTaskService creates a task business logic service
func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	notifier TaskNotifier,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *taskService) CreateTask(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title, validation.Required,
			validation.Length(config.MinTaskTitleLength, config.MaxTaskTitleLength)),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxTaskDescriptionLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(req.UserID) {
		return nil, &domain.ForbiddenError{Message: "access denied"}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(priority) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid priority: %s", priority)}
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	task := &models.Task{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatusTodo,
		Priority:       priority,
		Category:       req.Category,
		Tags:           tags,
		CreatorID:      req.UserID,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Re-read to pick up the joined creator/assignee summaries.
	created, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.BroadcastTaskEvent(created.ProjectID, "created", created)
	s.logger.Info("task created", "task_id", created.ID, "project_id", created.ProjectID)
	return created, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *taskService) ListTasks(ctx context.Context, filter repositories.TaskFilter) ([]models.Task, error) {
	return s.taskRepo.ListFiltered(ctx, filter)
}

func (s *taskService) ListProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.taskRepo.ListByProject(ctx, projectID)
}

// canModify reports whether userID is the task's creator or assignee.
func canModify(task *models.Task, userID string) bool {
	return task.CreatorID == userID || task.AssigneeID == userID
}

func (s *taskService) UpdateTask(ctx context.Context, id, userID string, req *services.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(task, userID) {
		return nil, &domain.ForbiddenError{Message: "only the creator or assignee can update a task"}
	}

	if req.Title != nil {
		if len(*req.Title) < config.MinTaskTitleLength || len(*req.Title) > config.MaxTaskTitleLength {
			return nil, &domain.ValidationError{Message: "task title length is out of range"}
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > config.MaxTaskDescriptionLength {
			return nil, &domain.ValidationError{Message: "task description is too long"}
		}
		task.Description = *req.Description
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid status: %s", *req.Status)}
		}
		applyStatus(task, *req.Status)
	}
	if req.Priority != nil {
		if !models.ValidTaskPriority(*req.Priority) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid priority: %s", *req.Priority)}
		}
		task.Priority = *req.Priority
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = *req.EstimatedHours
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.BroadcastTaskEvent(updated.ProjectID, "updated", updated)
	return updated, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id, userID, status string) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid status: %s", status)}
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(task, userID) {
		return nil, &domain.ForbiddenError{Message: "only the creator or assignee can update a task"}
	}

	applyStatus(task, status)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.BroadcastTaskEvent(updated.ProjectID, "status-changed", updated)
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id, userID string) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.CreatorID != userID {
		return &domain.ForbiddenError{Message: "only the creator can delete a task"}
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.BroadcastTaskEvent(task.ProjectID, "deleted", task)
	s.logger.Info("task deleted", "task_id", id, "project_id", task.ProjectID)
	return nil
}

// applyStatus transitions a task's status, stamping completed_date on
// entering done and clearing it on leaving.
func applyStatus(task *models.Task, status string) {
	if status == models.TaskStatusDone && task.Status != models.TaskStatusDone {
		now := time.Now()
		task.CompletedDate = &now
	}
	if status != models.TaskStatusDone {
		task.CompletedDate = nil
	}
	task.Status = status
}
