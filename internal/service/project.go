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

type projectService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a project business logic service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required,
			validation.Length(config.MinProjectNameLength, config.MaxProjectNameLength)),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxProjectDescriptionLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := req.Category
	if category == "" {
		category = models.CategoryDevelopment
	}
	if !models.ValidCategory(category) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid category: %s", category)}
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.UserID,
		Category:    category,
		Status:      models.ProjectStatusPlanning,
		Priority:    models.TaskPriorityMedium,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Tags:        []string{},
		Attachments: []models.Attachment{},
		// The creator joins their own project as an admin member.
		Members: []models.Member{{
			UserID:   req.UserID,
			Role:     models.MemberRoleAdmin,
			JoinedAt: time.Now(),
		}},
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "project_id", project.ID, "owner_id", project.OwnerID)
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(userID) {
		return nil, &domain.ForbiddenError{Message: "access denied"}
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.ListVisible(ctx, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, &domain.ForbiddenError{Message: "only the owner can update a project"}
	}

	if req.Name != nil {
		if len(*req.Name) < config.MinProjectNameLength || len(*req.Name) > config.MaxProjectNameLength {
			return nil, &domain.ValidationError{Message: "project name length is out of range"}
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > config.MaxProjectDescriptionLength {
			return nil, &domain.ValidationError{Message: "project description is too long"}
		}
		project.Description = *req.Description
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid category: %s", *req.Category)}
		}
		project.Category = *req.Category
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.ValidTaskPriority(*req.Priority) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid priority: %s", *req.Priority)}
		}
		project.Priority = *req.Priority
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, &domain.ValidationError{Message: "progress must be between 0 and 100"}
		}
		project.Progress = *req.Progress
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) AddMember(ctx context.Context, id, userID string, req *services.AddMemberRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, &domain.ForbiddenError{Message: "only the owner can add members"}
	}

	if req.UserID == "" {
		return nil, &domain.ValidationError{Message: "userId is required"}
	}
	role := req.Role
	if role == "" {
		role = models.MemberRoleViewer
	}
	if role != models.MemberRoleViewer && role != models.MemberRoleEditor && role != models.MemberRoleAdmin {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid member role: %s", role)}
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if project.HasMember(req.UserID) {
		return nil, &domain.ConflictError{Message: "user is already a member"}
	}

	project.Members = append(project.Members, models.Member{
		UserID:   req.UserID,
		Role:     role,
		JoinedAt: time.Now(),
	})

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return &domain.ForbiddenError{Message: "only the owner can delete a project"}
	}

	// Tasks and the project row go together or not at all.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.taskRepo.DeleteByProject(txCtx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", id, "owner_id", userID)
	return nil
}

func (s *projectService) GetTaskStats(ctx context.Context, id, userID string) (*services.ProjectTaskStats, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(userID) {
		return nil, &domain.ForbiddenError{Message: "access denied"}
	}

	tasks, err := s.taskRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &services.ProjectTaskStats{Total: len(tasks)}
	now := time.Now()
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case models.TaskStatusTodo:
			stats.Todo++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusReview:
			stats.Review++
		case models.TaskStatusDone:
			stats.Done++
		case models.TaskStatusBlocked:
			stats.Blocked++
		}
		if t.Priority == models.TaskPriorityHigh || t.Priority == models.TaskPriorityUrgent {
			stats.HighPriority++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.TaskStatusDone {
			stats.Overdue++
		}
	}
	return stats, nil
}
