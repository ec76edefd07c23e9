package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"taskboard/internal/config"
	"taskboard/internal/domain/models"
	"taskboard/internal/repository/postgres"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixture file shapes. Users, projects, and tasks reference each other
// by username and project name; IDs are generated at insert time.
type (
	fixtures struct {
		Users    []userFixture    `yaml:"users"`
		Projects []projectFixture `yaml:"projects"`
	}

	userFixture struct {
		Username  string `yaml:"username"`
		Email     string `yaml:"email"`
		Password  string `yaml:"password"`
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Role      string `yaml:"role"`
	}

	memberFixture struct {
		Username string `yaml:"username"`
		Role     string `yaml:"role"`
	}

	attachmentFixture struct {
		Name       string `yaml:"name"`
		URL        string `yaml:"url"`
		UploadedBy string `yaml:"uploadedBy"`
	}

	taskFixture struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Status      string   `yaml:"status"`
		Priority    string   `yaml:"priority"`
		Category    string   `yaml:"category"`
		Creator     string   `yaml:"creator"`
		Assignee    string   `yaml:"assignee"`
		Tags        []string `yaml:"tags"`
		DueInDays   *int     `yaml:"dueInDays"`
	}

	projectFixture struct {
		Name        string              `yaml:"name"`
		Description string              `yaml:"description"`
		Owner       string              `yaml:"owner"`
		Category    string              `yaml:"category"`
		Status      string              `yaml:"status"`
		Members     []memberFixture     `yaml:"members"`
		Tags        []string            `yaml:"tags"`
		Attachments []attachmentFixture `yaml:"attachments"`
		Tasks       []taskFixture       `yaml:"tasks"`
	}
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed fixtures")
	clearData := flag.Bool("clear-data", false, "Clear all rows (keep schema)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing data...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared")
		return
	}

	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		log.Fatalf("Failed to parse fixtures: %v", err)
	}

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	if err := seed(ctx, repoConfig, &fx); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("✅ Seeded %d users and %d projects", len(fx.Users), len(fx.Projects))
}

func seed(ctx context.Context, repoConfig *postgres.RepositoryConfig, fx *fixtures) error {
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)

	userIDs := make(map[string]string, len(fx.Users))
	for _, uf := range fx.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", uf.Username, err)
		}

		role := uf.Role
		if role == "" {
			role = models.RoleUser
		}

		user := &models.User{
			Username:     uf.Username,
			Email:        uf.Email,
			PasswordHash: string(hash),
			FirstName:    uf.FirstName,
			LastName:     uf.LastName,
			Role:         role,
			Status:       models.UserStatusActive,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", uf.Username, err)
		}
		userIDs[uf.Username] = user.ID
	}

	now := time.Now()
	taskCount := 0
	for _, pf := range fx.Projects {
		ownerID, ok := userIDs[pf.Owner]
		if !ok {
			return fmt.Errorf("project %q references unknown owner %q", pf.Name, pf.Owner)
		}

		members := []models.Member{{UserID: ownerID, Role: models.MemberRoleAdmin, JoinedAt: now}}
		for _, mf := range pf.Members {
			memberID, ok := userIDs[mf.Username]
			if !ok {
				return fmt.Errorf("project %q references unknown member %q", pf.Name, mf.Username)
			}
			members = append(members, models.Member{UserID: memberID, Role: mf.Role, JoinedAt: now})
		}

		attachments := make([]models.Attachment, 0, len(pf.Attachments))
		for _, af := range pf.Attachments {
			attachments = append(attachments, models.Attachment{
				Name:       af.Name,
				URL:        af.URL,
				UploadedBy: af.UploadedBy,
				UploadedAt: now,
			})
		}

		status := pf.Status
		if status == "" {
			status = models.ProjectStatusPlanning
		}
		tags := pf.Tags
		if tags == nil {
			tags = []string{}
		}

		project := &models.Project{
			Name:        pf.Name,
			Description: pf.Description,
			OwnerID:     ownerID,
			Members:     members,
			Category:    pf.Category,
			Status:      status,
			Priority:    models.TaskPriorityMedium,
			Tags:        tags,
			Attachments: attachments,
		}
		if err := projectRepo.Create(ctx, project); err != nil {
			return fmt.Errorf("create project %q: %w", pf.Name, err)
		}

		for _, tf := range pf.Tasks {
			creatorID, ok := userIDs[tf.Creator]
			if !ok {
				return fmt.Errorf("task %q references unknown creator %q", tf.Title, tf.Creator)
			}

			status := tf.Status
			if status == "" {
				status = models.TaskStatusTodo
			}
			priority := tf.Priority
			if priority == "" {
				priority = models.TaskPriorityMedium
			}
			tags := tf.Tags
			if tags == nil {
				tags = []string{}
			}

			var dueDate *time.Time
			if tf.DueInDays != nil {
				due := now.AddDate(0, 0, *tf.DueInDays)
				dueDate = &due
			}

			task := &models.Task{
				ProjectID:   project.ID,
				Title:       tf.Title,
				Description: tf.Description,
				Status:      status,
				Priority:    priority,
				Category:    tf.Category,
				Tags:        tags,
				CreatorID:   creatorID,
				AssigneeID:  userIDs[tf.Assignee],
				DueDate:     dueDate,
			}
			if status == models.TaskStatusDone {
				task.CompletedDate = &now
			}
			if err := taskRepo.Create(ctx, task); err != nil {
				return fmt.Errorf("create task %q: %w", tf.Title, err)
			}
			taskCount++
		}
	}

	log.Printf("📝 Inserted %d tasks", taskCount)
	return nil
}
