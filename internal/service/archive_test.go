package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/services"
)

func newArchiveFixture(t *testing.T) (services.ArchiveService, *models.Project) {
	t.Helper()
	projects := newMemProjectRepo()
	tasks := newMemTaskRepo()

	project := &models.Project{
		Name:    "Launch Plan",
		OwnerID: "owner",
		Members: []models.Member{{UserID: "admin", Role: models.MemberRoleAdmin}},
		Attachments: []models.Attachment{
			{Name: "brief.pdf", URL: "https://files/brief.pdf"},
		},
	}
	ctx := context.Background()
	if err := projects.Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	for _, title := range []string{"Write launch copy", "Press release"} {
		task := &models.Task{ProjectID: project.ID, Title: title, CreatorID: "owner"}
		if err := tasks.Create(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	return NewArchiveService(projects, tasks, testLogger()), project
}

func zipEntryNames(t *testing.T, data []byte) map[string]bool {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading produced archive: %v", err)
	}
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func TestExportProject(t *testing.T) {
	svc, project := newArchiveFixture(t)

	var buf bytes.Buffer
	name, err := svc.ExportProject(context.Background(), project.ID, "owner", &buf)
	if err != nil {
		t.Fatalf("ExportProject: %v", err)
	}
	if !strings.HasPrefix(name, "project_launch_plan_") || !strings.HasSuffix(name, ".zip") {
		t.Errorf("file name = %q", name)
	}

	names := zipEntryNames(t, buf.Bytes())
	if !names["project_data.json"] {
		t.Error("project_data.json missing")
	}
	if !names["README.txt"] {
		t.Error("README.txt missing")
	}
	if !names["tasks/task_1_write_launch_copy.json"] || !names["tasks/task_2_press_release.json"] {
		t.Errorf("task entries missing, have %v", names)
	}
}

func TestExportProjectForbidden(t *testing.T) {
	svc, project := newArchiveFixture(t)

	_, err := svc.ExportProject(context.Background(), project.ID, "stranger", io.Discard)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want forbidden", err)
	}
}

func TestExportAll(t *testing.T) {
	svc, project := newArchiveFixture(t)

	var buf bytes.Buffer
	name, err := svc.ExportAll(context.Background(), "owner", &buf)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if !strings.HasPrefix(name, "all_projects_") {
		t.Errorf("file name = %q", name)
	}

	names := zipEntryNames(t, buf.Bytes())
	if !names["projects_list.json"] {
		t.Error("projects_list.json missing")
	}
	if !names["projects/launch_plan/project_data.json"] {
		t.Errorf("per-project entries missing, have %v (project %s)", names, project.ID)
	}
}

func TestInspect(t *testing.T) {
	svc, project := newArchiveFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if _, err := svc.ExportProject(ctx, project.ID, "owner", &buf); err != nil {
		t.Fatalf("ExportProject: %v", err)
	}

	inspection, err := svc.Inspect(ctx, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	// project_data.json, two tasks, README.txt
	if inspection.TotalFiles != 4 {
		t.Errorf("totalFiles = %d, want 4", inspection.TotalFiles)
	}
	for i := 1; i < len(inspection.Files); i++ {
		if inspection.Files[i-1].Name > inspection.Files[i].Name {
			t.Errorf("entries not sorted by name: %q before %q", inspection.Files[i-1].Name, inspection.Files[i].Name)
		}
	}
	for _, f := range inspection.Files {
		if strings.HasSuffix(f.Name, ".json") && f.Type != "json" {
			t.Errorf("%s type = %q, want json", f.Name, f.Type)
		}
	}
}

func TestInspectCorruptArchive(t *testing.T) {
	svc, _ := newArchiveFixture(t)

	junk := []byte("this is not a zip file")
	_, err := svc.Inspect(context.Background(), bytes.NewReader(junk), int64(len(junk)))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestImportProject(t *testing.T) {
	svc, project := newArchiveFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"project_data.json":     `{"name":"Imported"}`,
		"tasks/task_1_todo.json": `{"title":"Restored task"}`,
		"tasks/broken.json":      `{not json`,
		"notes.txt":              "free text",
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	// Admin members may import, strangers may not.
	if _, err := svc.ImportProject(ctx, project.ID, "stranger", bytes.NewReader(buf.Bytes()), int64(buf.Len())); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger import: err = %v, want forbidden", err)
	}

	result, err := svc.ImportProject(ctx, project.ID, "admin", bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ImportProject: %v", err)
	}

	if result.ImportedFiles != 3 {
		t.Errorf("importedFiles = %d, want 3", result.ImportedFiles)
	}
	if len(result.Errors) != 1 || result.Errors[0].File != "tasks/broken.json" {
		t.Errorf("errors = %v, want one for tasks/broken.json", result.Errors)
	}

	types := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		types[f.Name] = f.Type
	}
	if types["project_data.json"] != "project_data" {
		t.Errorf("project_data.json type = %q", types["project_data.json"])
	}
	if types["tasks/task_1_todo.json"] != "task_data" {
		t.Errorf("task entry type = %q", types["tasks/task_1_todo.json"])
	}
	if types["notes.txt"] != "other" {
		t.Errorf("notes.txt type = %q", types["notes.txt"])
	}
}
