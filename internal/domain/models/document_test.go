package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFolderSetInsertionOrder(t *testing.T) {
	fs := NewFolderSet()
	fs.Add(Document{ID: "1", Folder: "beta"})
	fs.Add(Document{ID: "2", Folder: "alpha"})
	fs.Add(Document{ID: "3", Folder: "beta"})

	names := fs.Names()
	if len(names) != 2 || names[0] != "beta" || names[1] != "alpha" {
		t.Errorf("names = %v, want [beta alpha]", names)
	}

	beta := fs.Get("beta")
	if len(beta) != 2 || beta[0].ID != "1" || beta[1].ID != "3" {
		t.Errorf("beta bucket = %v", beta)
	}

	if fs.Get("missing") != nil {
		t.Error("absent folder should return nil")
	}
}

func TestFolderSetMarshalJSONKeyOrder(t *testing.T) {
	fs := NewFolderSet()
	fs.Add(Document{ID: "1", Folder: "zulu"})
	fs.Add(Document{ID: "2", Folder: "alpha"})
	fs.Add(Document{ID: "3", Folder: "mike"})

	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	zulu := strings.Index(s, `"zulu"`)
	alpha := strings.Index(s, `"alpha"`)
	mike := strings.Index(s, `"mike"`)
	if zulu == -1 || alpha == -1 || mike == -1 {
		t.Fatalf("missing keys in %s", s)
	}
	if !(zulu < alpha && alpha < mike) {
		t.Errorf("keys not in insertion order: %s", s)
	}

	// Round-trips as a plain object.
	var decoded map[string][]Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("decoded %d folders, want 3", len(decoded))
	}
}

func TestFolderSetMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewFolderSet())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty set = %s, want {}", data)
	}
}

func TestStatusCountsJSONKeys(t *testing.T) {
	data, err := json.Marshal(StatusCounts{InProgress: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"in-progress":2`) {
		t.Errorf("in-progress key missing: %s", data)
	}
}

func TestProjectVisibleTo(t *testing.T) {
	p := Project{
		OwnerID: "owner",
		Members: []Member{{UserID: "member", Role: MemberRoleViewer}},
	}

	tests := []struct {
		userID string
		want   bool
	}{
		{"owner", true},
		{"member", true},
		{"stranger", false},
	}
	for _, tt := range tests {
		if got := p.VisibleTo(tt.userID); got != tt.want {
			t.Errorf("VisibleTo(%q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
