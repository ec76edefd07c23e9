package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startTestServer runs a hub and an upgrade endpoint that identifies
// clients by the "user" query parameter.
func startTestServer(t *testing.T) string {
	t.Helper()

	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		user := r.URL.Query().Get("user")
		NewClient(hub, conn, user, user).Start()
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func joinProject(t *testing.T, conn *websocket.Conn, projectID string) {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"type": "join-project", "projectId": projectID}); err != nil {
		t.Fatalf("join %s: %v", projectID, err)
	}
}

func TestHubJoinBroadcastsUserJoined(t *testing.T) {
	url := startTestServer(t)

	alice := dial(t, url+"?user=alice")
	joinProject(t, alice, "p1")
	// Reading back a self-relayed event confirms the join was processed.
	if err := alice.WriteJSON(map[string]string{"type": "task-updated", "projectId": "p1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if env := readEnvelope(t, alice); env.Type != EventTaskUpdated {
		t.Fatalf("type = %q, want %q", env.Type, EventTaskUpdated)
	}

	bob := dial(t, url+"?user=bob")
	joinProject(t, bob, "p1")

	env := readEnvelope(t, alice)
	if env.Type != EventUserJoined {
		t.Errorf("type = %q, want %q", env.Type, EventUserJoined)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["username"] != "bob" {
		t.Errorf("data = %v, want username bob", env.Data)
	}
}

func TestClientRelaysTaskEventsToRoom(t *testing.T) {
	url := startTestServer(t)

	alice := dial(t, url+"?user=alice")
	joinProject(t, alice, "p1")
	if err := alice.WriteJSON(map[string]string{"type": "task-updated", "projectId": "p1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readEnvelope(t, alice) // alice is now in the room

	bob := dial(t, url+"?user=bob")
	joinProject(t, bob, "p1")

	payload := map[string]interface{}{"taskId": "t1", "status": "done"}
	if err := bob.WriteJSON(map[string]interface{}{"type": "task-updated", "projectId": "p1", "data": payload}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Alice sees bob join, then bob's update.
	if env := readEnvelope(t, alice); env.Type != EventUserJoined {
		t.Fatalf("type = %q, want %q", env.Type, EventUserJoined)
	}
	env := readEnvelope(t, alice)
	if env.Type != EventTaskUpdated || env.ProjectID != "p1" {
		t.Errorf("envelope = %+v, want task-updated for p1", env)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["taskId"] != "t1" || data["status"] != "done" {
		t.Errorf("data = %v, want relayed payload", env.Data)
	}

	// The sender receives its own relay too.
	if env := readEnvelope(t, bob); env.Type != EventTaskUpdated {
		t.Errorf("sender envelope type = %q, want %q", env.Type, EventTaskUpdated)
	}
}

func TestRelayDoesNotLeakAcrossRooms(t *testing.T) {
	url := startTestServer(t)

	alice := dial(t, url+"?user=alice")
	joinProject(t, alice, "p2")
	if err := alice.WriteJSON(map[string]string{"type": "task-updated", "projectId": "p2"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readEnvelope(t, alice)

	bob := dial(t, url+"?user=bob")
	joinProject(t, bob, "p1")
	if err := bob.WriteJSON(map[string]string{"type": "task-updated", "projectId": "p1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readEnvelope(t, bob) // bob's own relay; alice must see nothing

	alice.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var env Envelope
	if err := alice.ReadJSON(&env); err == nil {
		t.Errorf("received %+v from a room alice never joined", env)
	}
}

func TestEnvelopeWireFormat(t *testing.T) {
	data, err := json.Marshal(Envelope{Type: EventUserLeft, Data: map[string]string{"username": "carol"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"user-left","data":{"username":"carol"}}`
	if string(data) != want {
		t.Errorf("wire = %s, want %s", data, want)
	}
}
