package services

import (
	"encoding/json"
	"testing"
	"time"

	"sysai-relay/backend/app/dto"
	"sysai-relay/backend/app/models"
)

type fakeQueue struct {
	queues map[string][]dto.Command
}

func newFakeQueue() *fakeQueue { return &fakeQueue{queues: map[string][]dto.Command{}} }

func (f *fakeQueue) Enqueue(agentID string, cmd dto.Command) error {
	f.queues[agentID] = append(f.queues[agentID], cmd)
	return nil
}

func (f *fakeQueue) Drain(agentID string) ([]dto.Command, error) {
	cmds := f.queues[agentID]
	delete(f.queues, agentID)
	return cmds, nil
}

type fakeResults struct {
	rows []models.CommandResult
}

func (f *fakeResults) Create(r *models.CommandResult) error {
	r.CreatedAt = time.Now()
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakeResults) ListByAgent(agentID string, limit int) ([]models.CommandResult, error) {
	var out []models.CommandResult
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].AgentID == agentID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func TestDrainReturnsFIFOOrderAndClears(t *testing.T) {
	svc := NewCommandService(newFakeQueue(), &fakeResults{})

	for _, id := range []string{"c1", "c2", "c3"} {
		if err := svc.Enqueue("a1", dto.Command{ID: id, Type: "run_shell", Payload: json.RawMessage(`{"cmd":"true"}`)}); err != nil {
			t.Fatalf("Enqueue %s: %v", id, err)
		}
	}

	cmds, err := svc.Drain("a1")
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if cmds[i].ID != want {
			t.Errorf("cmds[%d].ID = %s, want %s", i, cmds[i].ID, want)
		}
	}

	again, err := svc.Drain("a1")
	if err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second drain returned %d commands, want 0", len(again))
	}
}

func TestDrainNeverReturnsNil(t *testing.T) {
	svc := NewCommandService(newFakeQueue(), &fakeResults{})
	cmds, err := svc.Drain("never-seen")
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if cmds == nil {
		t.Fatal("drain of empty queue returned nil, want empty slice")
	}
}

func TestQueuesAreIsolatedPerAgent(t *testing.T) {
	svc := NewCommandService(newFakeQueue(), &fakeResults{})
	if err := svc.Enqueue("a1", dto.Command{ID: "c1", Type: "shutdown"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Enqueue("a2", dto.Command{ID: "c2", Type: "restart"}); err != nil {
		t.Fatal(err)
	}

	cmds, _ := svc.Drain("a2")
	if len(cmds) != 1 || cmds[0].ID != "c2" {
		t.Fatalf("a2 drain = %+v, want only c2", cmds)
	}
	cmds, _ = svc.Drain("a1")
	if len(cmds) != 1 || cmds[0].ID != "c1" {
		t.Fatalf("a1 drain = %+v, want only c1", cmds)
	}
}

func TestDuplicateCommandIDsAreNotDeduplicated(t *testing.T) {
	svc := NewCommandService(newFakeQueue(), &fakeResults{})
	cmd := dto.Command{ID: "same", Type: "run_shell", Payload: json.RawMessage(`{"cmd":"true"}`)}
	_ = svc.Enqueue("a1", cmd)
	_ = svc.Enqueue("a1", cmd)

	cmds, _ := svc.Drain("a1")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want both duplicates delivered", len(cmds))
	}
}

func TestRecordResultAndResults(t *testing.T) {
	store := &fakeResults{}
	svc := NewCommandService(newFakeQueue(), store)

	reports := []dto.CommandResponseRequest{
		{AgentID: "a1", CommandID: "c1", Output: "ok", Success: true},
		{AgentID: "a1", CommandID: "c2", Output: "Unknown command type: frobnicate", Success: false},
		{AgentID: "a2", CommandID: "c3", Output: "other agent", Success: true},
	}
	for _, r := range reports {
		if err := svc.RecordResult(r); err != nil {
			t.Fatalf("RecordResult %s: %v", r.CommandID, err)
		}
	}

	out, err := svc.Results("a1", 50)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d results for a1, want 2", len(out))
	}
	// newest first
	if out[0].CommandID != "c2" || out[0].Success {
		t.Errorf("out[0] = %+v, want failed c2", out[0])
	}
	if out[1].CommandID != "c1" || !out[1].Success {
		t.Errorf("out[1] = %+v, want succeeded c1", out[1])
	}
}
