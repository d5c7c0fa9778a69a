package learn_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/learn"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

type recordingNotifier struct {
	successes []string
	errs      []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Info(msg string)    {}
func (n *recordingNotifier) Error(msg string)   { n.errs = append(n.errs, msg) }

func (n *recordingNotifier) hasSuccess(substr string) bool {
	for _, m := range n.successes {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func fourTopicCatalog() *content.Catalog {
	return &content.Catalog{
		Paths: []content.Path{{
			Title:  "Go Programming",
			Topics: []string{"Basics", "Concurrency", "Microservices", "DevOps"},
		}},
	}
}

func newTestTracker(t *testing.T) (*learn.Tracker, *userdata.MemoryStore, *recordingNotifier) {
	t.Helper()
	store := userdata.NewMemoryStore()
	notifier := &recordingNotifier{}
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tracker := learn.NewTrackerWithClock(fourTopicCatalog(), store, notifier, eventlog.Nop{}, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	return tracker, store, notifier
}

func TestToggleSequenceAndCompletedAt(t *testing.T) {
	// 4 topics toggled in sequence: percentages 25, 50, 75, 100;
	// completedAt stamped only by the final toggle.
	ctx := context.Background()
	tracker, _, notifier := newTestTracker(t)

	want := []int{25, 50, 75, 100}
	for i := 0; i < 4; i++ {
		progress, pct, err := tracker.ToggleTopic(ctx, "u1", "Go Programming", i, true)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if pct != want[i] {
			t.Fatalf("toggle %d: expected %d%%, got %d%%", i, want[i], pct)
		}
		if i < 3 && progress.CompletedAt != nil {
			t.Fatalf("toggle %d: completedAt must be unset before full completion", i)
		}
		if i == 3 && progress.CompletedAt == nil {
			t.Fatalf("final toggle must stamp completedAt")
		}
	}

	if !notifier.hasSuccess("started the Go Programming") {
		t.Fatalf("expected a path-started notification, got %v", notifier.successes)
	}
	if !notifier.hasSuccess("completed the Go Programming") {
		t.Fatalf("expected a path-completed notification, got %v", notifier.successes)
	}
}

func TestToggleRoundTripRestoresPercentage(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTestTracker(t)

	_, _, _ = tracker.ToggleTopic(ctx, "u1", "Go Programming", 0, true)
	before, err := tracker.Progress(ctx, "u1", "Go Programming")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}

	if _, _, err := tracker.ToggleTopic(ctx, "u1", "Go Programming", 2, true); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if _, _, err := tracker.ToggleTopic(ctx, "u1", "Go Programming", 2, false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	after, err := tracker.Progress(ctx, "u1", "Go Programming")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if before != after {
		t.Fatalf("toggle round-trip must restore percentage: %d != %d", before, after)
	}
}

func TestToggleIdempotent(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTestTracker(t)

	_, first, _ := tracker.ToggleTopic(ctx, "u1", "Go Programming", 1, true)
	_, second, _ := tracker.ToggleTopic(ctx, "u1", "Go Programming", 1, true)
	if first != second || first != 25 {
		t.Fatalf("repeated completion must be idempotent: %d, %d", first, second)
	}

	_, off1, _ := tracker.ToggleTopic(ctx, "u1", "Go Programming", 3, false)
	_, off2, _ := tracker.ToggleTopic(ctx, "u1", "Go Programming", 3, false)
	if off1 != off2 || off1 != 25 {
		t.Fatalf("removing an absent topic must be idempotent: %d, %d", off1, off2)
	}
}

func TestUncheckClearsCompletedAt(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTestTracker(t)

	for i := 0; i < 4; i++ {
		_, _, _ = tracker.ToggleTopic(ctx, "u1", "Go Programming", i, true)
	}
	progress, _, err := tracker.ToggleTopic(ctx, "u1", "Go Programming", 2, false)
	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if progress.CompletedAt != nil {
		t.Fatalf("unchecking out of a completed path must clear completedAt")
	}

	// Re-completing stamps a fresh timestamp.
	progress, _, err = tracker.ToggleTopic(ctx, "u1", "Go Programming", 2, true)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if progress.CompletedAt == nil {
		t.Fatalf("re-completion must stamp completedAt again")
	}
}

func TestStartedNotificationFiresOnce(t *testing.T) {
	ctx := context.Background()
	tracker, _, notifier := newTestTracker(t)

	_, _, _ = tracker.ToggleTopic(ctx, "u1", "Go Programming", 0, true)
	_, _, _ = tracker.ToggleTopic(ctx, "u1", "Go Programming", 1, true)

	count := 0
	for _, m := range notifier.successes {
		if strings.Contains(m, "started the Go Programming") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("path-started must fire only on the 0 to 1 transition, fired %d times", count)
	}
}

func TestReadsWithoutRecord(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTestTracker(t)

	pct, err := tracker.Progress(ctx, "ghost", "Go Programming")
	if err != nil || pct != 0 {
		t.Fatalf("expected 0%% and no error for a fresh user, got %d, %v", pct, err)
	}
	done, err := tracker.IsTopicComplete(ctx, "ghost", "Go Programming", 0)
	if err != nil || done {
		t.Fatalf("expected false for a fresh user, got %v, %v", done, err)
	}
}

func TestToggleValidation(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTestTracker(t)

	if _, _, err := tracker.ToggleTopic(ctx, "u1", "Nope", 0, true); !errors.Is(err, content.ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
	if _, _, err := tracker.ToggleTopic(ctx, "u1", "Go Programming", 9, true); !errors.Is(err, learn.ErrTopicIndex) {
		t.Fatalf("expected ErrTopicIndex, got %v", err)
	}
}

func TestWriteThroughPersists(t *testing.T) {
	ctx := context.Background()
	tracker, store, _ := newTestTracker(t)

	_, _, _ = tracker.ToggleTopic(ctx, "u1", "Go Programming", 0, true)
	rec, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := rec.LearningProgress["Go Programming"]
	if !ok || len(p.CompletedTopics) != 1 || p.StartedAt.IsZero() || p.LastUpdated.IsZero() {
		t.Fatalf("toggle must write through to the store: %+v", p)
	}
}
