package userdata_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/quiz"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

func TestLoadBeforeCreate(t *testing.T) {
	ctx := context.Background()
	store := userdata.NewMemoryStore()

	if _, err := store.Load(ctx, "u1"); !errors.Is(err, userdata.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on first load, got %v", err)
	}

	rec, err := userdata.LoadOrCreate(ctx, store, "u1")
	if err != nil {
		t.Fatalf("load-or-create: %v", err)
	}
	if len(rec.QuizCompletions) != 0 || len(rec.PlaygroundUsage) != 0 || len(rec.LearningProgress) != 0 {
		t.Fatalf("expected empty initial record, got %+v", rec)
	}
	if rec.LastActive.IsZero() || rec.CreatedAt.IsZero() {
		t.Fatalf("initial record must stamp timestamps: %+v", rec)
	}
}

func TestAppendsRefreshLastActive(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := userdata.NewMemoryStoreWithClock(func() time.Time { return clock })

	if _, err := store.Create(ctx, "u1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	clock = clock.Add(time.Minute)
	err := store.AppendQuizCompletion(ctx, "u1", quiz.Completion{
		QuizID: "web-development", Score: 2, TotalQuestions: 3, Percentage: 67, Timestamp: clock,
	})
	if err != nil {
		t.Fatalf("append completion: %v", err)
	}

	rec, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rec.QuizCompletions) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(rec.QuizCompletions))
	}
	if !rec.LastActive.Equal(clock) {
		t.Fatalf("append must refresh last active: %v != %v", rec.LastActive, clock)
	}

	clock = clock.Add(time.Minute)
	if err := store.AppendPlaygroundUsage(ctx, "u1", userdata.PlaygroundUsage{
		Code: "console.log(1)", Language: "javascript", Timestamp: clock,
	}); err != nil {
		t.Fatalf("append usage: %v", err)
	}
	rec, _ = store.Load(ctx, "u1")
	if len(rec.PlaygroundUsage) != 1 || !rec.LastActive.Equal(clock) {
		t.Fatalf("usage append broken: %+v", rec)
	}
}

func TestReplaceLearningProgressIsWholeMap(t *testing.T) {
	ctx := context.Background()
	store := userdata.NewMemoryStore()
	_, _ = store.Create(ctx, "u1")

	first := map[string]userdata.PathProgress{
		"Go Programming": {CompletedTopics: []int{0, 1}},
		"Python":         {CompletedTopics: []int{2}},
	}
	if err := store.ReplaceLearningProgress(ctx, "u1", first); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// A later replace without the Python key drops it: overwrite, not patch.
	second := map[string]userdata.PathProgress{
		"Go Programming": {CompletedTopics: []int{0, 1, 2}},
	}
	if err := store.ReplaceLearningProgress(ctx, "u1", second); err != nil {
		t.Fatalf("replace: %v", err)
	}

	rec, _ := store.Load(ctx, "u1")
	if len(rec.LearningProgress) != 1 {
		t.Fatalf("replace must overwrite the whole map, got %+v", rec.LearningProgress)
	}
	if got := rec.LearningProgress["Go Programming"].CompletedTopics; len(got) != 3 {
		t.Fatalf("expected 3 completed topics, got %v", got)
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	ctx := context.Background()
	store := userdata.NewMemoryStore()
	_, _ = store.Create(ctx, "u1")

	_ = store.AppendQuizCompletion(ctx, "u1", quiz.Completion{QuizID: "q", Score: 1, TotalQuestions: 1, Percentage: 100})
	_ = store.ReplaceLearningProgress(ctx, "u1", map[string]userdata.PathProgress{"Go Programming": {CompletedTopics: []int{0}}})

	if err := store.Reset(ctx, "u1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	rec, _ := store.Load(ctx, "u1")
	if len(rec.QuizCompletions) != 0 || len(rec.PlaygroundUsage) != 0 || len(rec.LearningProgress) != 0 {
		t.Fatalf("reset must empty all fields, got %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("reset must keep the original creation time")
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := userdata.NewMemoryStore()
	_, _ = store.Create(ctx, "u1")
	_ = store.ReplaceLearningProgress(ctx, "u1", map[string]userdata.PathProgress{
		"Go Programming": {CompletedTopics: []int{0}},
	})

	rec, _ := store.Load(ctx, "u1")
	p := rec.LearningProgress["Go Programming"]
	p.CompletedTopics[0] = 99
	rec.LearningProgress["mutated"] = userdata.PathProgress{}

	fresh, _ := store.Load(ctx, "u1")
	if fresh.LearningProgress["Go Programming"].CompletedTopics[0] != 0 {
		t.Fatalf("store state leaked through a load")
	}
	if _, ok := fresh.LearningProgress["mutated"]; ok {
		t.Fatalf("store map leaked through a load")
	}
}

func TestPathProgressPercent(t *testing.T) {
	p := userdata.PathProgress{CompletedTopics: []int{0, 1}}
	if got := p.Percent(3); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
	if got := p.Percent(0); got != 0 {
		t.Fatalf("zero topics must yield 0, got %d", got)
	}
	if got := (userdata.PathProgress{}).Percent(5); got != 0 {
		t.Fatalf("empty set must yield 0, got %d", got)
	}
}
