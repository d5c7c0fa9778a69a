package learn

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/content"
	"github.com/sheriffbukari/xtx-training/internal/eventlog"
	"github.com/sheriffbukari/xtx-training/internal/notify"
	"github.com/sheriffbukari/xtx-training/internal/userdata"
)

// ErrTopicIndex indicates a topic index outside the path's topic list.
var ErrTopicIndex = errors.New("topic index out of range")

// Tracker owns per-path topic-completion state. It holds no state of its own:
// every toggle reads the durable record, applies the transition, and writes
// the full progress map back through the store. Milestone notifications
// (path started, path completed) fire on the transition that crosses them.
type Tracker struct {
	catalog  *content.Catalog
	store    userdata.Store
	notifier notify.Notifier
	events   eventlog.Recorder
	now      func() time.Time
}

func NewTracker(catalog *content.Catalog, store userdata.Store, notifier notify.Notifier, events eventlog.Recorder) *Tracker {
	return &Tracker{catalog: catalog, store: store, notifier: notifier, events: events, now: time.Now}
}

// NewTrackerWithClock is test-only for deterministic timestamps.
func NewTrackerWithClock(catalog *content.Catalog, store userdata.Store, notifier notify.Notifier, events eventlog.Recorder, now func() time.Time) *Tracker {
	t := NewTracker(catalog, store, notifier, events)
	t.now = now
	return t
}

// ToggleTopic marks one topic of a path complete or incomplete. Both
// directions are idempotent. Returns the updated progress record and its
// derived percentage. On a store failure nothing is recorded and the error
// propagates; there is no retry here.
func (t *Tracker) ToggleTopic(ctx context.Context, userID, pathTitle string, topicIndex int, completed bool) (userdata.PathProgress, int, error) {
	path, err := t.catalog.PathByTitle(pathTitle)
	if err != nil {
		return userdata.PathProgress{}, 0, err
	}
	if topicIndex < 0 || topicIndex >= len(path.Topics) {
		return userdata.PathProgress{}, 0, ErrTopicIndex
	}

	rec, err := userdata.LoadOrCreate(ctx, t.store, userID)
	if err != nil {
		return userdata.PathProgress{}, 0, err
	}

	now := t.now()
	cur, ok := rec.LearningProgress[pathTitle]
	if !ok {
		cur = userdata.PathProgress{StartedAt: now, CompletedTopics: []int{}}
	}
	prevCount := len(cur.CompletedTopics)
	total := len(path.Topics)

	if completed {
		if !cur.HasTopic(topicIndex) {
			cur.CompletedTopics = append(cur.CompletedTopics, topicIndex)
			sort.Ints(cur.CompletedTopics)
		}
	} else {
		cur.CompletedTopics = removeTopic(cur.CompletedTopics, topicIndex)
	}
	cur.LastUpdated = now

	nowCount := len(cur.CompletedTopics)
	justCompleted := nowCount == total && prevCount < total
	if justCompleted {
		// Re-completion stamps a fresh timestamp; the old one was cleared
		// when the path dropped out of the completed state.
		at := now
		cur.CompletedAt = &at
	} else if nowCount < total {
		cur.CompletedAt = nil
	}

	next := make(map[string]userdata.PathProgress, len(rec.LearningProgress)+1)
	for k, v := range rec.LearningProgress {
		next[k] = v
	}
	next[pathTitle] = cur

	if err := t.store.ReplaceLearningProgress(ctx, userID, next); err != nil {
		t.notifier.Error("Failed to update progress")
		return userdata.PathProgress{}, 0, err
	}

	if justCompleted {
		t.notifier.Success(fmt.Sprintf("Congratulations! You've completed the %s learning path!", pathTitle))
		_ = t.events.Append(ctx, eventlog.Event{
			Type: eventlog.TypePathCompleted,
			Key:  userID + "|" + pathTitle,
			DataJSON: fmt.Sprintf(`{"path":%q,"topics":%d}`, pathTitle, total),
		})
	} else if prevCount == 0 && nowCount == 1 {
		t.notifier.Success(fmt.Sprintf("You've started the %s learning path!", pathTitle))
		_ = t.events.Append(ctx, eventlog.Event{
			Type: eventlog.TypePathStarted,
			Key:  userID + "|" + pathTitle,
			DataJSON: fmt.Sprintf(`{"path":%q}`, pathTitle),
		})
	}
	if completed {
		t.notifier.Success(fmt.Sprintf("Topic %q marked as completed!", path.Topics[topicIndex]))
	}

	return cur, cur.Percent(total), nil
}

// Progress returns the derived completion percentage for one path; 0 when the
// user has no record or has not touched the path. Pure read.
func (t *Tracker) Progress(ctx context.Context, userID, pathTitle string) (int, error) {
	path, err := t.catalog.PathByTitle(pathTitle)
	if err != nil {
		return 0, err
	}
	rec, err := t.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return rec.LearningProgress[pathTitle].Percent(len(path.Topics)), nil
}

// IsTopicComplete reports whether a topic is in the user's completed set.
// Pure read.
func (t *Tracker) IsTopicComplete(ctx context.Context, userID, pathTitle string, topicIndex int) (bool, error) {
	rec, err := t.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, userdata.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.LearningProgress[pathTitle].HasTopic(topicIndex), nil
}

func removeTopic(topics []int, topicIndex int) []int {
	out := topics[:0]
	for _, ti := range topics {
		if ti != topicIndex {
			out = append(out, ti)
		}
	}
	return out
}
