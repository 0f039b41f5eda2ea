package batch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/g5becks/marq/internal/batch"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	outcomes := batch.Map(context.Background(), items, 3, func(_ context.Context, item string) (string, error) {
		return strings.ToUpper(item), nil
	})

	if len(outcomes) != len(items) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(items))
	}
	for i, outcome := range outcomes {
		if outcome.Item != items[i] {
			t.Errorf("outcome %d item = %q, want %q", i, outcome.Item, items[i])
		}
		if want := strings.ToUpper(items[i]); outcome.Output != want {
			t.Errorf("outcome %d output = %q, want %q", i, outcome.Output, want)
		}
	}
}

func TestMapRecordsErrorsPerItem(t *testing.T) {
	items := []string{"ok", "bad", "ok"}
	failure := errors.New("cannot process")

	outcomes := batch.Map(context.Background(), items, 2, func(_ context.Context, item string) (string, error) {
		if item == "bad" {
			return "", failure
		}
		return item, nil
	})

	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", outcomes[0].Err, outcomes[2].Err)
	}
	if !errors.Is(outcomes[1].Err, failure) {
		t.Errorf("outcome 1 err = %v, want %v", outcomes[1].Err, failure)
	}
	if err := batch.FirstErr(outcomes); !errors.Is(err, failure) {
		t.Errorf("FirstErr = %v, want %v", err, failure)
	}
}

func TestMapRespectsParallelLimit(t *testing.T) {
	var active, peak atomic.Int64
	var mu sync.Mutex

	items := make([]string, 20)
	for i := range items {
		items[i] = "item"
	}

	batch.Map(context.Background(), items, 2, func(_ context.Context, item string) (string, error) {
		now := active.Add(1)
		mu.Lock()
		if now > peak.Load() {
			peak.Store(now)
		}
		mu.Unlock()
		active.Add(-1)
		return item, nil
	})

	if peak.Load() > 2 {
		t.Errorf("peak parallelism = %d, want <= 2", peak.Load())
	}
}

func TestMapCanceledContextSkipsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	items := []string{"a", "b", "c"}

	outcomes := batch.Map(ctx, items, 2, func(_ context.Context, item string) (string, error) {
		calls.Add(1)
		return item, nil
	})

	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancel, want 0", calls.Load())
	}

	for i, outcome := range outcomes {
		if !errors.Is(outcome.Err, context.Canceled) {
			t.Errorf("outcome %d err = %v, want context.Canceled", i, outcome.Err)
		}
	}
}

func TestFirstErrNil(t *testing.T) {
	outcomes := []batch.Outcome{{Item: "a"}, {Item: "b"}}
	if err := batch.FirstErr(outcomes); err != nil {
		t.Errorf("FirstErr = %v, want nil", err)
	}
}
