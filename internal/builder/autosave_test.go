package builder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu     sync.Mutex
	values []any
}

func (r *recorder) save(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

func TestAutosaverCollapsesBursts(t *testing.T) {
	rec := &recorder{}
	a := NewAutosaver(30*time.Millisecond, rec.save)
	defer a.Close()

	for i := 0; i < 10; i++ {
		a.Edit(i)
		time.Sleep(3 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []any{9}, rec.snapshot())
}

func TestAutosaverFlushPersistsImmediately(t *testing.T) {
	rec := &recorder{}
	a := NewAutosaver(time.Hour, rec.save)

	a.Edit("draft")
	a.Flush()
	assert.Equal(t, []any{"draft"}, rec.snapshot())

	// nothing pending afterwards
	a.Flush()
	assert.Equal(t, []any{"draft"}, rec.snapshot())
}

func TestAutosaverStopDiscardsPending(t *testing.T) {
	rec := &recorder{}
	a := NewAutosaver(10*time.Millisecond, rec.save)

	a.Edit("doomed")
	a.Stop()
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	a.Edit("after stop")
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestAutosaverStaleTimerDoesNotSave(t *testing.T) {
	rec := &recorder{}
	a := NewAutosaver(time.Hour, rec.save)
	defer a.Stop()

	// A callback from a timer that Edit failed to stop carries the old
	// generation and must not persist the newer value early.
	a.Edit("v1")
	stale := a.gen
	a.Edit("v2")

	a.fire(stale)
	assert.Empty(t, rec.snapshot())

	a.fire(a.gen)
	assert.Equal(t, []any{"v2"}, rec.snapshot())
}
