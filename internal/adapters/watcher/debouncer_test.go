package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/adapters/watcher"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/environment.yml")
		d.Add("/project/environment.yml")
		d.Add("/project/environment.yml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/environment.yml"}, calls[0])
	})
}

func TestDebouncer_SortsPaths(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("/b/environment.yml")
		d.Add("/a/environment.yml")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/a/environment.yml", "/b/environment.yml"}, calls[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/environment.yml")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/environment.yml")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/environment.yml")
		d.Flush()
		require.Len(t, rec.snapshot(), 1)

		// The stopped timer must not fire a second time.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var rec recorder
	d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

	d.Flush()
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var rec recorder
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("/project/environment.yml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Len(t, rec.snapshot(), 1)

		d.Flush()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/project/environment.yml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
