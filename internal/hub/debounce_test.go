package hub

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {
	t.Run("runs once after the quiet period", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		var runs atomic.Int32
		d.Do(func() { runs.Add(1) })

		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("burst coalesces into the last call", func(t *testing.T) {
		d := NewDebouncer(30 * time.Millisecond)
		var runs atomic.Int32
		var last atomic.Int32
		for i := int32(1); i <= 5; i++ {
			i := i
			d.Do(func() {
				runs.Add(1)
				last.Store(i)
			})
			time.Sleep(time.Millisecond)
		}

		time.Sleep(150 * time.Millisecond)
		assert.Equal(t, int32(1), runs.Load(), "intermediate calls must be discarded")
		assert.Equal(t, int32(5), last.Load())
	})

	t.Run("stop cancels the pending call", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		var runs atomic.Int32
		d.Do(func() { runs.Add(1) })
		d.Stop()

		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(0), runs.Load())
	})

	t.Run("non-positive delay falls back to default", func(t *testing.T) {
		d := NewDebouncer(0)
		assert.Equal(t, DefaultDebounceDelay, d.delay)
	})
}
