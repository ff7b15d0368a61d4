package access

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker is a validityChecker flipped from tests
type fakeChecker struct {
	valid atomic.Bool
	calls atomic.Int32
}

func (f *fakeChecker) IsValid(ctx context.Context) (bool, error) {
	f.calls.Add(1)
	return f.valid.Load(), nil
}

func TestWatcher_FiresExactlyOnce(t *testing.T) {
	checker := &fakeChecker{}
	checker.valid.Store(true)

	var expired atomic.Int32
	watcher, err := StartWatcher(checker, 50*time.Millisecond, func() {
		expired.Add(1)
	})
	require.NoError(t, err)
	defer watcher.Stop()

	// Пока сессия валидна, callback молчит
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, expired.Load())
	assert.Positive(t, checker.calls.Load())

	// Сессия становится невалидной между проверками
	checker.valid.Store(false)

	assert.Eventually(t, func() bool {
		return expired.Load() == 1
	}, 2*time.Second, 20*time.Millisecond)

	// Последующие срабатывания интервала не дублируют callback
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), expired.Load())
}

func TestWatcher_StopIsIdempotentAndInert(t *testing.T) {
	checker := &fakeChecker{}
	checker.valid.Store(true)

	var expired atomic.Int32
	watcher, err := StartWatcher(checker, 50*time.Millisecond, func() {
		expired.Add(1)
	})
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)

	watcher.Stop()
	watcher.Stop() // повторный teardown безопасен

	// После Stop интервал больше не опрашивает хранилище;
	// даем небольшую паузу на проверку, бывшую in flight
	time.Sleep(100 * time.Millisecond)
	callsAfterStop := checker.calls.Load()
	checker.valid.Store(false)
	time.Sleep(250 * time.Millisecond)

	assert.Equal(t, callsAfterStop, checker.calls.Load())
	assert.Zero(t, expired.Load())
}
