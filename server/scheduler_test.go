package server

import (
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	var calls int64

	s := NewScheduler("@hourly", func() { atomic.AddInt64(&calls, 1) }, testLogger())
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_GarbageSpecFallsBackToDefault(t *testing.T) {
	// Construction must not fail; the default spec takes over.
	s := NewScheduler("not a cron spec", func() {}, testLogger())
	assert.NotNil(t, s)

	s.Start()
	s.Stop()
}
