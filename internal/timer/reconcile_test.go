package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtracker/internal/common"
)

func i64(v int64) *int64 { return &v }

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		ok   bool
	}{
		{"valid", Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(5)}, true},
		{"no elapsed", Snapshot{TimerID: "t1", Status: StatusPaused}, true},
		{"zero elapsed", Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(0)}, true},
		{"bad status", Snapshot{TimerID: "t1", Status: "sleeping"}, false},
		{"negative", Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(-1)}, false},
		{"missing id", Snapshot{Status: StatusRunning}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, common.ErrorValidation)
			}
		})
	}
}

func TestReconcile_InvalidLeavesTimerUntouched(t *testing.T) {
	tm := newRunning(t, t0)
	before := *tm
	_, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusStopped, ElapsedSeconds: i64(-5)}, t0.Add(sec(10)))
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, before, *tm)
}

func TestReconcile_RunningRebase(t *testing.T) {
	tm := newRunning(t, t0)
	now := t0.Add(sec(100))

	out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(250)}, now)
	require.NoError(t, err)
	assert.False(t, out.Transitioned)
	assert.True(t, out.Rebased)
	assert.Equal(t, int64(250), tm.Elapsed(now))
	assert.Equal(t, int64(251), tm.Elapsed(now.Add(sec(1))))
}

func TestReconcile_UnderReportOverwrites(t *testing.T) {
	tm := newRunning(t, t0)
	tm.Pause(t0.Add(sec(300)))
	tm.Resume(t0.Add(sec(400)))
	now := t0.Add(sec(500))
	require.Equal(t, int64(400), tm.Elapsed(now))

	_, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(10)}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(10), tm.Elapsed(now))
}

func TestReconcile_Transitions(t *testing.T) {
	now := t0.Add(sec(60))

	t.Run("paused to running resumes", func(t *testing.T) {
		tm := newRunning(t, t0)
		tm.Pause(t0.Add(sec(30)))
		out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusRunning}, now)
		require.NoError(t, err)
		assert.True(t, out.Transitioned)
		assert.Equal(t, StatusRunning, tm.Status)
		assert.Equal(t, int64(30), tm.Elapsed(now))
	})

	t.Run("paused to running with elapsed", func(t *testing.T) {
		tm := newRunning(t, t0)
		tm.Pause(t0.Add(sec(30)))
		out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusRunning, ElapsedSeconds: i64(45)}, now)
		require.NoError(t, err)
		assert.True(t, out.Transitioned)
		assert.True(t, out.Rebased)
		assert.Equal(t, int64(45), tm.Elapsed(now))
	})

	t.Run("running to paused", func(t *testing.T) {
		tm := newRunning(t, t0)
		out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusPaused, ElapsedSeconds: i64(999)}, now)
		require.NoError(t, err)
		assert.True(t, out.Transitioned)
		assert.False(t, out.Rebased)
		assert.Equal(t, int64(60), tm.ElapsedSeconds)
	})

	t.Run("active to stopped produces entry", func(t *testing.T) {
		tm := newRunning(t, t0)
		out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusStopped}, now)
		require.NoError(t, err)
		require.NotNil(t, out.Entry)
		assert.Equal(t, int64(60), out.Entry.DurationSeconds)
		assert.Equal(t, StatusStopped, tm.Status)
	})

	t.Run("stopped stays stopped", func(t *testing.T) {
		tm := newRunning(t, t0)
		_, err := tm.Stop(t0.Add(sec(10)))
		require.NoError(t, err)
		for _, st := range []Status{StatusRunning, StatusPaused, StatusStopped} {
			out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: st, ElapsedSeconds: i64(5)}, now)
			require.NoError(t, err)
			assert.False(t, out.Changed(), st)
			assert.Equal(t, StatusStopped, tm.Status)
			assert.Equal(t, int64(10), tm.ElapsedSeconds)
		}
	})

	t.Run("paused on paused is a no-op", func(t *testing.T) {
		tm := newRunning(t, t0)
		tm.Pause(t0.Add(sec(10)))
		out, err := Reconcile(tm, Snapshot{TimerID: "t1", Status: StatusPaused}, now)
		require.NoError(t, err)
		assert.False(t, out.Changed())
	})
}
