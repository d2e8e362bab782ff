package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2023, 1, 16, 10, 0, 0, 0, time.UTC)

var testActor = Actor{ID: "u-1", Name: "Alex"}

func newTask(status TaskStatus) *Task {
	return &Task{
		ID:           "5b0e0c52-55d5-4f0c-9a53-7c1f1b0f4a11",
		Title:        "Cut panels",
		Priority:     DefaultTaskPriority,
		Status:       status,
		PlannedStart: time.Date(2023, 1, 15, 8, 0, 0, 0, time.UTC),
		PlannedEnd:   time.Date(2023, 1, 15, 16, 0, 0, 0, time.UTC),
	}
}

func TestTaskValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"blank title", func(tk *Task) { tk.Title = "  " }, false},
		{"priority low", func(tk *Task) { tk.Priority = 0 }, false},
		{"priority high", func(tk *Task) { tk.Priority = 6 }, false},
		{"completion over 100", func(tk *Task) { tk.CompletionPct = 101 }, false},
		{"end before start", func(tk *Task) { tk.PlannedEnd = tk.PlannedStart.Add(-time.Minute) }, false},
		{"zero-length window", func(tk *Task) { tk.PlannedEnd = tk.PlannedStart }, true},
		{"self predecessor", func(tk *Task) { tk.PredecessorIDs = []string{tk.ID} }, false},
		{"malformed predecessor", func(tk *Task) { tk.PredecessorIDs = []string{"step-1"} }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := newTask(TaskPlanned)
			tc.mutate(tk)
			err := tk.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestTaskMoveTo_PreservesDuration(t *testing.T) {
	tk := newTask(TaskPlanned)
	before := tk.PlannedWindow().Duration()

	delta := tk.MoveTo(time.Date(2023, 1, 16, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, 24*time.Hour, delta)
	assert.Equal(t, time.Date(2023, 1, 16, 16, 0, 0, 0, time.UTC), tk.PlannedEnd)
	assert.Equal(t, before, tk.PlannedWindow().Duration())
}

func TestTransitionTo_InProgressStampsActualStartOnce(t *testing.T) {
	tk := newTask(TaskPlanned)
	require.NoError(t, tk.TransitionTo(TaskInProgress, 10, testActor, testNow))
	require.NotNil(t, tk.ActualStart)
	assert.Equal(t, testNow, *tk.ActualStart)

	require.NoError(t, tk.TransitionTo(TaskOnHold, 10, testActor, testNow.Add(time.Hour)))
	require.NoError(t, tk.TransitionTo(TaskInProgress, 20, testActor, testNow.Add(2*time.Hour)))
	assert.Equal(t, testNow, *tk.ActualStart, "resume must not overwrite actual start")
	require.NotNil(t, tk.UpdatedBy)
	assert.Equal(t, testActor, *tk.UpdatedBy)
}

func TestTransitionTo_CompletedDerivesDuration(t *testing.T) {
	tk := newTask(TaskPlanned)
	require.NoError(t, tk.TransitionTo(TaskInProgress, 0, testActor, testNow))
	require.NoError(t, tk.TransitionTo(TaskCompleted, 40, testActor, testNow.Add(90*time.Minute+20*time.Second)))

	assert.Equal(t, TaskCompleted, tk.Status)
	assert.Equal(t, 100, tk.CompletionPct)
	require.NotNil(t, tk.ActualDurationMin)
	assert.Equal(t, 90, *tk.ActualDurationMin)
}

func TestTransitionTo_Rejected(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
	}{
		{TaskPlanned, TaskCompleted},
		{TaskCompleted, TaskInProgress},
		{TaskCancelled, TaskPlanned},
		{TaskOnHold, TaskCompleted},
	}
	for _, tc := range cases {
		tk := newTask(tc.from)
		err := tk.TransitionTo(tc.to, 0, testActor, testNow)
		assert.ErrorIs(t, err, ErrInvalidInput, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.from, tk.Status)
	}
}

func TestTransitionTo_ProgressOnly(t *testing.T) {
	tk := newTask(TaskInProgress)
	require.NoError(t, tk.TransitionTo(TaskInProgress, 55, testActor, testNow))
	assert.Equal(t, 55, tk.CompletionPct)

	assert.ErrorIs(t, tk.TransitionTo(TaskInProgress, 120, testActor, testNow), ErrInvalidInput)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, TaskPlanned.IsTerminal())
	assert.False(t, TaskInProgress.IsTerminal())
	assert.False(t, TaskOnHold.IsTerminal())
	assert.True(t, TaskCompleted.IsTerminal())
	assert.True(t, TaskCancelled.IsTerminal())
}

func TestParsePredecessorIDs(t *testing.T) {
	a := "5b0e0c52-55d5-4f0c-9a53-7c1f1b0f4a11"
	b := "0f6f1f5e-2b1a-4d57-8a3c-3f1f4b9d2e10"

	ids, err := ParsePredecessorIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = ParsePredecessorIDs(a + ", " + b + "," + a)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, ids)
	assert.Equal(t, a+","+b, FormatPredecessorIDs(ids))

	_, err = ParsePredecessorIDs(a + ",,")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParsePredecessorIDs("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseTaskStatus(t *testing.T) {
	for _, raw := range []string{"InProgress", "in_progress", "In Progress", "in-progress"} {
		s, err := ParseTaskStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, TaskInProgress, s)
	}
	_, err := ParseTaskStatus("Paused")
	assert.ErrorIs(t, err, ErrInvalidInput)

	rt, err := ParseResourceType("machine")
	require.NoError(t, err)
	assert.Equal(t, ResourceMachine, rt)
}
