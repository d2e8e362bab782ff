package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h int) time.Time {
	return time.Date(2023, 1, 15, h, 0, 0, 0, time.UTC)
}

func TestWindowOverlaps(t *testing.T) {
	base := Window{Start: at(8), End: at(12)}
	cases := []struct {
		name string
		o    Window
		want bool
	}{
		{"contained", Window{at(9), at(10)}, true},
		{"straddles start", Window{at(6), at(9)}, true},
		{"straddles end", Window{at(11), at(14)}, true},
		{"identical", base, true},
		{"touching after", Window{at(12), at(14)}, false},
		{"touching before", Window{at(6), at(8)}, false},
		{"disjoint", Window{at(13), at(14)}, false},
		{"empty inside", Window{at(10), at(10)}, false},
		{"empty at start", Window{at(8), at(8)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.o))
			assert.Equal(t, tc.want, tc.o.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestWindowIntersect(t *testing.T) {
	got, ok := Window{at(8), at(12)}.Intersect(Window{at(10), at(16)})
	require.True(t, ok)
	assert.Equal(t, Window{at(10), at(12)}, got)

	_, ok = Window{at(8), at(12)}.Intersect(Window{at(12), at(16)})
	assert.False(t, ok)
}

func TestWindowIsEmpty(t *testing.T) {
	assert.True(t, Window{at(10), at(10)}.IsEmpty())
	assert.False(t, Window{at(10), at(11)}.IsEmpty())

	empty := Window{at(10), at(10)}
	assert.False(t, empty.Overlaps(empty))
	_, ok := Window{at(8), at(12)}.Intersect(empty)
	assert.False(t, ok)
}

func TestWindowShift(t *testing.T) {
	w := Window{at(8), at(12)}.Shift(-2 * time.Hour)
	assert.Equal(t, at(6), w.Start)
	assert.Equal(t, 4*time.Hour, w.Duration())
}

func TestAssignmentValidate(t *testing.T) {
	a := &Assignment{Start: at(8), End: at(12), AllocationPct: DefaultAllocationPct}
	require.NoError(t, a.Validate())
	assert.True(t, a.FullyAllocated())

	a.AllocationPct = 100.5
	assert.ErrorIs(t, a.Validate(), ErrInvalidInput)

	a.AllocationPct = 50
	a.End = at(7)
	assert.ErrorIs(t, a.Validate(), ErrInvalidInput)
}
