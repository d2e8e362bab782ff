package domain

import "time"

// Window is a scheduled time span [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps reports whether w and o share a span of positive length.
// Windows that only touch (w.End == o.Start) do not overlap, so back-to-back
// bookings are never reported as conflicting. An empty window (Start ==
// End) overlaps nothing, even a window that contains it.
func (w Window) Overlaps(o Window) bool {
	if w.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Start.Before(w.End) && o.End.After(w.Start)
}

// IsEmpty reports whether the window has no positive length.
func (w Window) IsEmpty() bool {
	return !w.End.After(w.Start)
}

// Intersect returns [max(starts), min(ends)] and whether it is non-empty
// under the Overlaps rule.
func (w Window) Intersect(o Window) (Window, bool) {
	if !w.Overlaps(o) {
		return Window{}, false
	}
	out := w
	if o.Start.After(out.Start) {
		out.Start = o.Start
	}
	if o.End.Before(out.End) {
		out.End = o.End
	}
	return out, true
}

// Shift moves both ends by delta, preserving the duration.
func (w Window) Shift(delta time.Duration) Window {
	return Window{Start: w.Start.Add(delta), End: w.End.Add(delta)}
}

// ValidateWindow rejects windows that end before they start.
func ValidateWindow(start, end time.Time) error {
	if end.Before(start) {
		return invalidf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}
