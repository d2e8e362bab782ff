package cli

import (
	"time"

	"github.com/spf13/pflag"

	schedapp "github.com/alexanderramin/prodsched/internal/app"
)

// timeValue is a pflag.Value accepting RFC3339 timestamps, "YYYY-MM-DD HH:MM"
// or a bare date. Values without a zone are UTC.
type timeValue struct {
	t *time.Time
}

var _ pflag.Value = timeValue{}

func newTimeValue(p *time.Time) timeValue {
	return timeValue{t: p}
}

func (v timeValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v timeValue) Set(s string) error {
	t, err := schedapp.ParseTime(s)
	if err != nil {
		return err
	}
	*v.t = t
	return nil
}

func (v timeValue) Type() string {
	return "time"
}

// timeVar registers a time flag on fs.
func timeVar(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(newTimeValue(p), name, usage)
}
