package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeValue(t *testing.T) {
	var got time.Time
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	timeVar(fs, &got, "at", "")

	require.NoError(t, fs.Parse([]string{"--at", "2023-01-17 09:30"}))
	assert.True(t, time.Date(2023, 1, 17, 9, 30, 0, 0, time.UTC).Equal(got))
	assert.Equal(t, "2023-01-17T09:30:00Z", fs.Lookup("at").Value.String())
	assert.Equal(t, "time", fs.Lookup("at").Value.Type())

	assert.Error(t, fs.Parse([]string{"--at", "tomorrow"}))
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}

	id, err := resolveID("task", "xyz", ids)
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)

	id, err = resolveID("task", "abc", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = resolveID("task", "ab", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID("task", "q", ids)
	assert.ErrorContains(t, err, "not found")

	_, err = resolveID("task", "", ids)
	assert.ErrorContains(t, err, "required")
}

func TestResolveResource_ByNameOrPrefix(t *testing.T) {
	app := testApp(t)
	r := seedResource(t, app, "Laser Cutter")
	ctx := context.Background()

	got, err := resolveResource(ctx, app, "laser cutter")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	got, err = resolveResource(ctx, app, r.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateWorkingHours(""))
	assert.NoError(t, validateWorkingHours("08:00-16:30"))
	assert.Error(t, validateWorkingHours("8-16"))
	assert.Error(t, validateWorkingHours("08:00-25:00"))
	assert.Error(t, validateRequired("name")("  "))
	assert.NoError(t, validateRequired("name")("Kim"))
	assert.Len(t, resourceTypeOptions(), len(domain.ResourceTypes))
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	app := &App{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, time.Second, app) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
