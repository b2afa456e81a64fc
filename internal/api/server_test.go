package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuarubin/go-sway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForgottenUmbrella/swayblur/internal/api"
	"github.com/ForgottenUmbrella/swayblur/internal/config"
	"github.com/ForgottenUmbrella/swayblur/internal/manager"
	"github.com/ForgottenUmbrella/swayblur/internal/sink"
)

type nullTree struct{}

func (nullTree) GetTree(context.Context) (*sway.Node, error) {
	return &sway.Node{Type: "root"}, nil
}

type nullSink struct{}

func (nullSink) SetBackground(context.Context, string, string, sink.Options) error {
	return nil
}

type nullFilter struct{}

func (nullFilter) Apply(_ context.Context, _ string, _ int, outputPath string) error {
	return os.WriteFile(outputPath, []byte("frame"), 0644)
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	wall := filepath.Join(t.TempDir(), "wall.png")
	require.NoError(t, os.WriteFile(wall, []byte("wallpaper"), 0644))

	cfg := &config.Config{
		BlurStrength:      20,
		AnimationDuration: 4,
		Outputs: map[string]config.Output{
			"eDP-1": {Image: wall},
		},
	}
	mgr := manager.New(cfg, nullTree{}, nullSink{}, nullFilter{}, t.TempDir())

	srv := httptest.NewServer(api.NewServer(mgr).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestGetOutputs(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/outputs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var statuses []manager.OutputStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "eDP-1", statuses[0].Name)
	assert.Equal(t, 4, statuses[0].Frames)
	assert.Equal(t, "unknown", statuses[0].State)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
