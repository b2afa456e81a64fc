package frames_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForgottenUmbrella/swayblur/internal/frames"
)

// fakeFilter records invocations and writes a marker file per job.
type fakeFilter struct {
	mu        sync.Mutex
	applied   []int
	failLevel int
}

func (f *fakeFilter) Apply(_ context.Context, inputPath string, radius int, outputPath string) error {
	f.mu.Lock()
	f.applied = append(f.applied, radius)
	f.mu.Unlock()

	if f.failLevel != 0 && radius == f.failLevel {
		return errors.New("filter exploded")
	}
	return os.WriteFile(outputPath, []byte(fmt.Sprintf("%s blurred 0x%d", inputPath, radius)), 0644)
}

func TestGenerate_RendersAllJobs(t *testing.T) {
	dir := t.TempDir()
	filter := &fakeFilter{}
	gen := frames.NewGenerator(filter)

	var jobs []frames.Job
	for _, level := range []int{5, 10, 15, 20} {
		jobs = append(jobs, frames.Job{
			OutputPath: filepath.Join(dir, fmt.Sprintf("frame-%d.png", level)),
			Level:      level,
		})
	}

	require.NoError(t, gen.Generate(context.Background(), "/cached/wall.png", jobs))

	assert.Len(t, filter.applied, len(jobs))
	for _, job := range jobs {
		assert.FileExists(t, job.OutputPath)
	}
}

func TestGenerate_FilterFailure(t *testing.T) {
	dir := t.TempDir()
	filter := &fakeFilter{failLevel: 10}
	gen := frames.NewGenerator(filter)

	jobs := []frames.Job{
		{OutputPath: filepath.Join(dir, "frame-5.png"), Level: 5},
		{OutputPath: filepath.Join(dir, "frame-10.png"), Level: 10},
	}

	err := gen.Generate(context.Background(), "/cached/wall.png", jobs)
	require.Error(t, err)
	assert.NoFileExists(t, jobs[1].OutputPath, "failed job must not leave a partial frame")
}

func TestGenerate_NoJobs(t *testing.T) {
	gen := frames.NewGenerator(&fakeFilter{})
	require.NoError(t, gen.Generate(context.Background(), "/cached/wall.png", nil))
}
