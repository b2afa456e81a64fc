// Package frames turns a cached wallpaper into the blurred frame sequence an
// animation plays through.
package frames

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ForgottenUmbrella/swayblur/internal/logger"
)

// Job is one frame to render. Jobs are independent and order-insensitive;
// each owns its output file exclusively.
type Job struct {
	OutputPath string
	Level      int
}

// Generator renders frame jobs through a Filter with bounded parallelism.
type Generator struct {
	filter      Filter
	parallelism int
}

// NewGenerator creates a Generator sized to the available processing units.
// Filter invocations are CPU-bound, so more workers would not help.
func NewGenerator(filter Filter) *Generator {
	return &Generator{
		filter:      filter,
		parallelism: runtime.NumCPU(),
	}
}

// Generate renders every job from the cached wallpaper at sourcePath. It
// blocks until all jobs finish and fails if any filter invocation fails; a
// failed job's partial output is removed so it can never be mistaken for a
// cached frame on a later run.
func (g *Generator) Generate(ctx context.Context, sourcePath string, jobs []Job) error {
	log := logger.WithComponent("frames")

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelism)

	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			if err := g.filter.Apply(ctx, sourcePath, job.Level, job.OutputPath); err != nil {
				os.Remove(job.OutputPath)
				return err
			}
			log.Info().
				Str("frame", job.OutputPath).
				Int("level", job.Level).
				Msg("Generated frame")
			return nil
		})
	}

	return eg.Wait()
}
