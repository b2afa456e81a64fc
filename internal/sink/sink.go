// Package sink is the display-sink collaborator: it paints an image file as
// the background of one output.
package sink

import (
	"context"
	"fmt"
	"os/exec"
)

// Options are per-output rendering settings, passed through opaquely.
type Options struct {
	Filter      string
	Anchor      string
	ScalingMode string
}

// Sink sets the background image of an output.
type Sink interface {
	SetBackground(ctx context.Context, outputName, imagePath string, opts Options) error
}

// Oguri drives the oguri wallpaper daemon through its ogurictl client.
type Oguri struct{}

func (Oguri) SetBackground(ctx context.Context, outputName, imagePath string, opts Options) error {
	args := []string{"output", outputName, "--image", imagePath}
	if opts.Filter != "" {
		args = append(args, "--filter", opts.Filter)
	}
	if opts.Anchor != "" {
		args = append(args, "--anchor", opts.Anchor)
	}
	if opts.ScalingMode != "" {
		args = append(args, "--scaling-mode", opts.ScalingMode)
	}

	cmd := exec.CommandContext(ctx, "ogurictl", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ogurictl failed for output %s: %w: %s", outputName, err, out)
	}
	return nil
}
