// Package output models one monitor with a wallpaper and its blur animation.
package output

import (
	"context"
	"fmt"

	"github.com/ForgottenUmbrella/swayblur/internal/sink"
)

// Output is a stateless player over a fixed frame sequence. frames is
// ordered by ascending blur level; index 0 is the least blurred frame.
// Outputs are built once at startup and never mutated.
type Output struct {
	name   string
	frames []string
	opts   sink.Options
	sink   sink.Sink
}

// New creates an Output for the named monitor.
func New(name string, frames []string, opts sink.Options, s sink.Sink) *Output {
	return &Output{
		name:   name,
		frames: frames,
		opts:   opts,
		sink:   s,
	}
}

// Name returns the monitor identifier.
func (o *Output) Name() string {
	return o.name
}

// FrameCount returns the number of animation frames.
func (o *Output) FrameCount() int {
	return len(o.frames)
}

// Blur plays the frame sequence forward, least to most blurred, writing each
// frame to the display sink in order.
func (o *Output) Blur(ctx context.Context) error {
	for i := 0; i < len(o.frames); i++ {
		if err := o.set(ctx, o.frames[i]); err != nil {
			return err
		}
	}
	return nil
}

// Unblur plays the frame sequence in reverse, ending on the least blurred
// frame.
func (o *Output) Unblur(ctx context.Context) error {
	for i := len(o.frames) - 1; i >= 0; i-- {
		if err := o.set(ctx, o.frames[i]); err != nil {
			return err
		}
	}
	return nil
}

func (o *Output) set(ctx context.Context, frame string) error {
	if err := o.sink.SetBackground(ctx, o.name, frame, o.opts); err != nil {
		return fmt.Errorf("failed to set background on %s: %w", o.name, err)
	}
	return nil
}
