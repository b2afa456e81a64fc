// Package manager owns the configured outputs and drives their blur
// animations from sway focus events.
package manager

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/joshuarubin/go-sway"
	"github.com/rs/zerolog"

	"github.com/ForgottenUmbrella/swayblur/internal/cache"
	"github.com/ForgottenUmbrella/swayblur/internal/config"
	"github.com/ForgottenUmbrella/swayblur/internal/frames"
	"github.com/ForgottenUmbrella/swayblur/internal/logger"
	"github.com/ForgottenUmbrella/swayblur/internal/output"
	"github.com/ForgottenUmbrella/swayblur/internal/sink"
)

// TreeSource supplies the compositor's current window tree. sway.Client
// satisfies it.
type TreeSource interface {
	GetTree(ctx context.Context) (*sway.Node, error)
}

// focusState is the last known focus-vs-empty state of one output. It only
// exists to skip replaying an animation already in its settled state; the
// first event for an output always animates.
type focusState int

const (
	stateUnknown focusState = iota
	stateEmpty
	stateNonEmpty
)

func (s focusState) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateNonEmpty:
		return "nonempty"
	default:
		return "unknown"
	}
}

// OutputStatus describes one managed output for the status API.
type OutputStatus struct {
	Name   string `json:"name"`
	Frames int    `json:"frames"`
	State  string `json:"state"`
}

// managedOutput pairs an Output with the cache bookkeeping needed to
// prepare its frames.
type managedOutput struct {
	out    *output.Output
	source string
	cached string
	jobs   []frames.Job
}

// Manager builds one Output per configured monitor with a wallpaper,
// prepares their frame caches, then processes the sway event stream on a
// single control loop: query tree, decide target state, animate.
type Manager struct {
	tree        TreeSource
	gen         *frames.Generator
	outputs     map[string]*managedOutput
	subscribeFn func(ctx context.Context, h sway.EventHandler, events ...sway.EventType) error
	prepared    bool
	log         *zerolog.Logger

	mu        sync.RWMutex
	state     map[string]focusState
	listeners []chan OutputStatus
}

// New builds the Output set from the configuration. Outputs without a
// wallpaper are absent from the set; events for them are ignored later.
func New(cfg *config.Config, tree TreeSource, snk sink.Sink, filter frames.Filter, cacheDir string) *Manager {
	m := &Manager{
		tree:        tree,
		gen:         frames.NewGenerator(filter),
		outputs:     make(map[string]*managedOutput),
		subscribeFn: sway.Subscribe,
		log:         logger.WithComponent("manager"),
		state:       make(map[string]focusState),
	}

	schedule := frames.Schedule(cfg.BlurStrength, cfg.AnimationDuration)

	for name, oc := range cfg.Outputs {
		if oc.Image == "" {
			m.log.Info().Str("output", name).Msg("Output has no wallpaper set")
			continue
		}

		identity := cache.Identity(oc.Image)
		framePaths := make([]string, 0, len(schedule))
		jobs := make([]frames.Job, 0, len(schedule))
		for _, level := range schedule {
			path := cache.FramePath(cacheDir, identity, level)
			framePaths = append(framePaths, path)
			jobs = append(jobs, frames.Job{OutputPath: path, Level: level})
		}

		opts := sink.Options{
			Filter:      oc.Filter,
			Anchor:      oc.Anchor,
			ScalingMode: oc.ScalingMode,
		}
		m.outputs[name] = &managedOutput{
			out:    output.New(name, framePaths, opts, snk),
			source: oc.Image,
			cached: cache.CachedImagePath(cacheDir, oc.Image),
			jobs:   jobs,
		}
	}

	return m
}

// Prepare caches every wallpaper and generates missing frames. It blocks
// until every output is ready and must complete before Listen; any failure
// here is fatal to startup.
func (m *Manager) Prepare(ctx context.Context) error {
	names := make([]string, 0, len(m.outputs))
	for name := range m.outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mo := m.outputs[name]

		hit, err := cache.EnsureCached(mo.source, mo.cached)
		if err != nil {
			return fmt.Errorf("output %s: %w", name, err)
		}

		pending := mo.jobs
		if hit {
			// Frames from an identical wallpaper may already exist, but a
			// previous run could have been interrupted mid-generation.
			pending = missingJobs(mo.jobs)
		}
		if len(pending) == 0 {
			m.log.Info().Str("output", name).Msg("Blurred wallpaper frames already cached")
			continue
		}

		m.log.Info().
			Str("output", name).
			Int("frames", len(pending)).
			Msg("Generating blurred wallpaper frames, this may take a minute")
		if err := m.gen.Generate(ctx, mo.cached, pending); err != nil {
			return fmt.Errorf("failed to generate frames for output %s: %w", name, err)
		}
	}

	m.prepared = true
	return nil
}

func missingJobs(jobs []frames.Job) []frames.Job {
	var pending []frames.Job
	for _, job := range jobs {
		if _, err := os.Stat(job.OutputPath); err != nil {
			pending = append(pending, job)
		}
	}
	return pending
}

// Listen subscribes to the sway event stream and blocks, processing events
// one at a time until ctx is cancelled or the connection closes. Prepare
// must have completed first.
func (m *Manager) Listen(ctx context.Context) error {
	if !m.prepared {
		return fmt.Errorf("cannot listen before frame preparation has completed")
	}

	m.log.Info().Msg("Listening for sway events")
	h := eventHandler{
		EventHandler: sway.NoOpEventHandler(),
		manager:      m,
	}
	return m.subscribeFn(ctx, h, sway.EventTypeWindow, sway.EventTypeWorkspace)
}

// eventHandler funnels the qualifying sway events into the manager.
type eventHandler struct {
	sway.EventHandler
	manager *Manager
}

func (h eventHandler) Window(ctx context.Context, e sway.WindowEvent) {
	switch e.Change {
	case "new", "close", "move":
		h.manager.handle(ctx)
	}
}

func (h eventHandler) Workspace(ctx context.Context, e sway.WorkspaceEvent) {
	if e.Change == "focus" {
		h.manager.handle(ctx)
	}
}

// handle runs one query-decide-act iteration. Errors are contained to this
// event; the loop keeps running.
func (m *Manager) handle(ctx context.Context) {
	tree, err := m.tree.GetTree(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("Failed to query window tree")
		return
	}

	f, ok := resolveFocus(tree)
	if !ok {
		m.log.Debug().Msg("No focused node in tree")
		return
	}

	mo, ok := m.outputs[f.outputName]
	if !ok {
		m.log.Debug().Str("output", f.outputName).Msg("Output has no wallpaper configured")
		return
	}

	target := stateNonEmpty
	if f.workspaceEmpty() {
		target = stateEmpty
	}

	m.mu.RLock()
	prev := m.state[f.outputName]
	m.mu.RUnlock()
	if prev == target {
		m.log.Debug().
			Str("output", f.outputName).
			Str("state", target.String()).
			Msg("Output already in target state")
		return
	}

	var animErr error
	if target == stateEmpty {
		animErr = mo.out.Unblur(ctx)
	} else {
		animErr = mo.out.Blur(ctx)
	}

	next := target
	if animErr != nil {
		m.log.Error().Err(animErr).Str("output", f.outputName).Msg("Animation failed")
		// Forget the state so the next event retries the animation.
		next = stateUnknown
	}

	m.mu.Lock()
	m.state[f.outputName] = next
	m.mu.Unlock()

	if animErr == nil {
		m.notify(OutputStatus{
			Name:   f.outputName,
			Frames: mo.out.FrameCount(),
			State:  target.String(),
		})
	}
}

// Snapshot returns the current status of every managed output, sorted by
// name.
func (m *Manager) Snapshot() []OutputStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]OutputStatus, 0, len(m.outputs))
	for name, mo := range m.outputs {
		statuses = append(statuses, OutputStatus{
			Name:   name,
			Frames: mo.out.FrameCount(),
			State:  m.state[name].String(),
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// Subscribe adds a listener for output state transitions.
func (m *Manager) Subscribe() chan OutputStatus {
	ch := make(chan OutputStatus, 10)
	m.mu.Lock()
	m.listeners = append(m.listeners, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener.
func (m *Manager) Unsubscribe(ch chan OutputStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, listener := range m.listeners {
		if listener == ch {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

func (m *Manager) notify(status OutputStatus) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, listener := range m.listeners {
		select {
		case listener <- status:
		default:
			// Skip if channel is full
		}
	}
}
