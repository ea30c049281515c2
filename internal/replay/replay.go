package replay

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Iron-Ham/focusgrid/internal/eligibility"
	"github.com/Iron-Ham/focusgrid/internal/errors"
	"github.com/Iron-Ham/focusgrid/internal/fixture"
	"github.com/Iron-Ham/focusgrid/internal/logging"
	"github.com/Iron-Ham/focusgrid/internal/navigate"
	"github.com/Iron-Ham/focusgrid/internal/pick"
)

// defaultSeed seeds random steps when the fixture leaves Seed at zero.
const defaultSeed = 0x5eed

// Entry records the state after one step.
type Entry struct {
	Step     int                 `json:"step"`
	Op       fixture.Op          `json:"op"`
	Args     string              `json:"args,omitempty"`
	Outcome  eligibility.Outcome `json:"outcome,omitempty"`
	Location string              `json:"location"`
	Focused  string              `json:"focused,omitempty"`
	Picks    []string            `json:"picks"`
	Note     string              `json:"note,omitempty"`
}

// Transcript is the result of replaying a fixture. Entries[0] is the state
// before the first step and has Step -1.
type Transcript struct {
	Name    string          `json:"name"`
	Surface fixture.Surface `json:"surface"`
	Session string          `json:"session"`
	Entries []Entry         `json:"entries"`
}

// Outcomes returns the outcome of every step, in order.
func (t *Transcript) Outcomes() []eligibility.Outcome {
	var out []eligibility.Outcome
	for _, e := range t.Entries {
		if e.Step >= 0 {
			out = append(out, e.Outcome)
		}
	}
	return out
}

// Final returns the state after the last step.
func (t *Transcript) Final() Entry {
	if len(t.Entries) == 0 {
		return Entry{}
	}
	return t.Entries[len(t.Entries)-1]
}

// Option configures a replay.
type Option func(*runner)

// WithLogger sets the logger handed to navigate and pick.
func WithLogger(l *logging.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithSession sets the session ID instead of generating one.
func WithSession(id string) Option {
	return func(r *runner) { r.session = id }
}

// WithNavigateOptions sets the configured navigate defaults. The fixture's
// own policy fields are applied after them.
func WithNavigateOptions(opts ...navigate.Option) Option {
	return func(r *runner) { r.navOpts = append(r.navOpts, opts...) }
}

// WithPickOptions sets the configured pick defaults.
func WithPickOptions(opts ...pick.Option) Option {
	return func(r *runner) { r.pickOpts = append(r.pickOpts, opts...) }
}

type runner struct {
	logger   *logging.Logger
	session  string
	navOpts  []navigate.Option
	pickOpts []pick.Option
}

// driver applies steps to one surface and reports its state.
type driver interface {
	apply(step fixture.Step) (eligibility.Outcome, string, error)
	location() string
	focused() (string, bool)
	picks() []string
}

// Run replays every step of f and returns the transcript. It stops early
// when ctx is cancelled.
func Run(ctx context.Context, f *fixture.Fixture, opts ...Option) (*Transcript, error) {
	r := runner{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.session == "" {
		r.session = uuid.New().String()
	}
	if r.logger == nil {
		r.logger = logging.NopLogger()
	}
	logger := r.logger.WithSession(r.session)

	seed := f.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	navOpts := append(append([]navigate.Option{}, r.navOpts...), f.NavigateOptions()...)
	navOpts = append(navOpts,
		navigate.WithLogger(logger),
		navigate.WithRand(rand.New(rand.NewPCG(seed, seed))))
	pickOpts := append(append([]pick.Option{}, r.pickOpts...), f.PickOptions()...)
	pickOpts = append(pickOpts, pick.WithLogger(logger))

	var d driver
	var err error
	if f.Kind == fixture.SurfacePlane {
		d, err = newPlaneDriver(f, navOpts, pickOpts)
	} else {
		d, err = newListDriver(f, navOpts, pickOpts)
	}
	if err != nil {
		return nil, errors.NewFixtureError("building initial snapshot", err).WithPath(f.Path)
	}

	t := &Transcript{Name: f.Name, Surface: f.Kind, Session: r.session}
	t.Entries = append(t.Entries, record(d, Entry{Step: -1, Op: "init"}))

	stepLog := logger.WithOperation("replay.step")
	for i, step := range f.Steps {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		outcome, note, err := d.apply(step)
		if err != nil {
			return t, errors.NewFixtureError("replaying step", err).WithPath(f.Path).WithStep(i)
		}
		e := record(d, Entry{Step: i, Op: step.Op, Args: describe(step), Outcome: outcome, Note: note})
		stepLog.Debug("applied step", "step", i, "op", string(step.Op), "outcome", string(outcome), "location", e.Location)
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

func record(d driver, e Entry) Entry {
	e.Location = d.location()
	if key, ok := d.focused(); ok {
		e.Focused = key
	}
	e.Picks = d.picks()
	return e
}
