package playback

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/output"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// divergenceTolerance is how far a round's own total may drift from its
// derived total before it is logged.
const divergenceTolerance = 0.05

// Result describes one Advance step.
type Result struct {
	// From and To bound the entries exposed by this step.
	From, To int

	// Reset is true when the step rewound the session.
	Reset bool

	// Summaries are the fights flushed during this step, in emission order.
	Summaries []fight.Summary
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithGap sets the silence that ends a fight.
func WithGap(d time.Duration) Option {
	return func(p *Pipeline) {
		p.gap = d
	}
}

// Pipeline is the replay state for one loaded log: the timeline, its cursor,
// the fight aggregator and the output side. It is not safe for concurrent
// use.
type Pipeline struct {
	renderer output.Renderer
	sink     Sink
	logger   *slog.Logger
	gap      time.Duration

	session        string
	entries        []timeline.Entry
	cursor         *Cursor
	agg            *fight.Aggregator
	finalFlushDone bool
	fights         []fight.Summary
}

// New creates an empty pipeline writing through renderer into sink.
func New(renderer output.Renderer, sink Sink, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: renderer,
		sink:     sink,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = Discard
	}
	p.agg = fight.NewAggregator(p.gap)
	p.cursor = NewCursor(nil)
	return p
}

// Load replaces the timeline and resets all playback state. Entries must
// already be ordered, as returned by timeline.Build.
func (p *Pipeline) Load(entries []timeline.Entry) {
	p.entries = entries
	p.cursor = NewCursor(entries)
	p.agg.Reset()
	p.finalFlushDone = false
	p.fights = nil
	p.session = uuid.NewString()
	if c, ok := p.sink.(Clearer); ok {
		c.Clear()
	}

	p.logger.Debug("timeline loaded",
		"session", p.session,
		"entries", len(entries),
		"duration", p.Duration())
}

// Advance exposes every entry up to elapsed virtual time since the first
// entry. Repeating the same elapsed is a no-op; a smaller one rewinds and
// replays from the start.
//
// A sink error stops the step. Entries after the one being written stay
// pending and are emitted by the next Advance; the entry that failed is not
// written again, since its effect on the fight figures is already counted.
func (p *Pipeline) Advance(elapsed time.Duration) (Result, error) {
	from, to, reset := p.cursor.Advance(elapsed)
	res := Result{From: from, To: to, Reset: reset}
	if len(p.entries) == 0 {
		return res, nil
	}

	if reset {
		p.agg.Reset()
		p.finalFlushDone = false
		p.fights = nil
		if c, ok := p.sink.(Clearer); ok {
			c.Clear()
		}
		p.logger.Debug("playback rewound", "session", p.session, "elapsed", elapsed)
	}

	for i := from; i < to; i++ {
		e := &p.entries[i]
		if err := p.emitSummary(&res, p.agg.CheckTimeout(e.Timestamp)); err != nil {
			return p.interrupt(res, i, err)
		}
		if err := p.emitEntry(&res, e); err != nil {
			return p.interrupt(res, i+1, err)
		}
	}

	if err := p.emitSummary(&res, p.agg.CheckTimeout(p.cursor.Cutoff())); err != nil {
		return res, err
	}

	if p.cursor.AtEnd() {
		if !p.finalFlushDone {
			p.finalFlushDone = true
			if err := p.emitSummary(&res, p.agg.FlushNow()); err != nil {
				return res, err
			}
		}
	} else {
		p.finalFlushDone = false
	}

	return res, nil
}

// interrupt ends a step early, leaving entries from next on pending.
func (p *Pipeline) interrupt(res Result, next int, err error) (Result, error) {
	p.cursor.pos = next
	res.To = next
	return res, err
}

// Drain advances to the end of the timeline.
func (p *Pipeline) Drain() (Result, error) {
	return p.Advance(max(p.cursor.Elapsed(), p.Duration()))
}

// Duration is the span between the first and last entry.
func (p *Pipeline) Duration() time.Duration {
	return p.cursor.Duration()
}

// Elapsed returns the virtual time reached so far.
func (p *Pipeline) Elapsed() time.Duration {
	return p.cursor.Elapsed()
}

// Done reports whether the whole timeline has been played and flushed.
// An empty timeline is always done.
func (p *Pipeline) Done() bool {
	return len(p.entries) == 0 || (p.cursor.AtEnd() && p.finalFlushDone)
}

// Session returns the ID assigned at the last Load.
func (p *Pipeline) Session() string {
	return p.session
}

// Entries returns the loaded timeline.
func (p *Pipeline) Entries() []timeline.Entry {
	return p.entries
}

// Fights returns every summary flushed since the last load or rewind.
func (p *Pipeline) Fights() []fight.Summary {
	return p.fights
}

func (p *Pipeline) emitEntry(res *Result, e *timeline.Entry) error {
	switch e.Kind {
	case timeline.KindNarrative:
		return p.write(p.renderer.Narrative(e.Text))
	case timeline.KindDamageRound:
		rs := fight.Derive(e.Damage)
		p.checkDivergence(e, rs)
		if err := p.emitSummary(res, p.agg.Add(rs, e.Timestamp)); err != nil {
			return err
		}
		return p.write(p.renderer.Round(e.Damage, rs))
	}
	return nil
}

func (p *Pipeline) emitSummary(res *Result, s *fight.Summary) error {
	if s == nil {
		return nil
	}
	res.Summaries = append(res.Summaries, *s)
	p.fights = append(p.fights, *s)
	p.logger.Debug("fight flushed",
		"session", p.session,
		"reason", s.Reason,
		"rounds", s.Rounds,
		"damage", s.Totals.Damage)
	return p.write(p.renderer.Summary(s))
}

func (p *Pipeline) write(lines []string) error {
	for _, line := range lines {
		if err := p.sink.WriteLine(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) checkDivergence(e *timeline.Entry, rs fight.RoundStats) {
	r := e.Damage
	if r == nil || (len(r.BySource) == 0 && len(r.Events) == 0) {
		return
	}
	if math.Abs(r.TotalDamage-rs.Totals.Damage) > divergenceTolerance {
		p.logger.Debug("round totals diverge",
			"session", p.session,
			"timestamp", e.Timestamp,
			"round_total", r.TotalDamage,
			"derived_total", rs.Totals.Damage)
	}
}
