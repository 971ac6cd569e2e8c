package unrestrict

import (
	"errors"
	"math/rand/v2"
)

const (
	DefaultQuestions = 10
	DefaultWait      = 5 // countdown ticks per question, one per second
)

var (
	ErrCountdownActive = errors.New("countdown still running")
	ErrResolved        = errors.New("flow already resolved")
)

// Outcome is the terminal result of a flow.
type Outcome int

const (
	Pending Outcome = iota
	Unrestricted
	Kept
)

func (o Outcome) String() string {
	switch o {
	case Unrestricted:
		return "unrestricted"
	case Kept:
		return "kept"
	default:
		return "pending"
	}
}

// Callbacks are invoked exactly once, for the outcome the flow resolves to.
type Callbacks struct {
	OnUnrestrict func()
	OnKeep       func()
}

type Option func(*Flow)

// WithQuestionCount caps how many questions are drawn from the pool.
func WithQuestionCount(n int) Option { return func(f *Flow) { f.count = n } }

// WithWait sets the countdown length per question.
func WithWait(ticks int) Option { return func(f *Flow) { f.wait = ticks } }

// WithRand fixes the shuffle source.
func WithRand(r *rand.Rand) Option { return func(f *Flow) { f.rng = r } }

// Flow walks the user through a fixed, shuffled list of questions. Each
// question must be shown for the full countdown before it can be confirmed;
// declining at any point keeps the restriction.
type Flow struct {
	questions []Question
	index     int
	remaining int
	wait      int
	count     int
	outcome   Outcome
	cb        Callbacks
	rng       *rand.Rand
}

// New shuffles a copy of pool once and keeps the first count questions for
// the flow's lifetime.
func New(pool []Question, cb Callbacks, opts ...Option) *Flow {
	f := &Flow{count: DefaultQuestions, wait: DefaultWait, cb: cb}
	for _, opt := range opts {
		opt(f)
	}
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	shuffle := rand.Shuffle
	if f.rng != nil {
		shuffle = f.rng.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if f.count > 0 && f.count < len(shuffled) {
		shuffled = shuffled[:f.count]
	}
	f.questions = shuffled
	f.remaining = f.wait
	if len(f.questions) == 0 {
		f.resolve(Unrestricted)
	}
	return f
}

func (f *Flow) Questions() []Question { return f.questions }
func (f *Flow) Index() int            { return f.index }
func (f *Flow) Total() int            { return len(f.questions) }
func (f *Flow) Remaining() int        { return f.remaining }
func (f *Flow) Outcome() Outcome      { return f.outcome }
func (f *Flow) Done() bool            { return f.outcome != Pending }

// Ready reports whether Confirm would currently be accepted.
func (f *Flow) Ready() bool { return !f.Done() && f.remaining == 0 }

// Last reports whether the current question is the final one.
func (f *Flow) Last() bool { return f.index == len(f.questions)-1 }

// Current returns the question being asked. It is the zero Question once resolved.
func (f *Flow) Current() Question {
	if f.Done() {
		return Question{}
	}
	return f.questions[f.index]
}

// Tick advances the countdown by one step; it never goes below zero.
func (f *Flow) Tick() {
	if f.Done() || f.remaining == 0 {
		return
	}
	f.remaining--
}

// Confirm answers "yes" to the current question.
func (f *Flow) Confirm() error {
	if f.Done() {
		return ErrResolved
	}
	if f.remaining > 0 {
		return ErrCountdownActive
	}
	if f.Last() {
		f.resolve(Unrestricted)
		return nil
	}
	f.index++
	f.remaining = f.wait
	return nil
}

// Decline answers "no"; the countdown does not matter.
func (f *Flow) Decline() error {
	if f.Done() {
		return ErrResolved
	}
	f.resolve(Kept)
	return nil
}

func (f *Flow) resolve(o Outcome) {
	f.outcome = o
	f.remaining = 0
	switch o {
	case Unrestricted:
		if f.cb.OnUnrestrict != nil {
			f.cb.OnUnrestrict()
		}
	case Kept:
		if f.cb.OnKeep != nil {
			f.cb.OnKeep()
		}
	}
}
