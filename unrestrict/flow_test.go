package unrestrict

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	unrestricted int
	kept         int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnUnrestrict: func() { r.unrestricted++ },
		OnKeep:       func() { r.kept++ },
	}
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func drain(f *Flow) {
	for f.Remaining() > 0 {
		f.Tick()
	}
}

func TestNewDrawsDistinctQuestionsOnce(t *testing.T) {
	var rec recorder
	f := New(DefaultPool, rec.callbacks(), WithRand(seeded()))
	require.Equal(t, DefaultQuestions, f.Total())
	assert.Equal(t, DefaultWait, f.Remaining())

	seen := map[string]bool{}
	for _, q := range f.Questions() {
		assert.False(t, seen[q.Prompt], "duplicate question %q", q.Prompt)
		seen[q.Prompt] = true
	}

	first := append([]Question(nil), f.Questions()...)
	_ = f.Current()
	f.Tick()
	assert.Equal(t, first, f.Questions())
	assert.Len(t, DefaultPool, 15)
}

func TestConfirmRejectedWhileCountingDown(t *testing.T) {
	var rec recorder
	f := New(DefaultPool, rec.callbacks(), WithRand(seeded()))

	for i := 0; i < f.Total(); i++ {
		require.Equal(t, i, f.Index())
		for left := DefaultWait; left > 0; left-- {
			assert.False(t, f.Ready())
			assert.ErrorIs(t, f.Confirm(), ErrCountdownActive, "question %d with %d left", i, left)
			f.Tick()
		}
		require.True(t, f.Ready())
		require.NoError(t, f.Confirm())
	}

	assert.Equal(t, Unrestricted, f.Outcome())
	assert.Equal(t, 1, rec.unrestricted)
	assert.Equal(t, 0, rec.kept)
}

func TestConfirmAllCallsUnrestrictOnce(t *testing.T) {
	var rec recorder
	f := New(DefaultPool, rec.callbacks(), WithRand(seeded()))
	for !f.Done() {
		drain(f)
		require.NoError(t, f.Confirm())
	}
	assert.Equal(t, 1, rec.unrestricted)
	assert.ErrorIs(t, f.Confirm(), ErrResolved)
	assert.ErrorIs(t, f.Decline(), ErrResolved)
	assert.Equal(t, 1, rec.unrestricted)
	assert.Equal(t, 0, rec.kept)
}

func TestDeclineAtAnyIndexKeeps(t *testing.T) {
	for stop := 0; stop < DefaultQuestions; stop++ {
		var rec recorder
		f := New(DefaultPool, rec.callbacks(), WithRand(seeded()))
		for f.Index() < stop {
			drain(f)
			require.NoError(t, f.Confirm())
		}
		f.Tick()
		require.NoError(t, f.Decline())

		assert.Equal(t, Kept, f.Outcome(), "index %d", stop)
		assert.Equal(t, 0, rec.unrestricted)
		assert.Equal(t, 1, rec.kept)
		assert.Equal(t, Question{}, f.Current())
	}
}

func TestTickStopsAtZero(t *testing.T) {
	f := New(DefaultPool, Callbacks{}, WithWait(2))
	f.Tick()
	f.Tick()
	f.Tick()
	assert.Equal(t, 0, f.Remaining())
	require.NoError(t, f.Confirm())
	assert.Equal(t, 2, f.Remaining())
}

func TestSmallPool(t *testing.T) {
	pool := DefaultPool[:3]
	var rec recorder
	f := New(pool, rec.callbacks(), WithWait(0))
	require.Equal(t, 3, f.Total())
	for !f.Done() {
		require.NoError(t, f.Confirm())
	}
	assert.Equal(t, 1, rec.unrestricted)
	assert.Equal(t, "unrestricted", f.Outcome().String())
}
