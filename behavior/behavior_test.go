package behavior

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behaviorkit/behave/internal/testutil"
	"github.com/behaviorkit/behave/match"
	"github.com/behaviorkit/behave/record"
)

func kinds(rep *Report) []Kind {
	out := make([]Kind, len(rep.Diagnostics))
	for i, d := range rep.Diagnostics {
		out[i] = d.Kind
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	b := New()
	assert.True(t, b.Strict())
	assert.True(t, b.Ordered())

	n := New(Nice(), Unordered())
	assert.False(t, n.Strict())
	assert.False(t, n.Ordered())
}

func TestVerify_PositiveConsumption(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Expect(b, log, match.Eq("v"))
	log.Append("v")

	rep := b.Verify()
	assert.True(t, rep.Empty(), "report: %s", rep.Render())
	assert.Equal(t, 0, b.Pending(), "fulfilled expectation must leave the registry")
}

func TestVerify_DuplicateInteraction_Unexpected(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Expect(b, log, match.Eq("v"))
	log.Append("v")
	log.Append("v")

	rep := b.Verify()
	assert.Equal(t, 1, rep.Count(KindUnexpected))
	assert.Equal(t, 0, rep.Count(KindUnfulfilled))
}

func TestVerify_Unfulfilled(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Expect(b, log, match.Eq("missing"))

	rep := b.Verify()
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, KindUnfulfilled, rep.Diagnostics[0].Kind)
	assert.Contains(t, rep.Diagnostics[0].Message, `equals "missing"`)
	assert.Contains(t, rep.Diagnostics[0].Message, "behavior_test.go:",
		"diagnostic should carry the registration site")
}

func TestVerify_NegativePersistence(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Never(b, log, match.Eq("boom"))
	log.Append("boom")
	log.Append("boom")
	log.Append("boom")

	rep := b.Verify()
	assert.Equal(t, 3, rep.Count(KindDisallowed),
		"every occurrence must be reported, not just the first")
	assert.Equal(t, 0, rep.Count(KindUnfulfilled))
	assert.Equal(t, 1, b.Pending(), "negative expectations are never consumed")
}

func TestVerify_OrderingEnforcement(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Expect(b, log, match.Eq("a"))
	Expect(b, log, match.Eq("b"))

	// Recorded out of order: b arrives while a is still due.
	log.Append("b")
	log.Append("a")

	rep := b.Verify()
	assert.Equal(t, []Kind{KindOrderViolation, KindUnfulfilled}, kinds(rep))
	assert.Contains(t, rep.Diagnostics[0].Message, `Interaction "b" does not match expectation equals "a"`)
	assert.Contains(t, rep.Diagnostics[1].Message, `equals "b"`,
		"b was rejected out of order, so its expectation stays unfulfilled")
}

func TestVerify_OrderingAcrossLogs(t *testing.T) {
	clock := record.NewClock()
	a := record.NewLogWithID[string](clock, "A")
	c := record.NewLogWithID[string](clock, "B")

	b := New()
	Expect(b, a, match.Eq("first"))
	Expect(b, c, match.Eq("second"))

	// Chronologically, B's interaction arrives before A's.
	c.Append("second")
	a.Append("first")

	rep := b.Verify()
	assert.Equal(t, []Kind{KindOrderViolation, KindUnfulfilled}, kinds(rep))
}

func TestVerify_NegativeTransparentToOrderedScan(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Never(b, log, match.Eq("boom"))
	Expect(b, log, match.Eq("a"))

	log.Append("a")

	rep := b.Verify()
	assert.True(t, rep.Empty(),
		"a negative expectation before a positive one must not block it: %s", rep.Render())
}

func TestVerify_NiceMode_IgnoresUnexpected(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New(Nice())
	Expect(b, log, match.Eq("wanted"))

	log.Append("noise")
	log.Append("wanted")
	log.Append("more noise")

	rep := b.Verify()
	assert.True(t, rep.Empty(), "nice mode tolerates unmatched interactions: %s", rep.Render())
}

func TestVerify_NiceMode_StillReportsDisallowed(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New(Nice())
	Never(b, log, match.Eq("boom"))
	log.Append("boom")

	rep := b.Verify()
	assert.Equal(t, 1, rep.Count(KindDisallowed))
}

func TestVerify_NiceOrdered_UnfulfilledStillReported(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New(Nice())
	Expect(b, log, match.Eq("a"))
	Expect(b, log, match.Eq("b"))

	log.Append("b")
	log.Append("a")

	rep := b.Verify()
	// No ordering diagnostic in nice mode, but the out-of-order b left
	// its expectation unfulfilled.
	assert.Equal(t, []Kind{KindUnfulfilled}, kinds(rep))
}

func TestVerify_Unordered(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New(Unordered())
	Expect(b, log, match.Eq("b"))
	Expect(b, log, match.Eq("a"))

	log.Append("a")
	log.Append("b")

	rep := b.Verify()
	assert.True(t, rep.Empty(), "unordered mode matches regardless of registration order: %s", rep.Render())
}

func TestVerify_EachInstanceNeedsOneInteraction(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New(Unordered())
	Expect(b, log, match.Eq("v"))
	Expect(b, log, match.Eq("v"))

	log.Append("v")

	rep := b.Verify()
	assert.Equal(t, 1, rep.Count(KindUnfulfilled),
		"two identical expectations require two matching interactions")
}

func TestVerify_ConcreteScenario(t *testing.T) {
	// Logs A=[2,4] (timestamps 1,3) and B=["foo","bar"] (timestamps 2,4);
	// expectations registered interleaved across both logs; strict and
	// ordered defaults; the chronological merge lines everything up.
	clock := record.NewClock()
	a := record.NewLogWithID[int](clock, "A")
	bb := record.NewLogWithID[string](clock, "B")

	a.AppendAt(2, 1)
	bb.AppendAt("foo", 2)
	a.AppendAt(4, 3)
	bb.AppendAt("bar", 4)

	b := New()
	Expect(b, a, match.Eq(2))
	Expect(b, bb, match.Eq("foo"))
	Expect(b, a, match.Eq(4))
	Expect(b, bb, match.Eq("bar"))

	rep := b.Verify()
	assert.True(t, rep.Empty(), "report: %s", rep.Render())
	assert.Equal(t, 0, b.Pending())
}

func TestVerify_HeterogeneousValueTypes(t *testing.T) {
	type payment struct {
		Amount int
		To     string
	}

	clock := record.NewClock()
	calls := record.NewLogWithID[string](clock, "calls")
	payments := record.NewLogWithID[payment](clock, "payments")

	b := New(Unordered())
	Expect(b, calls, match.Eq("open"))
	Expect(b, payments, match.Eq(payment{Amount: 5, To: "acme"}))

	calls.Append("open")
	payments.Append(payment{Amount: 5, To: "acme"})

	rep := b.Verify()
	assert.True(t, rep.Empty(), "report: %s", rep.Render())
}

func TestVerify_SecondPassSeesPrunedRegistry(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	Expect(b, log, match.Eq("v"))
	log.Append("v")

	require.True(t, b.Verify().Empty())

	// The fulfilled expectation is gone, so a second pass references no
	// logs at all and trivially passes.
	assert.True(t, b.Verify().Empty())
}

func TestExpectation_MatchesIsIdempotent(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")
	log.Append("v")

	e := newExpectation(log, match.Eq("v"), false, Location{})
	assert.True(t, e.matches(0))
	assert.True(t, e.matches(0), "no hidden state may advance between calls")
}

func TestExpect_ConcurrentRegistration(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[int](clock, "calls")

	b := New(Unordered())

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Expect(b, log, match.Eq(n))
		}(i)
	}
	wg.Wait()

	require.Equal(t, goroutines, b.Pending())

	for i := 0; i < goroutines; i++ {
		log.Append(i)
	}
	rep := b.Verify()
	assert.True(t, rep.Empty(), "report: %s", rep.Render())
}

func TestVerify_SeededFixture(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "ops")
	next := testutil.Seed(log, 1, "open", "write")
	testutil.Seed(log, next, "close")

	b := New()
	Expect(b, log, match.Eq("open"))
	Expect(b, log, match.Eq("write"))
	Expect(b, log, match.Eq("close"))

	rep := b.Verify()
	assert.True(t, rep.Empty(), "report: %s", rep.Render())
}

func TestVerify_DiagnosticText(t *testing.T) {
	clock := record.NewClock()
	log := record.NewLogWithID[string](clock, "calls")

	b := New()
	log.Append("stray")

	// No expectations reference the log, so nothing merges and nothing
	// is reported: verification only reasons about referenced logs.
	assert.True(t, b.Verify().Empty())

	Expect(b, log, match.Eq("wanted"))
	rep := b.Verify()
	require.Len(t, rep.Diagnostics, 2)
	assert.True(t, strings.HasPrefix(rep.Diagnostics[0].Message, `Interaction "stray" does not match expectation `))
	assert.True(t, strings.HasPrefix(rep.Diagnostics[1].Message, "Expectation not fulfilled: "))
}
