package grammar

import (
	"errors"
	"reflect"
	"testing"
)

const digitsGrammar = `doc = { digit ~ digit ~ "!" }

digit = { '0'..'9' }
`

func mustCompile(t *testing.T, src string) *Grammar {
	t.Helper()

	g, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	return g
}

func recordEvents(t *testing.T, g *Grammar, start, input string) ([]Event, Result) {
	t.Helper()

	var events []Event

	result, err := g.Parse(start, input, func(ev Event) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return events, result
}

func TestParse_MatchAndEventOrder(t *testing.T) {
	g := mustCompile(t, digitsGrammar)

	events, result := recordEvents(t, g, "doc", "12!")

	if !result.Matched {
		t.Fatalf("expected match, failed at %d expecting %v", result.FailPos, result.Expected)
	}

	if result.End != 3 {
		t.Errorf("expected end 3, got %d", result.End)
	}

	expected := []Event{
		{Kind: EnterEvent, Rule: "doc", Pos: 0},
		{Kind: EnterEvent, Rule: "digit", Pos: 0},
		{Kind: ExitEvent, Rule: "digit", Pos: 0, End: 1, Matched: true},
		{Kind: EnterEvent, Rule: "digit", Pos: 1},
		{Kind: ExitEvent, Rule: "digit", Pos: 1, End: 2, Matched: true},
		{Kind: ExitEvent, Rule: "doc", Pos: 0, End: 3, Matched: true},
	}

	if !reflect.DeepEqual(events, expected) {
		t.Errorf("unexpected event sequence:\n got %v\nwant %v", events, expected)
	}
}

func TestParse_FailureReportsFarthestPosition(t *testing.T) {
	g := mustCompile(t, digitsGrammar)

	_, result := recordEvents(t, g, "doc", "12a")

	if result.Matched {
		t.Fatal("expected failure")
	}

	if result.FailPos != 2 {
		t.Errorf("expected failure at 2, got %d", result.FailPos)
	}

	if !reflect.DeepEqual(result.Expected, []string{"doc"}) {
		t.Errorf("expected [doc], got %v", result.Expected)
	}
}

func TestParse_FailureInsideNestedRule(t *testing.T) {
	g := mustCompile(t, digitsGrammar)

	_, result := recordEvents(t, g, "doc", "ab")

	if result.Matched {
		t.Fatal("expected failure")
	}

	if result.FailPos != 0 {
		t.Errorf("expected failure at 0, got %d", result.FailPos)
	}

	if !reflect.DeepEqual(result.Expected, []string{"digit"}) {
		t.Errorf("expected [digit], got %v", result.Expected)
	}
}

func TestParse_SilentRuleEmitsNoEvents(t *testing.T) {
	g := mustCompile(t, identGrammar)

	events, result := recordEvents(t, g, "ident_list", "hello world")

	if !result.Matched {
		t.Fatalf("expected match, failed at %d", result.FailPos)
	}

	for _, ev := range events {
		if ev.Rule == "ident_list" {
			t.Fatalf("silent rule leaked event %+v", ev)
		}
	}

	identEnters := 0

	for _, ev := range events {
		if ev.Kind == EnterEvent && ev.Rule == "ident" {
			identEnters++
		}
	}

	if identEnters != 2 {
		t.Errorf("expected 2 ident entries, got %d", identEnters)
	}
}

func TestParse_PredicateSuppressesEvents(t *testing.T) {
	g := mustCompile(t, identGrammar)

	events, result := recordEvents(t, g, "ident_list", "hello there")

	if !result.Matched {
		t.Fatalf("expected match, failed at %d", result.FailPos)
	}

	// The !digit lookahead runs digit internally but must not report it.
	for _, ev := range events {
		if ev.Rule == "digit" && ev.Pos == 0 {
			t.Fatalf("predicate leaked event %+v", ev)
		}
	}
}

func TestParse_Repetitions(t *testing.T) {
	g := mustCompile(t, `word = { alpha+ ~ "."? }

alpha = { 'a'..'z' }
`)

	cases := []struct {
		input   string
		matched bool
		end     int
	}{
		{"abc", true, 3},
		{"abc.", true, 4},
		{"a", true, 1},
		{".", false, 0},
		{"", false, 0},
	}

	for _, tc := range cases {
		result, err := g.Parse("word", tc.input, nil)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.input, err)
		}

		if result.Matched != tc.matched {
			t.Errorf("Parse(%q): matched = %v, want %v", tc.input, result.Matched, tc.matched)
		}

		if tc.matched && result.End != tc.end {
			t.Errorf("Parse(%q): end = %d, want %d", tc.input, result.End, tc.end)
		}
	}
}

func TestParse_PositiveLookahead(t *testing.T) {
	g := mustCompile(t, `tagged = { &letter ~ ANY ~ ANY }

letter = { 'a'..'z' }
`)

	result, err := g.Parse("tagged", "ab", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !result.Matched || result.End != 2 {
		t.Errorf("expected match to 2, got %+v", result)
	}

	result, err = g.Parse("tagged", "1b", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Matched {
		t.Error("expected lookahead to reject non-letter")
	}
}

func TestParse_UnknownStartRule(t *testing.T) {
	g := mustCompile(t, digitsGrammar)

	_, err := g.Parse("missing", "12!", nil)
	if err == nil {
		t.Fatal("expected error for unknown start rule")
	}
}

func TestParse_ListenerErrorAbortsRun(t *testing.T) {
	g := mustCompile(t, identGrammar)

	stop := errors.New("stop")
	count := 0

	_, err := g.Parse("ident_list", "hello world", func(Event) error {
		count++
		if count == 3 {
			return stop
		}

		return nil
	})

	if !errors.Is(err, stop) {
		t.Fatalf("expected wrapped listener error, got %v", err)
	}

	if count != 3 {
		t.Errorf("expected listener stopped after 3 events, got %d", count)
	}
}

func TestParse_SilentRecursionHitsStepLimit(t *testing.T) {
	// A silent rule never reaches the listener, so only the machine's
	// own invocation budget can stop this recursion.
	g := mustCompile(t, `loop = _{ loop }`)

	_, err := g.Parse("loop", "anything", nil, WithMaxSteps(128))
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}

func TestParse_PredicateRecursionHitsStepLimit(t *testing.T) {
	g := mustCompile(t, `a = { !a }`)

	_, err := g.Parse("a", "x", nil, WithMaxSteps(128))
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}

func TestParse_NullableRepetitionTerminates(t *testing.T) {
	g := mustCompile(t, `spin = { ("x"?)* ~ "y" }`)

	result, err := g.Parse("spin", "y", nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !result.Matched || result.End != 1 {
		t.Errorf("expected match to 1, got %+v", result)
	}
}
