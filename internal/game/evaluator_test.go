package game

import "testing"

func TestEvaluateExactMatch(t *testing.T) {
	ev := Evaluate("good morning", "good morning")
	if !ev.IsCorrect || ev.Type != MatchExact || ev.Confidence != 1.0 {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}
}

func TestEvaluateNormalizesCaseAndPunctuation(t *testing.T) {
	ev := Evaluate("  Good   Morning! ", "good morning")
	if !ev.IsCorrect || ev.Type != MatchExact {
		t.Fatalf("normalization should yield exact match, got %+v", ev)
	}
	if ev.Confidence != 1.0 {
		t.Fatalf("exact match confidence must be 1.0, got %v", ev.Confidence)
	}
}

func TestEvaluateAcceptsArticleDrop(t *testing.T) {
	ev := Evaluate("check please", "the check, please")
	if !ev.IsCorrect || ev.Type != MatchPartial {
		t.Fatalf("expected partial match, got %+v", ev)
	}
	if ev.Confidence < 0.85 || ev.Confidence > 0.99 {
		t.Fatalf("partial confidence out of range: %v", ev.Confidence)
	}
}

func TestEvaluateAcceptsCloseMisspelling(t *testing.T) {
	ev := Evaluate("good morningg", "good morning")
	if !ev.IsCorrect || ev.Type != MatchFuzzy {
		t.Fatalf("expected fuzzy acceptance, got %+v", ev)
	}
	if ev.Confidence < fuzzyThreshold || ev.Confidence >= 1.0 {
		t.Fatalf("fuzzy confidence out of range: %v", ev.Confidence)
	}
}

func TestEvaluateRejectsWrongAnswer(t *testing.T) {
	ev := Evaluate("see you later", "good morning")
	if ev.IsCorrect || ev.Type != MatchNone {
		t.Fatalf("expected rejection, got %+v", ev)
	}
	if ev.Confidence < 0 || ev.Confidence >= fuzzyThreshold {
		t.Fatalf("rejected confidence should carry similarity below threshold, got %v", ev.Confidence)
	}
}

func TestEvaluateEmptyAnswer(t *testing.T) {
	ev := Evaluate("   ", "good morning")
	if ev.IsCorrect || ev.Type != MatchNone || ev.Confidence != 0 {
		t.Fatalf("empty answer must score zero, got %+v", ev)
	}
}

func TestSimilarityBounds(t *testing.T) {
	if s := similarity("abc", "abc"); s != 1.0 {
		t.Fatalf("identical strings similarity = %v", s)
	}
	if s := similarity("abc", "xyz"); s != 0 {
		t.Fatalf("disjoint strings similarity = %v", s)
	}
}
