package metrics

import "testing"

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"hello", "hello world", 6},
		{"こんにちは", "こんばんは", 2},
		{"abc", "abc", 0},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"short", "a much longer string"},
		{"日本語テキスト", "日本語"},
	}
	for _, p := range pairs {
		if ab, ba := Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]); ab != ba {
			t.Errorf("Levenshtein(%q, %q)=%d but reversed=%d", p[0], p[1], ab, ba)
		}
	}
}

func TestCompareIdentity(t *testing.T) {
	s := Compare("hello world", "hello world")
	if !s.ExactMatch || s.EditDistance != 0 || s.CER != 0.0 {
		t.Fatalf("identity score = %+v", s)
	}
}

func TestCompareNormalizesBothSides(t *testing.T) {
	// "hello   world\n" normalizes to "hello world"; fullwidth digits fold too.
	s := Compare("hello   world\n", "hello world")
	if !s.ExactMatch || s.EditDistance != 0 || s.CER != 0.0 {
		t.Fatalf("whitespace variant score = %+v", s)
	}
	s = Compare("１２３", "123")
	if !s.ExactMatch {
		t.Fatalf("fullwidth digits should match ASCII after NFKC: %+v", s)
	}
}

func TestComparePartial(t *testing.T) {
	// Transforming "hello" into "hello world" inserts " world" = 6 chars.
	s := Compare("hello", "hello world")
	if s.ExactMatch {
		t.Fatal("should not be an exact match")
	}
	if s.EditDistance != 6 {
		t.Fatalf("edit distance = %d, want 6", s.EditDistance)
	}
	wantCER := 6.0 / 11.0
	if s.CER < wantCER-1e-9 || s.CER > wantCER+1e-9 {
		t.Fatalf("CER = %f, want %f", s.CER, wantCER)
	}
}

func TestCompareEmptyGroundTruth(t *testing.T) {
	s := Compare("anything", "")
	if s.CER != 0.0 {
		t.Fatalf("CER against empty ground truth = %f, want 0", s.CER)
	}
	if s.EditDistance != 8 {
		t.Fatalf("edit distance = %d, want 8", s.EditDistance)
	}
	if s.PredictedLength != 8 || s.GroundTruthLength != 0 {
		t.Fatalf("lengths = %d/%d", s.PredictedLength, s.GroundTruthLength)
	}
}
