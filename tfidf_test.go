package textvec

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTfIdfFit(t *testing.T) {
	v := NewTfIdf(0, false)
	v.Fit([]string{"a b", "a"})

	// Terms ordered by descending df: a (df=2), b (df=1).
	want := []string{"a", "b"}
	if !reflect.DeepEqual(v.Terms(), want) {
		t.Errorf("Terms() = %v, want %v", v.Terms(), want)
	}
}

func TestTfIdfTransform(t *testing.T) {
	v := NewTfIdf(0, false)
	rows, err := v.Fit([]string{"a b", "a"}).Transform([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}

	// idf(a) = ln(2/3), idf(b) = ln(2/2) = 0.
	wantA := float32(math.Log(2.0 / 3.0))
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("unexpected shape: %v", rows)
	}
	if math.Abs(float64(rows[0][0]-wantA)) > 1e-6 {
		t.Errorf("rows[0][0] = %v, want %v", rows[0][0], wantA)
	}
	if rows[0][1] != 0 {
		t.Errorf("rows[0][1] = %v, want 0", rows[0][1])
	}
}

func TestTfIdfNegativeIdfForUbiquitousTerm(t *testing.T) {
	v := NewTfIdf(0, false)
	rows, err := v.Fit([]string{"a", "a", "a"}).Transform([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	// df(a) = N = 3, so idf = ln(3/4) < 0 by the +1 smoothing.
	if rows[0][0] >= 0 {
		t.Errorf("idf weight = %v, want negative", rows[0][0])
	}
}

func TestTfIdfTopKRestriction(t *testing.T) {
	corpus := []string{"a b", "a c", "a"}
	v := NewTfIdf(1, false)
	v.Fit(corpus)

	if got := v.Terms(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Terms() = %v, want [a]", got)
	}

	// Dropped terms contribute nothing, not a down-weighted value.
	rows, err := v.Transform([]string{"b c b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0]) != 1 || rows[0][0] != 0 {
		t.Errorf("Transform = %v, want single zero entry", rows[0])
	}
}

func TestTfIdfNormalize(t *testing.T) {
	corpus := []string{"a b c", "b c d", "c d e"}
	v := NewTfIdf(0, true)
	rows, err := FitTransform(v, corpus)
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range rows {
		var sum float64
		for _, x := range row {
			sum += float64(x) * float64(x)
		}
		norm := math.Sqrt(sum)
		if norm == 0 {
			continue
		}
		if math.Abs(norm-1.0) > 1e-3 {
			t.Errorf("row %d L2 norm = %v, want ~1.0", i, norm)
		}
	}
}

func TestTfIdfNormalizeZeroRow(t *testing.T) {
	v := NewTfIdf(0, true)
	rows, err := v.Fit([]string{"a b"}).Transform([]string{"x y"})
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range rows[0] {
		if x != 0 {
			t.Errorf("entry %d = %v, want 0", i, x)
		}
	}
}

func TestTfIdfNotFitted(t *testing.T) {
	v := NewTfIdf(0, false)
	if _, err := v.Transform([]string{"a"}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("Transform before Fit: err = %v, want ErrNotFitted", err)
	}
	if v.Terms() != nil {
		t.Errorf("Terms() before Fit = %v, want nil", v.Terms())
	}
}

func TestTfIdfEmptyCorpus(t *testing.T) {
	v := NewTfIdf(0, false)
	rows, err := v.Fit(nil).Transform([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0]) != 0 {
		t.Errorf("expected one zero-width row, got %v", rows)
	}
}

func TestTfIdfIdempotent(t *testing.T) {
	v := NewTfIdf(0, true)
	v.Fit([]string{"a b c", "a b", "a"})

	texts := []string{"a b x", "c"}
	first, err := v.Transform(texts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.Transform(texts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Transform differs: %v vs %v", first, second)
	}
}
