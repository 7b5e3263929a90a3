package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func label(pos int) *BacktrackLabel[rune] {
	return &BacktrackLabel[rune]{Marker: MarkerAt[rune](pos), Description: DefaultLabelDescription[rune]()}
}

func positions(labels []*BacktrackLabel[rune]) []int {
	var pos []int
	for _, l := range labels {
		pos = append(pos, l.Marker.Pos())
	}
	return pos
}

func TestDiagnosticListClearBacktrackLabels(t *testing.T) {
	tests := map[string]struct {
		givenLabels    []int
		givenUntil     int
		wantLabels     []int
		wantFurthest   int
		wantNoFurthest bool
	}{
		"keeps labels from until": {
			givenLabels:  []int{199, 200, 999, 150},
			givenUntil:   200,
			wantLabels:   []int{200, 999},
			wantFurthest: 999,
		},
		"clears all": {
			givenLabels:    []int{1, 2, 3},
			givenUntil:     10,
			wantNoFurthest: true,
		},
		"clears nothing": {
			givenLabels:  []int{5, 3, 5},
			givenUntil:   0,
			wantLabels:   []int{5, 3, 5},
			wantFurthest: 5,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var l DiagnosticList[rune]
			for _, pos := range tc.givenLabels {
				l.AddBacktrackLabel(label(pos))
			}
			l.ClearBacktrackLabels(MarkerAt[rune](tc.givenUntil))

			if diff := cmp.Diff(tc.wantLabels, positions(l.BacktrackLabels())); diff != "" {
				t.Errorf("labels: got diff (-want +got):\n%s", diff)
			}
			furthest := l.FurthestBacktrackLabel()
			switch {
			case tc.wantNoFurthest && furthest != nil:
				t.Errorf("want no furthest label, got %v", furthest.Marker)
			case !tc.wantNoFurthest && furthest == nil:
				t.Errorf("want furthest label at %d, got none", tc.wantFurthest)
			case !tc.wantNoFurthest && furthest.Marker.Pos() != tc.wantFurthest:
				t.Errorf("want furthest label at %d, got %v", tc.wantFurthest, furthest.Marker)
			}
		})
	}
}

func TestDiagnosticListFurthestIsFirstAtMaximum(t *testing.T) {
	var l DiagnosticList[rune]
	first, second := label(4), label(4)
	l.AddBacktrackLabel(label(1))
	l.AddBacktrackLabel(first)
	l.AddBacktrackLabel(second)
	l.AddBacktrackLabel(label(2))

	if l.FurthestBacktrackLabel() != first {
		t.Errorf("furthest label is not the first one at the maximum")
	}
}

func TestDiagnosticListCheckForFailures(t *testing.T) {
	tests := map[string]struct {
		givenLabels    []int
		wantReported   bool
		wantText       string
		wantEndOfInput bool
	}{
		"no labels":      {},
		"label at input": {givenLabels: []int{0, 2}, wantReported: true, wantText: "c"},
		"label at end":   {givenLabels: []int{3}, wantReported: true, wantEndOfInput: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewSliceReader([]rune("abc"), nil, func(c rune) string { return string(c) })
			for _, pos := range tc.givenLabels {
				r.EmitBacktrackLabel(label(pos))
			}

			l := r.Diagnostics()
			if got := l.CheckForFailures(r); got != tc.wantReported {
				t.Fatalf("want reported %v, got %v", tc.wantReported, got)
			}
			if len(l.BacktrackLabels()) != 0 || l.FurthestBacktrackLabel() != nil {
				t.Errorf("labels left after check")
			}
			if !tc.wantReported {
				if l.Len() != 0 {
					t.Errorf("want no diagnostics, got %d", l.Len())
				}
				return
			}

			d := l.Diagnostics()[0]
			if d.Text != tc.wantText || d.EndOfInput != tc.wantEndOfInput {
				t.Errorf("want text %q and end of input %v, got %q and %v", tc.wantText, tc.wantEndOfInput, d.Text, d.EndOfInput)
			}
			if !l.HasErrors() {
				t.Errorf("error diagnostic not counted")
			}
		})
	}
}
