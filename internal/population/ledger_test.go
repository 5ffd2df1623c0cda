package population

import (
	"testing"

	"phylon/internal/model"
)

func TestLedgerKeepsAscendingScoreOrder(t *testing.T) {
	ledger := NewLedger[int](4)
	ledger.Insert(3, model.Chromosome[int]{3})
	ledger.Insert(1, model.Chromosome[int]{1})
	ledger.Insert(2, model.Chromosome[int]{2})

	for i, want := range []float64{1, 2, 3} {
		if got := ledger.ScoreAt(i); got != want {
			t.Fatalf("score at %d: got=%g want=%g", i, got, want)
		}
	}
	if ledger.Len() != 3 {
		t.Fatalf("unexpected length: %d", ledger.Len())
	}
	if total := ledger.TotalScore(); total != 6 {
		t.Fatalf("unexpected total: %g", total)
	}
}

func TestLedgerBestPrefersMostRecentAmongTies(t *testing.T) {
	ledger := NewLedger[int](4)
	ledger.Insert(5, model.Chromosome[int]{1})
	ledger.Insert(5, model.Chromosome[int]{2})
	ledger.Insert(5, model.Chromosome[int]{3})

	best := ledger.Best()
	if best.Score != 5 {
		t.Fatalf("unexpected best score: %g", best.Score)
	}
	if best.Chromosome[0] != 3 {
		t.Fatalf("expected most recent tie to win, got %v", best.Chromosome)
	}
}

func TestLedgerBestOnEmptyReturnsZeroEntry(t *testing.T) {
	ledger := NewLedger[int](0)
	best := ledger.Best()
	if best.Score != 0 || best.Chromosome != nil {
		t.Fatalf("expected zero entry, got %+v", best)
	}
}

func TestLedgerOutOfRangeAccess(t *testing.T) {
	ledger := NewLedger[int](2)
	ledger.Insert(1, model.Chromosome[int]{10})
	ledger.Insert(2, model.Chromosome[int]{20})

	if got := ledger.ScoreAt(-1); got != 0 {
		t.Fatalf("negative index score: got=%g want=0", got)
	}
	if got := ledger.ScoreAt(5); got != 0 {
		t.Fatalf("high index score: got=%g want=0", got)
	}
	if got := ledger.ChromosomeAt(5); got[0] != 20 {
		t.Fatalf("high index chromosome should fall back to best, got %v", got)
	}
	if got := ledger.ChromosomeAt(-1); got[0] != 20 {
		t.Fatalf("negative index chromosome should fall back to best, got %v", got)
	}
}

func TestLedgerAtCumulative(t *testing.T) {
	ledger := NewLedger[int](3)
	ledger.Insert(1, model.Chromosome[int]{1})
	ledger.Insert(2, model.Chromosome[int]{2})
	ledger.Insert(3, model.Chromosome[int]{3})

	// Cumulative sums in ascending order are 1, 3, 6.
	cases := []struct {
		threshold float64
		want      int
	}{
		{0, 1},
		{1, 1},
		{1.5, 2},
		{3, 2},
		{3.1, 3},
		{6, 3},
	}
	for _, tc := range cases {
		if got := ledger.AtCumulative(tc.threshold); got[0] != tc.want {
			t.Fatalf("threshold %g: got=%v want=%d", tc.threshold, got, tc.want)
		}
	}

	// Beyond the total, fall back to the best entry.
	if got := ledger.AtCumulative(100); got[0] != 3 {
		t.Fatalf("overshoot should return best, got %v", got)
	}
}

func TestLedgerToleratesNonPositiveTotals(t *testing.T) {
	ledger := NewLedger[int](2)
	ledger.Insert(-2, model.Chromosome[int]{1})
	ledger.Insert(-1, model.Chromosome[int]{2})

	if total := ledger.TotalScore(); total != -3 {
		t.Fatalf("unexpected total: %g", total)
	}
	if got := ledger.AtCumulative(0); got[0] != 2 {
		t.Fatalf("non-positive total should fall back to best, got %v", got)
	}
}
