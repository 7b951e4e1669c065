package sample

import "testing"

func TestHistoryPushOrder(t *testing.T) {
	var h History
	for i := 0; i < 3; i++ {
		h.Push(Sample{X: i})
	}

	all := h.All()
	if len(all) != 3 {
		t.Fatalf("Len = %d, want 3", len(all))
	}
	for i, want := range []int{2, 1, 0} {
		if all[i].X != want {
			t.Errorf("All()[%d].X = %d, want %d", i, all[i].X, want)
		}
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	var h History
	for i := 1; i <= HistoryCap+5; i++ {
		h.Push(Sample{X: i})
	}

	if h.Len() != HistoryCap {
		t.Fatalf("Len = %d, want %d", h.Len(), HistoryCap)
	}
	if h.At(0).X != HistoryCap+5 {
		t.Errorf("front = %d, want %d", h.At(0).X, HistoryCap+5)
	}
	if h.At(HistoryCap-1).X != 6 {
		t.Errorf("back = %d, want 6", h.At(HistoryCap-1).X)
	}
}

func TestHistoryClear(t *testing.T) {
	var h History
	h.Push(Sample{X: 1})
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", h.Len())
	}
}

func TestHistoryAllReturnsCopy(t *testing.T) {
	var h History
	h.Push(Sample{X: 1})

	all := h.All()
	all[0].X = 99
	if h.At(0).X != 1 {
		t.Error("mutating All() result changed the stored sample")
	}
}
