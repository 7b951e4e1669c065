package sample

// HistoryCap is the maximum number of samples a History retains.
const HistoryCap = 20

// History keeps recently grabbed samples, most recent first. The zero value
// is an empty history ready to use.
type History struct {
	samples []Sample
}

// Push inserts s at the front, evicting the oldest entry once the cap is
// reached.
func (h *History) Push(s Sample) {
	h.samples = append([]Sample{s}, h.samples...)
	if len(h.samples) > HistoryCap {
		h.samples = h.samples[:HistoryCap]
	}
}

// All returns a copy of the stored samples, most recent first.
func (h *History) All() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// At returns the sample at index i, where index 0 is the most recent.
func (h *History) At(i int) Sample {
	return h.samples[i]
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return len(h.samples)
}

// Clear removes all stored samples.
func (h *History) Clear() {
	h.samples = nil
}
