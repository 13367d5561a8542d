package sweep

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Record is one named measurement, an airfoil and the value of a single run.
type Record struct {
	Name  string
	Value float64
}

// Ranked is the mean of all records sharing a name.
type Ranked struct {
	Name  string
	Mean  float64
	Count int
}

// Results is a caller owned collection of run results. It is safe for
// concurrent Add from multiple goroutines.
type Results struct {
	mu      sync.Mutex
	records []Record
}

func NewResults() *Results {
	return &Results{}
}

func (r *Results) Add(name string, value float64) {
	r.mu.Lock()
	r.records = append(r.records, Record{Name: name, Value: value})
	r.mu.Unlock()
}

func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Records returns a copy in insertion order.
func (r *Results) Records() (recs []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(recs, r.records...)
}

// Group returns the values of each name. Names are listed in order of first
// appearance.
func (r *Results) Group() (names []string, grouped map[string][]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	grouped = make(map[string][]float64)
	for _, rec := range r.records {
		if _, present := grouped[rec.Name]; !present {
			names = append(names, rec.Name)
		}
		grouped[rec.Name] = append(grouped[rec.Name], rec.Value)
	}
	return
}

// Means averages the values of each name, in order of first appearance.
func (r *Results) Means() (means []Ranked) {
	names, grouped := r.Group()
	means = make([]Ranked, len(names))
	for i, name := range names {
		var (
			vals = grouped[name]
			sum  float64
		)
		for _, v := range vals {
			sum += v
		}
		means[i] = Ranked{Name: name, Mean: sum / float64(len(vals)), Count: len(vals)}
	}
	return
}

// Top returns the n names with the largest mean, largest first. Ties keep
// the order of first appearance.
func (r *Results) Top(n int) (top []Ranked) {
	top = r.Means()
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Mean > top[j].Mean
	})
	if n >= 0 && n < len(top) {
		top = top[:n]
	}
	return
}

// Print writes a ranking as a table.
func Print(w io.Writer, title string, ranked []Ranked) {
	fmt.Fprintf(w, "%s\n", title)
	for i, rk := range ranked {
		fmt.Fprintf(w, "%3d  %-12s %12.5f  (%d runs)\n", i+1, rk.Name, rk.Mean, rk.Count)
	}
}
