package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	titles, studies, err := readCSV(f)
	if err != nil {
		panic(err)
	}
	for _, title := range titles {
		cs := studies[title]
		fmt.Printf("Title = %s\n", cs.title)
		fmt.Printf("%6s %14s %14s %8s %8s\n", "N", "RMS", "MAX", "p(RMS)", "p(MAX)")
		for i := range cs.numPanels {
			if i == 0 {
				fmt.Printf("%6d %14.6e %14.6e\n", cs.numPanels[i], cs.rms[i], cs.max[i])
				continue
			}
			fmt.Printf("%6d %14.6e %14.6e %8.3f %8.3f\n",
				cs.numPanels[i], cs.rms[i], cs.max[i], cs.Order(i, cs.rms), cs.Order(i, cs.max))
		}
	}
}

type ConvergenceStudy struct {
	title     string
	numPanels []int
	maxGamma  []float64
	rms, max  []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(numPanels int, maxGamma, rms, max float64) {
	cs.numPanels = append(cs.numPanels, numPanels)
	cs.maxGamma = append(cs.maxGamma, maxGamma)
	cs.rms = append(cs.rms, rms)
	cs.max = append(cs.max, max)
}

// Order is the observed order of accuracy between entries i-1 and i:
// log(e1/e2) / log(N2/N1).
func (cs *ConvergenceStudy) Order(i int, e []float64) float64 {
	if i < 1 || i >= len(e) || cs.numPanels[i] == cs.numPanels[i-1] {
		return math.NaN()
	}
	return math.Log(e[i-1]/e[i]) / math.Log(float64(cs.numPanels[i])/float64(cs.numPanels[i-1]))
}

func readCSV(rd io.Reader) (titles []string, studies map[string]*ConvergenceStudy, err error) {
	var (
		records                 [][]string
		ok                      bool
		cs                      *ConvergenceStudy
		npts                    int
		maxGamma, rms, maxError float64
	)
	studies = make(map[string]*ConvergenceStudy)
	r := csv.NewReader(bufio.NewReader(rd))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 5 {
			err = fmt.Errorf("line %d: need 5 fields, have %d", i+1, len(rec))
			return
		}
		title := rec[0]
		if npts, err = strconv.Atoi(rec[1]); err != nil {
			return
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
			titles = append(titles, title)
		}
		if maxGamma, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return
		}
		if rms, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return
		}
		if maxError, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return
		}
		cs.Add(npts, maxGamma, rms, maxError)
	}
	return
}
