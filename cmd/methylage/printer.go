package main

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/methylage/analyzer"
	"github.com/gocarina/gocsv"
)

func init() {
	// All results are written tab-delimited
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		return gocsv.NewSafeCSVWriter(w)
	})
}

type summaryRow struct {
	Sample string  `csv:"SampleID"`
	Age    float64 `csv:"Age"`
	N      int     `csv:"N"`
	Mean   float64 `csv:"Mean"`
	SD     float64 `csv:"SD"`
	Median float64 `csv:"Median"`
	Min    float64 `csv:"Min"`
	Max    float64 `csv:"Max"`
}

type varianceRow struct {
	Probe    string  `csv:"cpgSite"`
	N        int     `csv:"N"`
	Variance float64 `csv:"Variance"`
}

type tTestRow struct {
	Probe string  `csv:"cpgSite"`
	N1    int     `csv:"N1"`
	N2    int     `csv:"N2"`
	Mean1 float64 `csv:"Mean1"`
	Mean2 float64 `csv:"Mean2"`
	T     float64 `csv:"T"`
	DF    float64 `csv:"DF"`
	P     float64 `csv:"P"`
}

type correlationRow struct {
	Probe string  `csv:"cpgSite"`
	R     float64 `csv:"PearsonR"`
}

func printSummary(w io.Writer, a *analyzer.Analyzer) error {
	sums := a.SampleSummaries()

	rows := make([]summaryRow, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, summaryRow{
			Sample: s.Sample,
			Age:    s.Age,
			N:      s.N,
			Mean:   s.Mean,
			SD:     s.SD,
			Median: s.Median,
			Min:    s.Min,
			Max:    s.Max,
		})
	}

	return gocsv.Marshal(&rows, w)
}

func printStable(w io.Writer, a *analyzer.Analyzer, threshold float64) error {
	stable := make(map[string]struct{})
	for _, probe := range a.StableSites(threshold) {
		stable[probe] = struct{}{}
	}

	rows := make([]varianceRow, 0, len(stable))
	for _, v := range a.Variances() {
		if _, ok := stable[v.Probe]; !ok {
			continue
		}
		rows = append(rows, varianceRow{Probe: v.Probe, N: v.N, Variance: v.Variance})
	}

	return gocsv.Marshal(&rows, w)
}

func printSignificant(w io.Writer, a *analyzer.Analyzer, field, group1, group2 string, pThreshold float64) error {
	tests, err := a.SignificanceTests(field, group1, group2)
	if err != nil {
		return err
	}

	rows := make([]tTestRow, 0)
	for _, t := range tests {
		if !(t.P < pThreshold) {
			continue
		}
		rows = append(rows, tTestRow{
			Probe: t.Probe,
			N1:    t.N1,
			N2:    t.N2,
			Mean1: t.Mean1,
			Mean2: t.Mean2,
			T:     t.T,
			DF:    t.DF,
			P:     t.P,
		})
	}

	return gocsv.Marshal(&rows, w)
}

func printCorrelations(w io.Writer, a *analyzer.Analyzer, probes []string) error {
	corrs, err := a.CorrelationWithAge(probes)
	if err != nil {
		return err
	}

	rows := make([]correlationRow, 0, len(corrs))
	for _, probe := range probes {
		r, ok := corrs[probe]
		if !ok {
			continue
		}
		rows = append(rows, correlationRow{Probe: probe, R: r})
		delete(corrs, probe)
	}

	return gocsv.Marshal(&rows, w)
}
