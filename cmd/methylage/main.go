// methylage explores a DNA methylation matrix against sample metadata. It
// reports stable probes, probes that differ between two groups, and how
// probes track chronological age, writing charts as PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/methylage/ageplot"
	"github.com/carbocation/methylage/analyzer"
	_ "github.com/carbocation/methylage/compileinfoprint"
	"github.com/carbocation/methylage/dataset"
	"github.com/carbocation/pfx"
)

const (
	TaskSummary     = "summary"
	TaskStable      = "stable"
	TaskSignificant = "significant"
	TaskPlot        = "plot"
	TaskCorrelate   = "correlate"
)

var tasks = []string{TaskSummary, TaskStable, TaskSignificant, TaskPlot, TaskCorrelate}

func main() {
	var configPath, probes string
	var cfg JSONConfig
	var stableThreshold, pValueThreshold float64

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a JSON file holding any of the settings below. Flags that are set explicitly take precedence.")
	flag.StringVar(&cfg.MethylationPath, "methylation", "", "Path to the methylation matrix (probe identifier column followed by one column per sample). May be compressed or on gs://.")
	flag.StringVar(&cfg.MetadataPath, "metadata", "", "Path to the sample metadata (one row per sample with SampleID and Age columns).")
	flag.StringVar(&cfg.Layout, "layout", dataset.DefaultLayout, fmt.Sprintf("Column layout of the input tables. One of: %s", dataset.LayoutNames()))
	flag.StringVar(&cfg.Task, "task", TaskSummary, fmt.Sprintf("Analysis to run. One of: %s", strings.Join(tasks, ", ")))
	flag.StringVar(&cfg.OutputDir, "out", ".", "Folder into which charts are written.")
	flag.StringVar(&cfg.GroupField, "group_field", "", "Metadata column that defines the groups for -task=significant, e.g. 'Disease State'.")
	flag.StringVar(&cfg.Group1, "group1", "", "Value of -group_field for the first group.")
	flag.StringVar(&cfg.Group2, "group2", "", "Value of -group_field for the second group.")
	flag.Float64Var(&stableThreshold, "threshold", analyzer.DefaultStableThreshold, "Probes with variance strictly below this are stable.")
	flag.Float64Var(&pValueThreshold, "pvalue", analyzer.DefaultPValueThreshold, "Probes with a t-test P strictly below this are significant.")
	flag.StringVar(&probes, "probes", "", "Comma-separated probe identifiers for -task=plot and -task=correlate.")
	flag.BoolVar(&cfg.SkipPreprocess, "skip_preprocess", false, "Analyze the matrix as loaded, without dropping empty probes or imputing missing values.")
	flag.Parse()

	cfg.Probes = splitList(probes)
	cfg.StableThreshold = &stableThreshold
	cfg.PValueThreshold = &pValueThreshold

	if configPath != "" {
		fileCfg, err := ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}

		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		cfg = fileCfg.Override(cfg, set)
	}

	if cfg.MethylationPath == "" || cfg.MetadataPath == "" {
		log.Println("methylage: -methylation and -metadata are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

func run(ctx context.Context, cfg JSONConfig, w io.Writer) error {
	layout, err := dataset.LayoutByName(cfg.Layout)
	if err != nil {
		return err
	}

	opts := []analyzer.Option{
		analyzer.WithLayout(layout),
		analyzer.WithRenderer(ageplot.PNGRenderer{Dir: cfg.OutputDir}),
	}

	if strings.HasPrefix(cfg.MethylationPath, "gs://") || strings.HasPrefix(cfg.MetadataPath, "gs://") {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()

		opts = append(opts, analyzer.WithStorageClient(client))
	}

	a, err := analyzer.Open(ctx, cfg.MethylationPath, cfg.MetadataPath, opts...)
	if err != nil {
		return err
	}

	if !cfg.SkipPreprocess {
		a.Preprocess()
	}

	switch cfg.Task {
	case TaskSummary:
		return printSummary(w, a)
	case TaskStable:
		return printStable(w, a, *cfg.StableThreshold)
	case TaskSignificant:
		if cfg.GroupField == "" || cfg.Group1 == "" || cfg.Group2 == "" {
			return fmt.Errorf("-task=%s requires -group_field, -group1 and -group2", TaskSignificant)
		}
		return printSignificant(w, a, cfg.GroupField, cfg.Group1, cfg.Group2, *cfg.PValueThreshold)
	case TaskPlot:
		if len(cfg.Probes) == 0 {
			return fmt.Errorf("-task=%s requires -probes", TaskPlot)
		}
		for _, probe := range cfg.Probes {
			if err := a.PlotAgainstAge(probe); err != nil {
				return err
			}
		}
		log.Printf("Wrote %d charts to %s\n", 2*len(cfg.Probes), cfg.OutputDir)
		return nil
	case TaskCorrelate:
		if len(cfg.Probes) == 0 {
			return fmt.Errorf("-task=%s requires -probes", TaskCorrelate)
		}
		return printCorrelations(w, a, cfg.Probes)
	}

	return fmt.Errorf("Task %q is not recognized. Valid tasks include: %s", cfg.Task, strings.Join(tasks, ", "))
}
