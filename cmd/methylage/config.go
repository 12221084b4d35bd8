package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carbocation/methylage"
	"github.com/carbocation/pfx"
)

// JSONConfig mirrors the command line flags so that an analysis can be kept
// in a file. Flags given explicitly on the command line win.
type JSONConfig struct {
	ConfigPath      string   `json:"-"`
	MethylationPath string   `json:"methylation"`
	MetadataPath    string   `json:"metadata"`
	Layout          string   `json:"layout"`
	Task            string   `json:"task"`
	OutputDir       string   `json:"output_dir"`
	GroupField      string   `json:"group_field"`
	Group1          string   `json:"group1"`
	Group2          string   `json:"group2"`
	StableThreshold *float64 `json:"stable_threshold"`
	PValueThreshold *float64 `json:"p_value_threshold"`
	Probes          []string `json:"probes"`
	SkipPreprocess  bool     `json:"skip_preprocess"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	for _, p := range []*string{&out.MethylationPath, &out.MetadataPath, &out.OutputDir} {
		if *p, err = methylage.ExpandHome(*p); err != nil {
			return out, err
		}
	}

	return out, nil
}

// Override returns c with every field whose flag was explicitly set replaced
// by the flag's value.
func (c JSONConfig) Override(flags JSONConfig, set map[string]bool) JSONConfig {
	if set["methylation"] || c.MethylationPath == "" {
		c.MethylationPath = flags.MethylationPath
	}
	if set["metadata"] || c.MetadataPath == "" {
		c.MetadataPath = flags.MetadataPath
	}
	if set["layout"] || c.Layout == "" {
		c.Layout = flags.Layout
	}
	if set["task"] || c.Task == "" {
		c.Task = flags.Task
	}
	if set["out"] || c.OutputDir == "" {
		c.OutputDir = flags.OutputDir
	}
	if set["group_field"] || c.GroupField == "" {
		c.GroupField = flags.GroupField
	}
	if set["group1"] || c.Group1 == "" {
		c.Group1 = flags.Group1
	}
	if set["group2"] || c.Group2 == "" {
		c.Group2 = flags.Group2
	}
	if set["threshold"] || c.StableThreshold == nil {
		c.StableThreshold = flags.StableThreshold
	}
	if set["pvalue"] || c.PValueThreshold == nil {
		c.PValueThreshold = flags.PValueThreshold
	}
	if set["probes"] || len(c.Probes) == 0 {
		c.Probes = flags.Probes
	}
	if set["skip_preprocess"] {
		c.SkipPreprocess = flags.SkipPreprocess
	}

	return c
}
