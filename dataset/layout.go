package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Layout names the columns that anchor the two tables and how cells are
// written.
type Layout struct {
	ProbeColumn  string
	SampleColumn string
	AgeColumn    string

	// Delimiter is detected from the file when zero.
	Delimiter rune
	Comment   rune

	// Cells holding any of these (after trimming) are missing.
	MissingTokens []string
}

var defaultMissingTokens = []string{"", "NA", "NaN", "nan", "null", "NULL"}

var Layouts = map[string]Layout{
	"biolearn": {
		ProbeColumn:   "cpgSite",
		SampleColumn:  "SampleID",
		AgeColumn:     "Age",
		Comment:       '#',
		MissingTokens: defaultMissingTokens,
	},
	"geo": {
		ProbeColumn:   "ID_REF",
		SampleColumn:  "SampleID",
		AgeColumn:     "Age",
		Delimiter:     '\t',
		Comment:       '!',
		MissingTokens: defaultMissingTokens,
	},
}

const DefaultLayout = "biolearn"

func LayoutByName(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

func (l Layout) isMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, tok := range l.MissingTokens {
		if cell == tok {
			return true
		}
	}

	return false
}
