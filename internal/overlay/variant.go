package overlay

import (
	"fmt"
	"sort"
)

// Key identifies one overlay variant by its toggle states. The toggle space
// is finite per brand: flip is always present, tape and color only where the
// brand defines them (absent toggles stay at their zero value).
type Key struct {
	Flipped bool
	Tape    bool
	Color   int
}

func (k Key) String() string {
	return fmt.Sprintf("flipped=%v tape=%v color=%d", k.Flipped, k.Tape, k.Color)
}

// Table maps every reachable Key to the name of the asset file that renders
// it. Resolution through a table keeps variant selection total and
// deterministic; the nested-conditional style it replaces made missing
// combinations easy to introduce.
type Table map[Key]string

// Resolve returns the asset name for the given toggle states.
func (t Table) Resolve(k Key) (string, error) {
	name, ok := t[k]
	if !ok {
		return "", fmt.Errorf("no overlay asset for variant %v", k)
	}
	return name, nil
}

// Validate checks that the table is total over the toggle space spanned by
// hasTape and colorCount (colorCount of 0 or 1 means a single fixed color).
func (t Table) Validate(hasTape bool, colorCount int) error {
	if colorCount < 1 {
		colorCount = 1
	}
	tapes := []bool{false}
	if hasTape {
		tapes = []bool{false, true}
	}

	for _, flipped := range []bool{false, true} {
		for _, tape := range tapes {
			for color := 0; color < colorCount; color++ {
				k := Key{Flipped: flipped, Tape: tape, Color: color}
				if _, ok := t[k]; !ok {
					return fmt.Errorf("variant table missing %v", k)
				}
			}
		}
	}
	return nil
}

// AssetNames returns the distinct asset names in the table, sorted.
func (t Table) AssetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range t {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
