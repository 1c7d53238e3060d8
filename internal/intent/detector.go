// Package intent decides what a customs query is asking for.
package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
)

// Pattern is a keyword pattern for one intent.
// Regexes run against normalized text, so Arabic keywords must be written in
// normalized form (ه for ة, bare alef).
type Pattern struct {
	Name     string
	Intent   model.Intent
	Regex    string
	Priority int // Higher priority patterns are checked first
}

// CompiledPattern holds a compiled regex pattern with metadata.
type CompiledPattern struct {
	compiledRegex *regexp.Regexp
	Pattern
}

// Detector classifies queries by evaluating patterns in priority order.
// It is immutable after construction and safe for concurrent use.
type Detector struct {
	patterns []CompiledPattern
}

// NewDetector compiles the given patterns.
func NewDetector(patterns []Pattern) (*Detector, error) {
	compiled := make([]CompiledPattern, 0, len(patterns))

	for _, p := range patterns {
		regexStr := p.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}

		compiled = append(compiled, CompiledPattern{
			Pattern:       p,
			compiledRegex: regex,
		})
	}

	// Equal priorities keep their declaration order.
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &Detector{
		patterns: compiled,
	}, nil
}

// Match represents a pattern match result.
type Match struct {
	PatternName string
	Intent      model.Intent
}

// Match returns the highest-priority pattern matching text, or nil.
func (d *Detector) Match(text string) *Match {
	searchText := textnorm.Normalize(text)
	if searchText == "" {
		return nil
	}

	for _, pattern := range d.patterns {
		if pattern.compiledRegex.MatchString(searchText) {
			return &Match{
				PatternName: pattern.Name,
				Intent:      pattern.Intent,
			}
		}
	}
	return nil
}

// Classify returns the intent of text, IntentGeneral when no pattern matches.
func (d *Detector) Classify(text string) model.Intent {
	if m := d.Match(text); m != nil {
		return m.Intent
	}
	return model.IntentGeneral
}

// PatternCount returns the number of loaded patterns.
func (d *Detector) PatternCount() int {
	return len(d.patterns)
}

var defaultDetector = mustDetector(DefaultPatterns())

func mustDetector(patterns []Pattern) *Detector {
	d, err := NewDetector(patterns)
	if err != nil {
		panic(err)
	}
	return d
}

// Default returns the detector built from DefaultPatterns.
func Default() *Detector {
	return defaultDetector
}

// Classify classifies text with the default detector.
func Classify(text string) model.Intent {
	return defaultDetector.Classify(text)
}
