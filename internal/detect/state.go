// Package detect infers state and company entities from headline text.
// Both detectors are layered heuristics: they always return a value and
// never fail. Absence of a clean match is a quality signal, not an error.
package detect

import (
	"net/url"
	"strings"

	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/textnorm"
)

// StateDetector infers a Southeast state code from headline text and, as a
// last resort before the Global fallback, from the source URL's host.
type StateDetector struct {
	states []model.StateConfig
}

// NewStateDetector builds a detector from the configured state table.
func NewStateDetector(states []model.StateConfig) *StateDetector {
	return &StateDetector{states: states}
}

// Detect returns the state code for a headline, in strict strategy order:
// full names, boundary-checked abbreviations, source-domain inference,
// then "Global". Abbreviations rank below both name and domain evidence
// because two-letter codes are wildly ambiguous in free text ("GA" inside
// "MEGA").
func (d *StateDetector) Detect(text, sourceURL string) string {
	lower := strings.ToLower(textnorm.Normalize(text))

	for _, st := range d.states {
		for _, name := range st.Names {
			if name == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(textnorm.Normalize(name))) {
				return st.Code
			}
		}
	}

	for _, st := range d.states {
		if containsIsolatedToken(text, st.Code) {
			return st.Code
		}
	}

	if code := d.fromDomain(sourceURL); code != "" {
		return code
	}

	return model.StateGlobal
}

// fromDomain maps the source host against the configured government-site
// domain suffixes.
func (d *StateDetector) fromDomain(sourceURL string) string {
	if sourceURL == "" {
		return ""
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return ""
	}

	for _, st := range d.states {
		for _, domain := range st.Domains {
			domain = strings.ToLower(domain)
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return st.Code
			}
		}
	}
	return ""
}

// containsIsolatedToken reports whether abbr occurs in text without an
// adjacent letter or digit on either side.
func containsIsolatedToken(text, abbr string) bool {
	upper := strings.ToUpper(text)
	abbr = strings.ToUpper(abbr)

	for start := 0; ; {
		idx := strings.Index(upper[start:], abbr)
		if idx < 0 {
			return false
		}
		idx += start

		before := byte(0)
		if idx > 0 {
			before = upper[idx-1]
		}
		after := byte(0)
		if end := idx + len(abbr); end < len(upper) {
			after = upper[end]
		}

		if !isAlnumByte(before) && !isAlnumByte(after) {
			return true
		}
		start = idx + 1
	}
}

func isAlnumByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
