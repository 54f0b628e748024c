package sdt

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// recordPattern matches the SDT record form: "pnr: 801 ... service_name: NAME".
	recordPattern = regexp.MustCompile(`\b(?:pnr|sid)\s*:\s*(\d+)\b.*?\bservice_name\s*:(.*)$`)
	// servicePattern matches a bare service descriptor line: "SDT    service:NAME".
	servicePattern = regexp.MustCompile(`\bservice\s*:(.*)$`)
	// idPattern marks a line that carries a program number; such a line is
	// never a bare service descriptor.
	idPattern = regexp.MustCompile(`\b(?:pnr|sid)\s*:\s*\d`)
)

// ServiceName ties a display name to the program number it was declared for.
// PNR is nil when the source line carried no explicit identifier.
type ServiceName struct {
	PNR  *int   `json:"pnr"`
	Name string `json:"name"`
}

// HasPNR reports whether the entry carries a program number.
func (s ServiceName) HasPNR() bool {
	return s.PNR != nil
}

// Report is the structured result of parsing one analyzer report.
type Report struct {
	Services []ServiceName `json:"services"`
	Fallback string        `json:"fallback,omitempty"`
}

// Analyze parses an analyzer report into a Report.
func Analyze(text string) Report {
	services, fallback := ParseServiceNames(text)
	return Report{Services: services, Fallback: fallback}
}

// ParseServiceNamesBytes decodes raw analyzer output permissively and parses it.
func ParseServiceNamesBytes(b []byte) ([]ServiceName, string) {
	return ParseServiceNames(DecodeText(b))
}

// ParseServiceNames scans an analyzer report line by line and returns the
// declared services in order of appearance along with the last name seen
// without an explicit program number. Unrecognized lines are skipped.
func ParseServiceNames(text string) ([]ServiceName, string) {
	services := []ServiceName{}
	fallback := ""

	for line := range strings.Lines(DecodeString(text)) {
		line = strings.TrimRight(line, "\r\n")

		if m := recordPattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[2])
			if name == "" {
				continue
			}
			pnr, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			services = append(services, ServiceName{PNR: &pnr, Name: name})
			continue
		}

		if idPattern.MatchString(line) {
			continue
		}

		if m := servicePattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if name == "" {
				continue
			}
			services = append(services, ServiceName{Name: name})
			fallback = name
		}
	}

	return services, fallback
}

// NameFor picks the display name for a stream. A matching program number wins,
// then the fallback, then a name shared by every entry.
func (r Report) NameFor(pnr int, ok bool) (string, bool) {
	if ok {
		for _, svc := range r.Services {
			if svc.PNR != nil && *svc.PNR == pnr {
				return svc.Name, true
			}
		}
	}
	if r.Fallback != "" {
		return r.Fallback, true
	}
	if len(r.Services) == 0 {
		return "", false
	}
	name := r.Services[0].Name
	for _, svc := range r.Services[1:] {
		if svc.Name != name {
			return "", false
		}
	}
	return name, true
}
