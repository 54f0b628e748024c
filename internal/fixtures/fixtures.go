// Package fixtures embeds canonical analyzer reports shared by tests and the self-test harness.
package fixtures

import _ "embed"

// AnalyzeSample is an analyzer report of a two-service multiplex (pnr 801 and 802)
// that also carries a standalone service line for "Shopping Live".
//
//go:embed analyze_sample.txt
var AnalyzeSample []byte
