package sdt

import (
	"strconv"
	"strings"
)

// pnrKey is the fragment parameter carrying the program number, e.g.
// udp://239.0.0.1:1234#pnr=1106&cam=ntv.
const pnrKey = "pnr"

// ExtractPNR returns the program number from the URL fragment. Only the text
// after the first '#' is inspected; the first "pnr" token with a valid
// base-10 value wins and malformed values are skipped.
func ExtractPNR(rawURL string) (int, bool) {
	_, fragment, found := strings.Cut(rawURL, "#")
	if !found {
		return 0, false
	}

	for token := range strings.SplitSeq(fragment, "&") {
		key, value, _ := strings.Cut(token, "=")
		if key != pnrKey {
			continue
		}
		pnr, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		return pnr, true
	}

	return 0, false
}
