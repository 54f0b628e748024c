package sdt

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts raw analyzer or request bytes to a string. A leading
// UTF-8 byte order mark is dropped and invalid sequences become U+FFFD.
func DecodeText(b []byte) string {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}

// DecodeString is DecodeText for input that is already a string.
func DecodeString(s string) string {
	if utf8.ValidString(s) && !strings.HasPrefix(s, "\uFEFF") {
		return s
	}
	return DecodeText([]byte(s))
}
