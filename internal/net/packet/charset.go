package packet

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// charset is the encoding of strings on the wire. Set once at startup,
// before any session is accepted.
var charset encoding.Encoding = unicode.UTF8

// SetCharset selects the client string encoding by WHATWG label
// ("utf-8", "big5", "windows-1252", ...).
func SetCharset(label string) error {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return fmt.Errorf("unknown client charset %q: %w", label, err)
	}
	charset = enc
	return nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decodeString converts wire bytes to UTF-8. ASCII passes through unchanged;
// undecodable input falls back to the raw bytes.
func decodeString(raw []byte) string {
	if len(raw) == 0 || isASCII(raw) {
		return string(raw)
	}
	decoded, err := charset.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func encodeString(s string) []byte {
	if isASCII([]byte(s)) {
		return []byte(s)
	}
	encoded, err := charset.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}
