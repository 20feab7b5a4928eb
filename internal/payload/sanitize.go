package payload

import (
	"encoding/base64"
	"strings"
	"unicode"
)

const dataURIMarker = "base64,"

// Sanitize strips transport artifacts from s: surrounding whitespace, a
// data-URI prefix, wrapping quotes, line breaks and any character outside the
// standard base64 alphabet.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, dataURIMarker); i >= 0 {
		s = s[i+len(dataURIMarker):]
	}
	s = strings.TrimFunc(s, func(r rune) bool {
		return r == '"' || r == '\'' || unicode.IsSpace(r)
	})

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isBase64Rune(r) {
			b.WriteRune(r)
		}
	}

	// Quotes never pass the alphabet filter; this only guards nested encodings.
	return strings.NewReplacer(`"`, "", "'", "").Replace(b.String())
}

func isBase64Rune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '/', r == '=':
		return true
	}
	return false
}

// Decode sanitizes input and decodes it as padded standard base64.
func Decode(input string) ([]byte, error) {
	cleaned := Sanitize(input)
	if cleaned == "" {
		return nil, ErrEmptyInput
	}

	data, err := base64.StdEncoding.Strict().DecodeString(cleaned)
	if err != nil {
		return nil, &InvalidBase64Error{Err: err}
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return data, nil
}
