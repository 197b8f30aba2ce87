package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// decode converts input text in a given encoding to UTF-8.
func decode(input []byte, encoding string) (string, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return string(input), nil
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil {
		return "", fmt.Errorf("input encoding %q: %w", encoding, err)
	}
	if enc == nil {
		return "", fmt.Errorf("input encoding %q is not supported", encoding)
	}
	text, err := enc.NewDecoder().Bytes(input)
	if err != nil {
		return "", fmt.Errorf("cannot decode input as %s: %w", encoding, err)
	}
	tracer().Debugf("decoded %d bytes of %s input", len(input), encoding)
	return string(text), nil
}
