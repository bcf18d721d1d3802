package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned for a character encoding name that cannot be resolved
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// lookupEncoding resolves an encoding name. UTF-8 (the default) decodes
// through a BOM-aware transformer so a leading byte order mark never ends up
// in the first header name.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "windows1252", "cp1252":
		return charmap.Windows1252, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// ValidateEncoding reports whether name is a usable source encoding
func ValidateEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}

// decodeText wraps r so that it yields UTF-8 text
func decodeText(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
