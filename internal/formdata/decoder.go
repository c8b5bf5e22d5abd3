// Package formdata decodes raw multipart/form-data bodies without the
// mime/multipart machinery. It is a byte scanner over the full body: good
// enough for the upload surface this service exposes, and deliberately
// best-effort about parts it cannot make sense of.
package formdata

import (
	"bytes"
	"errors"
	"strings"
)

var ErrNoBoundary = errors.New("formdata: content type carries no boundary token")

// Part is one decoded body part. A part without a filename is a plain form
// field; a part with one is a file upload. Data is byte-exact.
type Part struct {
	Name     string
	Filename string
	Data     []byte
}

func (p Part) IsFile() bool { return p.Filename != "" }

// Boundary extracts the boundary token from a Content-Type header value by
// targeted matching. Quotes around the token are stripped.
func Boundary(contentType string) (string, error) {
	const key = "boundary="
	i := strings.Index(strings.ToLower(contentType), key)
	if i < 0 {
		return "", ErrNoBoundary
	}
	token := contentType[i+len(key):]
	if j := strings.IndexByte(token, ';'); j >= 0 {
		token = token[:j]
	}
	token = strings.TrimSpace(token)
	token = strings.Trim(token, `"`)
	if token == "" {
		return "", ErrNoBoundary
	}
	return token, nil
}

// Decode splits body at each --<boundary> delimiter and parses the spans in
// between. The preamble before the first delimiter is skipped; scanning
// stops at a delimiter immediately followed by the two-byte end marker.
// Spans with no locatable header block are dropped rather than failing the
// whole body.
func Decode(body []byte, boundary string) []Part {
	delim := []byte("--" + boundary)

	i := bytes.Index(body, delim)
	if i < 0 {
		return nil
	}
	rest := body[i+len(delim):]

	var parts []Part
	for {
		if bytes.HasPrefix(rest, []byte("--")) {
			break
		}
		next := bytes.Index(rest, delim)
		span := rest
		if next >= 0 {
			span = rest[:next]
		}
		if p, ok := parsePart(span); ok {
			parts = append(parts, p)
		}
		if next < 0 {
			break
		}
		rest = rest[next+len(delim):]
	}
	return parts
}

// parsePart splits one delimiter-to-delimiter span at the first blank line
// into a header block and a payload, then pulls name/filename out of the
// header block. ok is false when no blank line separates the two.
func parsePart(span []byte) (Part, bool) {
	span = trimLeadingNewline(span)

	sep := []byte("\r\n\r\n")
	i := bytes.Index(span, sep)
	if i < 0 {
		sep = []byte("\n\n")
		i = bytes.Index(span, sep)
	}
	if i < 0 {
		return Part{}, false
	}

	header := span[:i]
	data := trimTrailingNewline(span[i+len(sep):])

	params := headerParams(header)
	return Part{
		Name:     params["name"],
		Filename: params["filename"],
		Data:     data,
	}, true
}

// headerParams scans a header block for key="value" pairs with a small
// state machine. Everything outside that shape is ignored; full MIME header
// parsing is intentionally not attempted.
func headerParams(header []byte) map[string]string {
	params := make(map[string]string, 2)
	var key []byte
	i := 0
	for i < len(header) {
		c := header[i]
		switch {
		case c == '=' && len(key) > 0 && i+1 < len(header) && header[i+1] == '"':
			j := bytes.IndexByte(header[i+2:], '"')
			if j < 0 {
				return params
			}
			params[strings.ToLower(string(key))] = string(header[i+2 : i+2+j])
			i += 2 + j + 1
			key = key[:0]
		case isTokenByte(c):
			key = append(key, c)
			i++
		default:
			key = key[:0]
			i++
		}
	}
	return params
}

func isTokenByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func trimLeadingNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

func trimTrailingNewline(b []byte) []byte {
	if bytes.HasSuffix(b, []byte("\r\n")) {
		return b[:len(b)-2]
	}
	if bytes.HasSuffix(b, []byte("\n")) {
		return b[:len(b)-1]
	}
	return b
}
