package httpproto

import (
	"bytes"
	"fmt"
	"strings"
)

// MaxRequestSize bounds the buffer the connection session will read
// before handing it to Parse; spec §4.3 requires "at least 8 KiB".
const MaxRequestSize = 64 * 1024

// ParseError reports a malformed request head, mapped to a 400 response
// by the connection session per spec §4.9.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return fmt.Sprintf("request parse error: %s", e.Reason) }

// Parse splits buf on the first CRLFCRLF, parses the request line and
// headers from the head segment, and returns a Request with Raw set to
// buf verbatim (spec §4.3, §3 "raw").
func Parse(buf []byte) (*Request, error) {
	raw := make([]byte, len(buf))
	copy(raw, buf)

	sep := []byte("\r\n\r\n")
	idx := bytes.Index(buf, sep)
	var head, body []byte
	if idx == -1 {
		head = buf
		body = nil
	} else {
		head = buf[:idx]
		body = buf[idx+len(sep):]
	}

	lines := splitLines(head)
	if len(lines) == 0 {
		return nil, &ParseError{Reason: "empty request"}
	}

	method, path, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	var headers []Header
	for _, line := range lines[1:] {
		if len(line) == 0 {
			continue
		}
		name, value, ok := parseHeaderLine(line)
		if !ok {
			continue // "Lines without ':' are ignored" (spec §4.3)
		}
		headers = append(headers, Header{Name: name, Value: value})
	}

	return &Request{
		Method:   method,
		Path:     path,
		Version:  version,
		Headers:  headers,
		Body:     body,
		Raw:      raw,
		ClientIP: "unknown",
	}, nil
}

// splitLines splits on bare "\r\n", matching how the head segment (already
// separated from the body on "\r\n\r\n") is line-structured.
func splitLines(head []byte) [][]byte {
	if len(head) == 0 {
		return nil
	}
	return bytes.Split(head, []byte("\r\n"))
}

func parseRequestLine(line []byte) (method, path, version string, err error) {
	parts := strings.Split(string(line), " ")
	// Empty fields are dropped, so a run of spaces acts as one separator;
	// tokens after the third are ignored.
	var tokens []string
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) < 3 {
		return "", "", "", &ParseError{Reason: "malformed request line"}
	}
	method, path, version = tokens[0], tokens[1], tokens[2]
	if !strings.HasPrefix(version, "HTTP/") {
		return "", "", "", &ParseError{Reason: "unsupported protocol version"}
	}
	return strings.ToUpper(method), path, version, nil
}

func parseHeaderLine(line []byte) (name, value string, ok bool) {
	s := string(line)
	i := strings.IndexByte(s, ':')
	if i == -1 {
		return "", "", false
	}
	name = s[:i]
	value = s[i+1:]
	// "values get one leading space stripped" (spec §4.3) — not trimmed
	// generally, only a single leading space.
	if strings.HasPrefix(value, " ") {
		value = value[1:]
	}
	return name, value, true
}
