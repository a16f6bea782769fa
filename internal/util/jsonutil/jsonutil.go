// Package jsonutil decodes model-produced JSON tolerantly. Gemini sometimes
// returns payloads with double-escaped unicode sequences or an extra layer of
// string quoting; UnmarshalFlex tries a direct parse first and falls back to
// a normalizing pass.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// UnmarshalRaw decodes a json.RawMessage with UnmarshalFlex semantics.
func UnmarshalRaw(raw json.RawMessage, v any) error {
	return UnmarshalFlex([]byte(raw), v)
}

// UnmarshalFlex decodes raw into v: direct unmarshal first, then a
// normalized retry that unwraps quoted payloads and resolves double-escaped
// unicode sequences inside string values.
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm, err := NormalizeJSONUnicode(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(norm, v)
}

// NormalizeJSONUnicode parses JSON bytes, unwrapping up to two levels of
// string quoting, and re-encodes with escaped unicode sequences resolved.
func NormalizeJSONUnicode(raw []byte) ([]byte, error) {
	var val any
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, err
	}
	// Unwrap up to two levels of string quoting around the real payload.
	for i := 0; i < 2; i++ {
		s, ok := val.(string)
		if !ok {
			break
		}
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			break
		}
		val = inner
	}
	if _, ok := val.(string); ok {
		return nil, errors.New("jsonutil: cannot parse JSON payload")
	}
	return marshalNoEscape(deepUnescape(val))
}

// marshalNoEscape encodes v without escaping <, > and & to \u escapes.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unescapeUnicodeString resolves unicode escape sequences (backslash-u plus
// four hex digits) left literally inside a string value. Backslashes that do
// not start such a sequence are preserved.
func unescapeUnicodeString(s string) (string, error) {
	if !strings.Contains(s, `\u`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+6 <= len(s) && s[i+1] == 'u' && isHex(s[i+2:i+6]) {
				b.WriteByte(c)
			} else {
				b.WriteString(`\\`)
			}
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	var out string
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		return "", err
	}
	return out, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func deepUnescape(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeUnicodeString(x); err == nil {
			return s
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepUnescape(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepUnescape(vv)
		}
		return out
	default:
		return v
	}
}
