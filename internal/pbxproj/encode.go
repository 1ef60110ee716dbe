package pbxproj

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// writer emits the object tree in the OpenStep layout Xcode uses: tab
// indentation, "isa" first in every dictionary, the remaining keys sorted,
// and strings written as literal UTF-8.
type writer struct {
	buf bytes.Buffer
}

func encodeOpenStep(root map[string]interface{}) ([]byte, error) {
	w := &writer{}
	w.buf.WriteString(utf8Marker)
	w.buf.WriteByte('\n')
	if err := w.value(root, 0); err != nil {
		return nil, err
	}
	w.buf.WriteByte('\n')
	return w.buf.Bytes(), nil
}

func (w *writer) value(v interface{}, depth int) error {
	switch v := v.(type) {
	case map[string]interface{}:
		return w.dict(v, depth)
	case []interface{}:
		return w.array(v, depth)
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return w.array(items, depth)
	case string:
		w.buf.WriteString(quote(v))
	case []byte:
		w.buf.WriteByte('<')
		w.buf.WriteString(hex.EncodeToString(v))
		w.buf.WriteByte('>')
	case nil:
		return fmt.Errorf("nil value")
	default:
		w.buf.WriteString(quote(fmt.Sprint(v)))
	}
	return nil
}

func (w *writer) dict(m map[string]interface{}, depth int) error {
	w.buf.WriteString("{\n")
	for _, k := range sortedKeys(m) {
		w.indent(depth + 1)
		w.buf.WriteString(quote(k))
		w.buf.WriteString(" = ")
		if err := w.value(m[k], depth+1); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		w.buf.WriteString(";\n")
	}
	w.indent(depth)
	w.buf.WriteByte('}')
	return nil
}

func (w *writer) array(items []interface{}, depth int) error {
	w.buf.WriteString("(\n")
	for i, item := range items {
		w.indent(depth + 1)
		if err := w.value(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		w.buf.WriteString(",\n")
	}
	w.indent(depth)
	w.buf.WriteByte(')')
	return nil
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf.WriteByte('\t')
	}
}

// sortedKeys orders keys alphabetically with "isa" moved to the front.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "isa" || keys[j] == "isa" {
			return keys[i] == "isa" && keys[j] != "isa"
		}
		return keys[i] < keys[j]
	})
	return keys
}

// quote returns s bare when it only holds characters Xcode leaves unquoted,
// otherwise as a quoted string. Non-ASCII runes are written as is.
func quote(s string) string {
	if s != "" && isBare(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\U%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBare(s string) bool {
	if strings.HasPrefix(s, "//") {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '$', c == '.', c == '/':
		default:
			return false
		}
	}
	return true
}
