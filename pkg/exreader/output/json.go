// Package output renders extraction results as JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ukaji3/exreader-go/pkg/exreader/models"
)

// DateFormat is the ISO-8601 layout used for date and time cells.
const DateFormat = "2006-01-02T15:04:05.000"

// Encoding selects how JSON text is encoded.
type Encoding struct {
	// ASCII escapes every non-ASCII character as \uXXXX.
	ASCII bool
}

// RecordsJSON serializes a table as a JSON array of objects whose keys follow
// the header order. Missing values and non-finite numbers become null.
func RecordsJSON(t *models.Table, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range t.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, field := range rec {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(&buf, field.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeValue(&buf, field.Value); err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return finish(buf.Bytes(), enc), nil
}

// StringsJSON serializes a list of strings as a JSON array.
func StringsJSON(values []string, enc Encoding) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, values); err != nil {
		return nil, err
	}
	return finish(buf.Bytes(), enc), nil
}

// ErrorJSON renders err as {"error": "<message>"} in the given encoding.
func ErrorJSON(err error, enc Encoding) []byte {
	var buf bytes.Buffer
	_ = writeValue(&buf, map[string]string{"error": err.Error()})
	return finish(buf.Bytes(), enc)
}

// writeValue appends the JSON form of v without HTML escaping.
func writeValue(buf *bytes.Buffer, v interface{}) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf.WriteString("null")
			return nil
		}
	case time.Time:
		v = x.Format(DateFormat)
	}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// finish applies the encoding to serialized JSON. Non-ASCII bytes only occur
// inside strings, so escaping them keeps the document valid.
func finish(data []byte, enc Encoding) []byte {
	if !enc.ASCII {
		return data
	}
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
