// Package codec converts between Go values and the engine's wire text.
//
// Outbound, every supported value becomes a single token (ToWire). Inbound,
// JSON-decoded values are mapped back to Go values (FromWire), recovering
// booleans, timestamps and JSON literals that arrive as plain text.
package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/solr/internal/domain"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date part of t as given, without zone conversion.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

const dateTimeLayout = "2006-01-02T15:04:05.999999999"

var dateTimeRegex = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(\.\d+)?Z$`,
)

// ToWire renders v as the engine's wire text.
//
// Timestamps keep their wall clock fields; callers pass UTC-equivalent values.
// Unsupported kinds (maps, structs without a text form, channels, funcs,
// nested sequences) yield a *domain.EncodingError.
func ToWire(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", &domain.EncodingError{Value: v}
	case Date:
		return x.String() + "T00:00:00Z", nil
	case time.Time:
		return x.Format(dateTimeLayout) + "Z", nil
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return x, nil
	case []byte:
		return strings.ToValidUTF8(string(x), "�"), nil
	case json.Number:
		return x.String(), nil
	case float64:
		return formatFloat(x, 64), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal %T: %w", v, &domain.EncodingError{Value: v})
		}
		return string(b), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits()), nil
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits()), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", &domain.EncodingError{Value: v}
		}
		return ToWire(rv.Elem().Interface())
	default:
		return "", &domain.EncodingError{Value: v}
	}
}

// formatFloat prints plain decimals for ordinary magnitudes and falls back to
// exponent form for very large or very small values.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// IsNull reports whether v must be left out of an update message:
// nil, a nil pointer, or empty text.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsNull(rv.Elem().Interface())
	case reflect.String:
		return rv.Len() == 0
	default:
		return false
	}
}

// IsSequence reports whether v is a multi-valued field value.
// Byte slices are text, not sequences.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// Entries returns the elements of a sequence value. Non-sequences return nil.
func Entries(v any) []any {
	if !IsSequence(v) {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// FromWire maps an inbound value to a Go value.
//
// Numbers pass through. A sequence collapses to its first entry (lossy).
// "true"/"false" become bool, ISO-8601 UTC timestamps become time.Time with
// second precision, and text holding a JSON array, object or number is decoded.
// Everything else is returned unchanged.
func FromWire(v any) any {
	if isNumber(v) {
		return v
	}
	if IsSequence(v) {
		entries := Entries(v)
		if len(entries) == 0 {
			return nil
		}
		v = entries[0]
		if isNumber(v) {
			return v
		}
	}

	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if t, ok := parseDateTime(s); ok {
		return t
	}
	if lit, ok := parseLiteral(s); ok {
		return lit
	}
	return s
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number:
		return true
	case nil:
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// parseDateTime reads the calendar fields; a fractional part is matched and dropped.
// Out-of-range fields (month 13, day 32) are not a timestamp.
func parseDateTime(s string) (time.Time, bool) {
	m := dateTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	f := make([]int, 6)
	for i := range f {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, false
		}
		f[i] = n
	}
	t := time.Date(f[0], time.Month(f[1]), f[2], f[3], f[4], f[5], 0, time.UTC)
	if t.Year() != f[0] || int(t.Month()) != f[1] || t.Day() != f[2] ||
		t.Hour() != f[3] || t.Minute() != f[4] || t.Second() != f[5] {
		return time.Time{}, false
	}
	return t, true
}

// parseLiteral accepts only a JSON array, object or number, nothing else.
func parseLiteral(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	switch x := out.(type) {
	case []any, map[string]any:
		return x, true
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return f, true
		}
		return nil, false
	default:
		return nil, false
	}
}
