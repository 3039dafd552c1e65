package pmap

import (
	"fmt"
	"io"
	"strings"
)

// Fprint renders the map to w as an ordered bracketed list of "key ↦ value"
// entries, using the given per-type formatters. A write error from the sink
// is returned untouched; handling it is the caller's business.
func Fprint[K, V any](w io.Writer, m Map[K, V], formatKey func(K) string, formatValue func(V) string) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	var writeErr error
	sep := ""
	m.Range(func(k K, v V) bool {
		_, writeErr = fmt.Fprintf(w, "%s%s ↦ %s", sep, formatKey(k), formatValue(v))
		sep = ", "
		return writeErr == nil
	})
	if writeErr != nil {
		return writeErr
	}
	_, err := io.WriteString(w, "]")
	return err
}

// FprintDiff renders the symmetric diff of two maps, one line per entry:
// "--" tags bindings only in l, "++" tags bindings only in r, and changed
// bindings get an untagged "key ↦ old -> new" line. An empty diff writes
// nothing at all.
func FprintDiff[K, V any](w io.Writer, l, r Map[K, V], equal func(V, V) bool, formatKey func(K) string, formatValue func(V) string) error {
	var writeErr error
	l.DiffIter(r, equal, func(d Diff[K, V]) bool {
		switch d.Kind {
		case DiffLeft:
			_, writeErr = fmt.Fprintf(w, "-- %s ↦ %s\n", formatKey(d.Key), formatValue(d.Left))
		case DiffRight:
			_, writeErr = fmt.Fprintf(w, "++ %s ↦ %s\n", formatKey(d.Key), formatValue(d.Right))
		default:
			_, writeErr = fmt.Fprintf(w, "%s ↦ %s -> %s\n", formatKey(d.Key), formatValue(d.Left), formatValue(d.Right))
		}
		return writeErr == nil
	})
	return writeErr
}

// String renders the map with fmt's default formatting, for debugging.
func (m Map[K, V]) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, m,
		func(k K) string { return fmt.Sprintf("%v", k) },
		func(v V) string { return fmt.Sprintf("%v", v) })
	return sb.String()
}
