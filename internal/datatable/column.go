package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"maragu.dev/gomponents"
)

// Column describes one table column over rows of type T.
//
// A column reads its value through Accessor, or through AccessorKey, a dotted
// path into T. Cell overrides how the value is rendered. A column with only a
// Cell renderer is display-only and cannot be sorted or filtered.
type Column[T any] struct {
	ID          string
	Header      string
	AccessorKey string
	Accessor    func(T) any
	Cell        func(T) gomponents.Node
	Sortable    bool
	Hideable    bool
	// Class is added to the header and body cells.
	Class string
}

type column[T any] struct {
	Column[T]
	value func(T) any
}

func (c column[T]) text(row T) string {
	if c.value == nil {
		return ""
	}
	return FormatValue(c.value(row))
}

func compileColumns[T any](defs []Column[T]) ([]column[T], error) {
	if len(defs) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]struct{}, len(defs))
	cols := make([]column[T], 0, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			def.ID = def.AccessorKey
		}
		if def.ID == "" {
			return nil, fmt.Errorf("%w: column %d has no id", ErrMissingAccessor, i)
		}
		if _, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, def.ID)
		}
		seen[def.ID] = struct{}{}

		col := column[T]{Column: def}
		switch {
		case def.Accessor != nil:
			col.value = def.Accessor
		case def.AccessorKey != "":
			fn, err := compileKeyPath[T](def.AccessorKey)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", def.ID, err)
			}
			col.value = fn
		case def.Cell != nil:
			col.Sortable = false
		default:
			return nil, fmt.Errorf("%w: %q", ErrMissingAccessor, def.ID)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// FormatValue turns an accessor result into cell text. Nil renders empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("Jan 2, 2006")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// compareValues orders accessor results for local sorting. Nil sorts first;
// numbers compare numerically, times chronologically, everything else by text.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(strings.ToLower(FormatValue(a)), strings.ToLower(FormatValue(b)))
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
