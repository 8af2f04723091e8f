package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

type pathStep struct {
	index   []int
	key     string
	mapKey  reflect.Type
	dynamic bool
}

// compileKeyPath resolves a dotted key such as "category.name" against the
// row type once, so a typo fails at construction instead of rendering blank
// cells. Segments match JSON tag names first and Go field names second.
// Segments below an interface value can only be checked at read time.
func compileKeyPath[T any](path string) (func(T) any, error) {
	segments := strings.Split(path, ".")
	typ := reflect.TypeOf((*T)(nil)).Elem()
	steps := make([]pathStep, 0, len(segments))

	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidAccessor, path)
		}
		base := typ
		for base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		switch base.Kind() {
		case reflect.Struct:
			field, ok := lookupField(base, seg)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidAccessor, base, seg)
			}
			steps = append(steps, pathStep{index: field.Index})
			typ = field.Type
		case reflect.Map:
			if base.Key().Kind() != reflect.String {
				return nil, fmt.Errorf("%w: %s is not keyed by string", ErrInvalidAccessor, base)
			}
			steps = append(steps, pathStep{key: seg, mapKey: base.Key()})
			typ = base.Elem()
		case reflect.Interface:
			steps = append(steps, pathStep{key: seg, dynamic: true})
		default:
			return nil, fmt.Errorf("%w: cannot read %q from %s", ErrInvalidAccessor, seg, base)
		}
	}

	return func(row T) any {
		v := reflect.ValueOf(&row).Elem()
		for _, step := range steps {
			v = indirect(v)
			if !v.IsValid() {
				return nil
			}
			if step.dynamic {
				v = dynamicStep(v, step.key)
			} else if step.index != nil {
				var err error
				if v, err = v.FieldByIndexErr(step.index); err != nil {
					return nil
				}
			} else {
				v = v.MapIndex(reflect.ValueOf(step.key).Convert(step.mapKey))
			}
			if !v.IsValid() {
				return nil
			}
		}
		v = indirect(v)
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}, nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func dynamicStep(v reflect.Value, key string) reflect.Value {
	switch v.Kind() {
	case reflect.Struct:
		field, ok := lookupField(v.Type(), key)
		if !ok {
			return reflect.Value{}
		}
		out, err := v.FieldByIndexErr(field.Index)
		if err != nil {
			return reflect.Value{}
		}
		return out
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}
		}
		return v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
	}
	return reflect.Value{}
}

func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	var byName reflect.StructField
	found := false
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == name {
			return f, true
		}
		if !found && strings.EqualFold(f.Name, name) {
			byName, found = f, true
		}
	}
	return byName, found
}
