package populate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/result"
)

// ErrTarget is returned if the target of Into is not a non-nil pointer to a struct.
var ErrTarget = errors.New("populate target must be a non-nil pointer to a struct")

// FieldError reports a result entry which could not be stored into a field.
type FieldError struct {
	Field string
	Tag   string
	Entry result.Entry
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (tag %q): cannot store %v: %s", e.Field, e.Tag, e.Entry, e.Msg)
}

// Into populates the struct pointed to by target from the children of entry h.
// If h is NoHandle, the top-level entries of the tree are used.
func Into(tree *result.Tree, h result.Handle, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTarget
	}
	p := populator{tree: tree}
	return p.populate(h, v.Elem())
}

type populator struct {
	tree *result.Tree
}

type fieldTag struct {
	name   string
	option string // "", "alt", "span" or "text"
}

func parseTag(s string) fieldTag {
	name, option, _ := strings.Cut(s, ",")
	return fieldTag{name: name, option: option}
}

var spanType = reflect.TypeOf(sbnf.Span{})

func (p populator) populate(h result.Handle, v reflect.Value) error {
	typ := v.Type()
	children := p.tree.Children(h)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		s, ok := field.Tag.Lookup("sbnf")
		if !ok || s == "-" || !field.IsExported() {
			continue
		}
		tag := parseTag(s)
		var matching []result.Handle
		for _, ch := range children {
			if p.tree.Entry(ch).Tag == tag.name {
				matching = append(matching, ch)
			}
		}
		tracer().Debugf("field %s: %d entries tagged %q", field.Name, len(matching), tag.name)
		fv := v.Field(i)
		if fv.Kind() == reflect.Slice {
			elems := reflect.MakeSlice(fv.Type(), len(matching), len(matching))
			for j, ch := range matching {
				if err := p.store(ch, tag, elems.Index(j), field.Name); err != nil {
					return err
				}
			}
			fv.Set(elems)
			continue
		}
		if len(matching) == 0 {
			continue
		}
		if err := p.store(matching[0], tag, fv, field.Name); err != nil {
			return err
		}
	}
	return nil
}

func (p populator) store(h result.Handle, tag fieldTag, fv reflect.Value, name string) error {
	e := p.tree.Entry(h)
	fail := func(msg string) error {
		return &FieldError{Field: name, Tag: tag.name, Entry: e, Msg: msg}
	}
	switch tag.option {
	case "":
	case "alt":
		return setInt(fv, int64(e.Alt), fail)
	case "span":
		if fv.Type() != spanType {
			return fail("span needs a field of type sbnf.Span")
		}
		fv.Set(reflect.ValueOf(e.Span))
		return nil
	case "text":
		if fv.Kind() != reflect.String {
			return fail("text needs a string field")
		}
		fv.SetString(e.Text)
		return nil
	default:
		return fail(fmt.Sprintf("unknown tag option %q", tag.option))
	}
	switch fv.Kind() {
	case reflect.Ptr:
		if fv.Type().Elem().Kind() != reflect.Struct {
			return fail("unsupported pointer type " + fv.Type().String())
		}
		ptr := reflect.New(fv.Type().Elem())
		if err := p.populate(h, ptr.Elem()); err != nil {
			return err
		}
		fv.Set(ptr)
	case reflect.Struct:
		if fv.Type() == spanType {
			fv.Set(reflect.ValueOf(e.Span))
			return nil
		}
		return p.populate(h, fv)
	case reflect.Bool:
		fv.SetBool(e.Kind != result.Option || e.Alt != 0)
	case reflect.String:
		switch val := e.Value.(type) {
		case string:
			fv.SetString(val)
		default:
			fv.SetString(e.Text)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := intValue(e)
		if err != nil {
			return fail(err.Error())
		}
		return setInt(fv, n, fail)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := intValue(e)
		if err != nil {
			return fail(err.Error())
		}
		if n < 0 || fv.OverflowUint(uint64(n)) {
			return fail("value out of range")
		}
		fv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		switch val := e.Value.(type) {
		case float64:
			fv.SetFloat(val)
		case int64:
			fv.SetFloat(float64(val))
		default:
			return fail("not a number")
		}
	case reflect.Interface:
		if e.Value == nil {
			return nil
		}
		val := reflect.ValueOf(e.Value)
		if !val.Type().AssignableTo(fv.Type()) {
			return fail("value not assignable to " + fv.Type().String())
		}
		fv.Set(val)
	default:
		return fail("unsupported field type " + fv.Type().String())
	}
	return nil
}

func setInt(fv reflect.Value, n int64, fail func(string) error) error {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fv.OverflowInt(n) {
			return fail("value out of range")
		}
		fv.SetInt(n)
		return nil
	}
	return fail("needs an integer field")
}

// intValue returns the integer value of an entry. Strings are accepted if they
// hold a decimal number.
func intValue(e result.Entry) (int64, error) {
	switch val := e.Value.(type) {
	case int64:
		return val, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	}
	return 0, errors.New("not an integer")
}
