package annotation

import (
	"fmt"
	"reflect"
	"unsafe"
)

// FieldValue returns the value of the named field of obj, a struct or a
// pointer to one. Promoted fields of embedded structs are found too, and
// unexported fields are read as well.
func FieldValue(obj any, name string) (any, error) {
	v, err := structValue(obj)
	if err != nil {
		return nil, err
	}
	sf, ok := v.Type().FieldByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchField, v.Type(), name)
	}
	if !v.CanAddr() {
		v = addressable(v)
	}
	fv, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return nil, fmt.Errorf("annotation: read %s.%s: %w", v.Type(), name, err)
	}
	if fv.CanInterface() {
		return fv.Interface(), nil
	}
	// Unexported: read through a pointer to the field's storage.
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem().Interface(), nil
}

// MethodValue calls the named niladic, single-result method of obj and
// returns its result. When obj is not a pointer, pointer-receiver methods
// are called on a copy.
func MethodValue(obj any, name string) (any, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil value", ErrNotStruct)
	}
	v := reflect.ValueOf(obj)
	m := v.MethodByName(name)
	if !m.IsValid() && v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
		m = addressable(v).Addr().MethodByName(name)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, v.Type(), name)
	}
	if m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return nil, fmt.Errorf("%w: %s.%s has signature %s", ErrNotAccessor, v.Type(), name, m.Type())
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", ErrNotStruct, v.Type())
	}
	return m.Call(nil)[0].Interface(), nil
}

// addressable returns an addressable copy of v.
func addressable(v reflect.Value) reflect.Value {
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

func structValue(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrNotStruct, v.Type())
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrNotStruct, obj)
	}
	return v, nil
}
