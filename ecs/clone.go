package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

// Cloneable is implemented by composite field values that must be deep copied
// when the component holding them is cloned. CloneValue returns a value (or a
// pointer to a value) assignable to the field.
type Cloneable interface {
	CloneValue() (any, error)
}

var errCloneType = errors.New("clone returned a value of the wrong type")

// CloneComponent copies src into a new detached component of the same type.
// Fields are shallow copied, except fields holding a Cloneable, which are
// replaced by their clone. The first failing field aborts the whole clone and
// is reported as a *CloneError; src is never modified.
func CloneComponent[T any, PT interface {
	*T
	Component
}](src PT) (PT, error) {
	if src == nil {
		return nil, ErrNilComponent
	}

	dst := PT(new(T))
	*(*T)(dst) = *(*T)(src)
	dst.base().detach()

	dv := reflect.ValueOf(dst).Elem()
	if dv.Kind() != reflect.Struct {
		return dst, nil
	}

	for _, field := range Fields.GetFields(dv.Type()) {
		if !field.Cloneable {
			continue
		}

		fv := dv.Field(field.Index)
		if !fv.CanSet() {
			fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}

		if err := cloneField(fv); err != nil {
			return nil, &CloneError{Type: src.Type(), Field: field.Name, Err: err}
		}
	}

	return dst, nil
}

// cloneField replaces fv in place with the clone of its current value. fv
// still holds the shallow copy taken from the source.
func cloneField(fv reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clone panicked: %v", r)
		}
	}()

	var c Cloneable
	switch fv.Kind() {
	case reflect.Interface, reflect.Ptr:
		if fv.IsNil() {
			return nil
		}
		c, _ = fv.Interface().(Cloneable)
	default:
		if fv.Type().Implements(cloneableType) {
			c = fv.Interface().(Cloneable)
		} else if fv.CanAddr() {
			c, _ = fv.Addr().Interface().(Cloneable)
		}
	}
	if c == nil {
		return nil
	}

	out, err := c.CloneValue()
	if err != nil {
		return err
	}

	v := reflect.ValueOf(out)
	switch {
	case !v.IsValid():
		fv.Set(reflect.Zero(fv.Type()))
	case v.Type().AssignableTo(fv.Type()):
		fv.Set(v)
	case v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Type().AssignableTo(fv.Type()):
		fv.Set(v.Elem())
	case fv.Kind() == reflect.Ptr && v.Type().AssignableTo(fv.Type().Elem()):
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(v)
		fv.Set(p)
	default:
		return fmt.Errorf("%w: got %s, want %s", errCloneType, v.Type(), fv.Type())
	}
	return nil
}
