package slumber

import (
	"reflect"
)

// With is a phantom type restricting a system's []*Session field to
// sessions that carry component T.
//
// Usage:
//
//	type MySystem struct {
//	    Sessions []*slumber.Session
//	    _ slumber.With[slumber.MovementStates]
//	}
type With[T any] struct{}

// Without is a phantom type restricting a system's []*Session field to
// sessions that do NOT carry component T.
//
// Usage:
//
//	type MySystem struct {
//	    Sessions []*slumber.Session
//	    _ slumber.Without[slumber.Sleepless]
//	}
type Without[T any] struct{}

// PhantomTypeInfo provides component type information for phantom types.
type PhantomTypeInfo interface {
	ComponentType() reflect.Type
	IsWithout() bool
}

// ComponentType implements PhantomTypeInfo for With[T].
func (With[T]) ComponentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsWithout implements PhantomTypeInfo for With[T].
func (With[T]) IsWithout() bool {
	return false
}

// ComponentType implements PhantomTypeInfo for Without[T].
func (Without[T]) ComponentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsWithout implements PhantomTypeInfo for Without[T].
func (Without[T]) IsWithout() bool {
	return true
}

// phantomTypeInfoType is the reflect.Type of PhantomTypeInfo interface.
var phantomTypeInfoType = reflect.TypeFor[PhantomTypeInfo]()

// getPhantomInfo extracts component type and kind from a phantom type.
func getPhantomInfo(t reflect.Type) (compType reflect.Type, isWithout bool, ok bool) {
	if !t.Implements(phantomTypeInfoType) {
		return nil, false, false
	}
	v := reflect.New(t).Elem().Interface().(PhantomTypeInfo)
	return v.ComponentType(), v.IsWithout(), true
}
