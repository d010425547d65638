/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package delegation

import (
	"errors"
	"fmt"

	"dirpx.dev/bindx/apis"
	uref "dirpx.dev/bindx/utils/reflect"
)

var (
	// ErrFieldNotStatic is returned when the initializer's field is an
	// instance field.
	ErrFieldNotStatic = errors.New("bindx(delegation): field is not static")
	// ErrFieldInaccessible is returned when an accessible-mode initializer
	// meets a non-public field.
	ErrFieldInaccessible = errors.New("bindx(delegation): field is not accessible")
)

// FieldSetter stores values into static fields of a loaded type. It is
// implemented by the collaborator that loads generated types.
type FieldSetter interface {
	// SetStatic stores value into f. force requests that access checks be
	// suppressed.
	SetStatic(f apis.FieldDescription, value any, force bool) error
}

// AccessMode controls how a StaticFieldInitializer treats field visibility.
type AccessMode int

const (
	// ModeAccessible requires the field to be public.
	ModeAccessible AccessMode = iota
	// ModeForced suppresses access checks and writes any static field.
	ModeForced
)

// String returns the string representation of the access mode.
func (m AccessMode) String() string {
	switch m {
	case ModeAccessible:
		return "accessible"
	case ModeForced:
		return "forced"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// StaticFieldInitializer installs a value into a named static field when the
// generated type is loaded.
type StaticFieldInitializer struct {
	FieldName string
	Value     any
	Mode      AccessMode
}

// Accessible returns an initializer for a public static field.
func Accessible(fieldName string, value any) StaticFieldInitializer {
	return StaticFieldInitializer{FieldName: fieldName, Value: value, Mode: ModeAccessible}
}

// Forced returns an initializer that writes the field regardless of its
// visibility.
func Forced(fieldName string, value any) StaticFieldInitializer {
	return StaticFieldInitializer{FieldName: fieldName, Value: value, Mode: ModeForced}
}

// IsAlive reports whether OnLoad has work to do. A static field initializer
// always has.
func (i StaticFieldInitializer) IsAlive() bool { return true }

// OnLoad writes the value into the field declared by loaded.
func (i StaticFieldInitializer) OnLoad(loaded apis.TypeDescription, setter FieldSetter) error {
	if uref.IsNil(loaded) {
		return fmt.Errorf("%w: nil loaded type", ErrFieldNotDeclared)
	}
	var field apis.FieldDescription
	for _, f := range loaded.DeclaredFields() {
		if f.Name() == i.FieldName {
			field = f
			break
		}
	}
	switch {
	case field == nil:
		return fmt.Errorf("%w: %s.%s", ErrFieldNotDeclared, loaded.SourceCodeName(), i.FieldName)
	case !field.Modifiers().Has(apis.ModStatic):
		return fmt.Errorf("%w: %s", ErrFieldNotStatic, field)
	case i.Mode == ModeAccessible && !field.Modifiers().Has(apis.ModPublic):
		return fmt.Errorf("%w: %s is %s", ErrFieldInaccessible, field, visibility(field.Modifiers()))
	}
	return setter.SetStatic(field, i.Value, i.Mode == ModeForced)
}

func visibility(m apis.Modifiers) string {
	if s := (m & apis.ModVisibility).String(); s != "" {
		return s
	}
	return "package-private"
}

// Equal reports whether o installs an equal value into the same field in the
// same mode.
func (i StaticFieldInitializer) Equal(o StaticFieldInitializer) bool {
	return i.FieldName == o.FieldName && i.Mode == o.Mode && uref.ValueEqual(i.Value, o.Value)
}
