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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/crypto/blake2b"

	"dirpx.dev/bindx/apis"
	uref "dirpx.dev/bindx/utils/reflect"
)

// Anchor tells the collaborator where the handler receiving a delegated call
// comes from.
type Anchor int

const (
	// AnchorStatic invokes static methods of the handler type.
	AnchorStatic Anchor = iota
	// AnchorInstance invokes a held instance stored in a static field of
	// the generated type.
	AnchorInstance
	// AnchorField reads an instance field of the generated type at call time.
	AnchorField
	// AnchorConstructor constructs a fresh handler per call.
	AnchorConstructor
)

// String returns the metric and log label of the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorStatic:
		return "static"
	case AnchorInstance:
		return "instance"
	case AnchorField:
		return "field"
	case AnchorConstructor:
		return "constructor"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Target is the anchor of a delegation: where the handler comes from.
// Targets compare by value; see Equal.
type Target struct {
	Anchor Anchor
	// Handler describes the type whose members receive the call.
	Handler apis.TypeDescription
	// Instance is the held handler value for AnchorInstance.
	Instance any
	// FieldName is the generated-type field holding the handler for
	// AnchorInstance and AnchorField.
	FieldName string
}

// Equal reports whether o has the same anchor, handler type and field name
// and, for held instances, an equal instance.
func (t Target) Equal(o Target) bool {
	if t.Anchor != o.Anchor || t.FieldName != o.FieldName {
		return false
	}
	if uref.IsNil(t.Handler) || uref.IsNil(o.Handler) {
		return uref.IsNil(t.Handler) && uref.IsNil(o.Handler)
	}
	if !t.Handler.Equal(o.Handler) {
		return false
	}
	return t.Anchor != AnchorInstance || uref.ValueEqual(t.Instance, o.Instance)
}

// Hash is consistent with Equal. The instance contributes its Go type only,
// so values with a custom Equal method hash alike.
func (t Target) Hash() uint64 {
	return digest(t.key())
}

// key is the structural identity of the target without the instance value.
func (t Target) key() string {
	var b strings.Builder
	b.WriteString(t.Anchor.String())
	b.WriteByte('|')
	if !uref.IsNil(t.Handler) {
		b.WriteString(t.Handler.Name())
	}
	b.WriteByte('|')
	b.WriteString(t.FieldName)
	if t.Anchor == AnchorInstance {
		fmt.Fprintf(&b, "|%T", t.Instance)
	}
	return b.String()
}

// String renders e.g. "instance(app.Handler, field=delegate$1a2b3c4d)".
func (t Target) String() string {
	name := "<nil>"
	if !uref.IsNil(t.Handler) {
		name = t.Handler.SourceCodeName()
	}
	if t.FieldName == "" {
		return t.Anchor.String() + "(" + name + ")"
	}
	return t.Anchor.String() + "(" + name + ", field=" + t.FieldName + ")"
}

func digest(s string) uint64 {
	sum := blake2b.Sum256([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}

// FieldName derives the name of the static field holding instance:
// prefix + "$" + the first eight hex digits of a digest of the instance.
// Instances that compare equal in Target.Equal derive equal names: plain
// values by their Go type and value, pointers, channels and funcs without
// an Equal method by address.
func FieldName(prefix string, instance any) string {
	sum := blake2b.Sum256([]byte(instanceKey(instance)))
	return prefix + "$" + hex.EncodeToString(sum[:4])
}

func instanceKey(v any) string {
	if _, ok := v.(interface{ Equal(any) bool }); !ok && v != nil {
		switch reflect.ValueOf(v).Kind() {
		case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return fmt.Sprintf("%T:%p", v, v)
		}
	}
	return fmt.Sprintf("%T:%v", v, v)
}
