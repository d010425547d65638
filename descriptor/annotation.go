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

package descriptor

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/bindx/apis"
)

// Annotation is an in-memory apis.AnnotationDescription.
type Annotation struct {
	annotationType apis.TypeDescription
	values         map[string]any
}

// Ensure Annotation implements apis.AnnotationDescription.
var _ apis.AnnotationDescription = (*Annotation)(nil)

// NewAnnotation returns an annotation of type t with the given property values.
func NewAnnotation(t apis.TypeDescription, values map[string]any) *Annotation {
	return &Annotation{annotationType: t, values: maps.Clone(values)}
}

// Marker returns an annotation of type t without properties.
func Marker(t apis.TypeDescription) *Annotation {
	return &Annotation{annotationType: t}
}

func (a *Annotation) AnnotationType() apis.TypeDescription { return a.annotationType }

// Value returns the named property.
func (a *Annotation) Value(property string) (any, bool) {
	v, ok := a.values[property]
	return v, ok
}

// Equal reports whether other has the same type and property values.
func (a *Annotation) Equal(other any) bool {
	o, ok := other.(apis.AnnotationDescription)
	if !ok || o == nil || a == nil {
		return false
	}
	if !a.annotationType.Equal(o.AnnotationType()) {
		return false
	}
	if oa, ok := o.(*Annotation); ok {
		if len(a.values) == 0 && len(oa.values) == 0 {
			return true
		}
		return reflect.DeepEqual(a.values, oa.values)
	}
	for k, v := range a.values {
		ov, ok := o.Value(k)
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// String renders "@Type(k=v, ...)" with keys sorted.
func (a *Annotation) String() string {
	keys := slices.Sorted(maps.Keys(a.values))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, a.values[k])
	}
	return "@" + a.annotationType.SourceCodeName() + "(" + strings.Join(parts, ", ") + ")"
}
