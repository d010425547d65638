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

package matcher_test

import (
	"dirpx.dev/bindx/apis"
	"dirpx.dev/bindx/descriptor"
)

const pub = apis.ModPublic

var (
	marker    = descriptor.AnnotationType("example.Marker")
	inherited = descriptor.AnnotationType("example.Inheritable").
			Annotate(descriptor.Marker(descriptor.Inherited))

	checked    = descriptor.Class("example.CheckedException", pub).Extends(descriptor.Exception)
	subChecked = descriptor.Class("example.SubCheckedException", pub).Extends(checked)
	unchecked  = descriptor.Class("example.Oops", pub).Extends(descriptor.RuntimeException)

	base = descriptor.Class("example.Base", pub).
		Annotate(descriptor.Marker(inherited), descriptor.Marker(marker))
	derived = descriptor.Class("example.Derived", pub).Extends(base)

	getName  = descriptor.NewMethod("getName", pub, descriptor.String)
	isActive = descriptor.NewMethod("isActive", pub, descriptor.Boolean)
	isBoxed  = descriptor.NewMethod("isBoxed", pub, descriptor.BoxedBoolean)
	isCount  = descriptor.NewMethod("isCount", pub, descriptor.Int)
	getWith  = descriptor.NewMethod("getWith", pub, descriptor.String, descriptor.Int)
	getVoid  = descriptor.NewMethod("getNothing", pub, nil)
	setName  = descriptor.NewMethod("setName", pub, nil, descriptor.String)
	setTwo   = descriptor.NewMethod("setBoth", pub, nil, descriptor.String, descriptor.Int)
	setRet   = descriptor.NewMethod("setFluent", pub, descriptor.String, descriptor.String)
	risky    = descriptor.NewMethod("risky", pub, nil).Throws(checked)
	safe     = descriptor.NewMethod("safe", pub, nil)
	ctor     = descriptor.NewConstructor(pub)
	ctorArg  = descriptor.NewConstructor(pub, descriptor.String)
	clinit   = descriptor.NewTypeInitializer()
)

func init() {
	base.WithMethod(getName, isActive, isBoxed, isCount, getWith, getVoid,
		setName, setTwo, setRet, risky, safe, ctor, ctorArg, clinit)
	base.WithField(descriptor.NewField("name", apis.ModPrivate, descriptor.String))
}
