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

package apis

// Binder attempts to supply every parameter of a candidate from a call site.
type Binder interface {
	// Bind returns a valid Binding, or an error when the candidate cannot be
	// bound. Bind is idempotent for a fixed (site, candidate) pair.
	Bind(site CallSite, candidate MethodDescription) (Binding, error)
}

// Identifier is implemented by binders and resolvers whose behavior depends
// on more than their Go type. Delegations sharing a resolution cache key
// their entries by Identity, so two components returning the same identity
// must bind and resolve alike.
type Identifier interface {
	Identity() string
}
