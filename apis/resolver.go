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

// Resolver reduces an ambiguity set to a single binding.
// Typical chain: Specificity -> Explicitness -> DeclaringType.
type Resolver interface {
	// Resolve returns the unique winner of bindings, or an error when the set
	// is empty or cannot be reduced to one element.
	Resolve(site CallSite, bindings []Binding) (Binding, error)

	// Strategies returns the configured chain in order.
	Strategies() []Strategy
}
