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

// Strategy is a pluggable tie-break step. A Resolver chains multiple
// strategies in order (e.g., Specificity -> Explicitness -> DeclaringType).
type Strategy interface {
	// Name returns the stable configuration name of the strategy.
	Name() string

	// Decide compares two valid bindings for the same call site.
	// It returns Undecided to fall through to the next strategy.
	Decide(site CallSite, left, right Binding) Decision
}
