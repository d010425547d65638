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

import "fmt"

// Matcher is a pure predicate over a value of type T.
//
// Evaluating a matcher twice on the same value yields the same result.
// String renders the structural composition and its captured literals; two
// matchers with the same rendering are considered equal.
type Matcher[T any] interface {
	fmt.Stringer
	// Matches reports whether v satisfies the predicate.
	Matches(v T) bool
}
