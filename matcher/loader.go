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

package matcher

import "dirpx.dev/bindx/apis"

// IsBootstrapClassLoader matches the root loader.
func IsBootstrapClassLoader() apis.Matcher[apis.Loader] {
	return newPredicate(call("isBootstrapClassLoader"), apis.Loader.IsRoot)
}

// IsExtensionClassLoader matches apis.ExtensionLoader.
func IsExtensionClassLoader() apis.Matcher[apis.Loader] {
	return newPredicate(call("isExtensionClassLoader"), func(l apis.Loader) bool {
		return l == apis.ExtensionLoader
	})
}

// IsSystemClassLoader matches apis.SystemLoader.
func IsSystemClassLoader() apis.Matcher[apis.Loader] {
	return newPredicate(call("isSystemClassLoader"), func(l apis.Loader) bool {
		return l == apis.SystemLoader
	})
}

// IsChildOf matches strict descendants of parent. Every non-root loader is a
// child of the root; the root is a child of nothing.
func IsChildOf(parent apis.Loader) apis.Matcher[apis.Loader] {
	return newPredicate(call("isChildOf", literal(parent)), func(l apis.Loader) bool {
		for p, ok := l.Parent(); ok; p, ok = p.Parent() {
			if p == parent {
				return true
			}
		}
		return false
	})
}

// IsParentOf matches child itself, its ancestors and the root.
func IsParentOf(child apis.Loader) apis.Matcher[apis.Loader] {
	return newPredicate(call("isParentOf", literal(child)), func(l apis.Loader) bool {
		for c, ok := child, true; ok; c, ok = c.Parent() {
			if c == l {
				return true
			}
		}
		return false
	})
}
