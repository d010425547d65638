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

// Loader is a class loader in a parent chain. The zero Loader is the
// bootstrap root; it has no parent and no name. Non-root loaders are created
// with NewLoader and compare by identity.
type Loader struct {
	node *loaderNode
}

type loaderNode struct {
	name   string
	parent Loader
}

// Root is the bootstrap loader.
var Root = Loader{}

var (
	// ExtensionLoader is the platform extension loader, a child of Root.
	ExtensionLoader = NewLoader("extension", Root)
	// SystemLoader is the application loader, a child of ExtensionLoader.
	SystemLoader = NewLoader("system", ExtensionLoader)
)

// NewLoader creates a distinct loader with the given parent.
func NewLoader(name string, parent Loader) Loader {
	return Loader{node: &loaderNode{name: name, parent: parent}}
}

// IsRoot reports whether l is the bootstrap loader.
func (l Loader) IsRoot() bool {
	return l.node == nil
}

// Parent returns the parent loader. ok is false at the root.
func (l Loader) Parent() (parent Loader, ok bool) {
	if l.node == nil {
		return Root, false
	}
	return l.node.parent, true
}

// Name returns the loader name, "bootstrap" at the root.
func (l Loader) Name() string {
	if l.node == nil {
		return "bootstrap"
	}
	return l.node.name
}

// String implements fmt.Stringer.
func (l Loader) String() string {
	return l.Name()
}
