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

import (
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/bindx/apis"
)

type nameMode int

const (
	nameEquals nameMode = iota
	namePrefix
	nameSuffix
	nameInfix
)

func (m nameMode) op() string {
	switch m {
	case namePrefix:
		return "nameStartsWith"
	case nameSuffix:
		return "nameEndsWith"
	case nameInfix:
		return "nameContains"
	default:
		return "named"
	}
}

func nameMatcher[T apis.Named](mode nameMode, fold bool, s string) apis.Matcher[T] {
	op := mode.op()
	if fold {
		op += "IgnoreCase"
	}
	want := s
	if fold {
		want = strings.ToLower(s)
	}
	return newPredicate(call(op, fmt.Sprintf("%q", s)), func(v T) bool {
		name := v.SourceCodeName()
		if fold {
			name = strings.ToLower(name)
		}
		switch mode {
		case namePrefix:
			return strings.HasPrefix(name, want)
		case nameSuffix:
			return strings.HasSuffix(name, want)
		case nameInfix:
			return strings.Contains(name, want)
		default:
			return name == want
		}
	})
}

// Named matches elements whose source code name equals name.
func Named[T apis.Named](name string) apis.Matcher[T] {
	return nameMatcher[T](nameEquals, false, name)
}

// NamedIgnoreCase is Named ignoring case.
func NamedIgnoreCase[T apis.Named](name string) apis.Matcher[T] {
	return nameMatcher[T](nameEquals, true, name)
}

// NameStartsWith matches source code names starting with prefix.
func NameStartsWith[T apis.Named](prefix string) apis.Matcher[T] {
	return nameMatcher[T](namePrefix, false, prefix)
}

// NameStartsWithIgnoreCase is NameStartsWith ignoring case.
func NameStartsWithIgnoreCase[T apis.Named](prefix string) apis.Matcher[T] {
	return nameMatcher[T](namePrefix, true, prefix)
}

// NameEndsWith matches source code names ending with suffix.
func NameEndsWith[T apis.Named](suffix string) apis.Matcher[T] {
	return nameMatcher[T](nameSuffix, false, suffix)
}

// NameEndsWithIgnoreCase is NameEndsWith ignoring case.
func NameEndsWithIgnoreCase[T apis.Named](suffix string) apis.Matcher[T] {
	return nameMatcher[T](nameSuffix, true, suffix)
}

// NameContains matches source code names containing infix.
func NameContains[T apis.Named](infix string) apis.Matcher[T] {
	return nameMatcher[T](nameInfix, false, infix)
}

// NameContainsIgnoreCase is NameContains ignoring case.
func NameContainsIgnoreCase[T apis.Named](infix string) apis.Matcher[T] {
	return nameMatcher[T](nameInfix, true, infix)
}

// NameMatches matches source code names that the regular expression matches
// in full. It panics when expr does not compile.
func NameMatches[T apis.Named](expr string) apis.Matcher[T] {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		invalid("nameMatches(%q): %v", expr, err)
	}
	return newPredicate(call("nameMatches", fmt.Sprintf("%q", expr)), func(v T) bool {
		return re.MatchString(v.SourceCodeName())
	})
}

// HasDescriptor matches the structural signature string exactly.
func HasDescriptor[T apis.ByteCodeElement](descriptor string) apis.Matcher[T] {
	return newPredicate(call("hasDescriptor", fmt.Sprintf("%q", descriptor)), func(v T) bool {
		return v.Descriptor() == descriptor
	})
}
