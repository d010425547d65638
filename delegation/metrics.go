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
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dirpx.dev/bindx/resolver"
)

const (
	outcomeResolved    = "resolved"
	outcomeCached      = "cached"
	outcomeAmbiguous   = "ambiguous"
	outcomeNoCandidate = "no-candidate"
	outcomeField       = "field"
	outcomeError       = "error"
)

// resolutions counts Resolve calls by anchor and outcome.
var resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bindx",
	Name:      "resolutions_total",
	Help:      "Call-site resolutions by delegation anchor and outcome.",
}, []string{"anchor", "outcome"})

func observe(a Anchor, outcome string) {
	resolutions.WithLabelValues(a.String(), outcome).Inc()
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, resolver.ErrAmbiguous):
		return outcomeAmbiguous
	case errors.Is(err, ErrNoEligibleCandidates):
		return outcomeNoCandidate
	case errors.Is(err, ErrFieldNotDeclared), errors.Is(err, ErrNoReceiver):
		return outcomeField
	default:
		return outcomeError
	}
}
