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

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requests counts cache lookups by strategy and result ("hit" or "miss").
var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bindx",
	Name:      "cache_requests_total",
	Help:      "Resolution cache lookups by retention strategy and result.",
}, []string{"strategy", "result"})

type instrumented[K comparable, V any] struct {
	Cache[K, V]
	hit, miss prometheus.Counter
}

func instrument[K comparable, V any](c Cache[K, V]) Cache[K, V] {
	s := c.Strategy().String()
	return &instrumented[K, V]{
		Cache: c,
		hit:   requests.WithLabelValues(s, "hit"),
		miss:  requests.WithLabelValues(s, "miss"),
	}
}

func (i *instrumented[K, V]) Get(key K) (V, bool) {
	v, ok := i.Cache.Get(key)
	if ok {
		i.hit.Inc()
	} else {
		i.miss.Inc()
	}
	return v, ok
}
