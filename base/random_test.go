// Copyright 2024 zhangzaixuan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package base

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_SampleInt32(t *testing.T) {
	excludeSet := mapset.NewSet[int32](0, 1, 2, 3, 4)
	rng := NewRandomGenerator(0)
	for i := 1; i <= 10; i++ {
		sampled := rng.SampleInt32(0, 10, i, excludeSet)
		for j := range sampled {
			assert.False(t, excludeSet.Contains(sampled[j]))
		}
	}
	// exhausted interval returns every remaining value
	sampled := rng.SampleInt32(0, 10, 10, excludeSet)
	assert.Equal(t, []int32{5, 6, 7, 8, 9}, sampled)
	// excluded values outside the interval do not exhaust it
	outOfRange := mapset.NewSet[int32](100, 101, 102, 103, 104, 105)
	sampled = rng.SampleInt32(0, 10, 5, outOfRange)
	assert.Len(t, sampled, 5)
	sampledSet := mapset.NewSet(sampled...)
	assert.Equal(t, 5, sampledSet.Cardinality())
	for _, v := range sampled {
		assert.GreaterOrEqual(t, v, int32(0))
		assert.Less(t, v, int32(10))
	}
}

func TestRandomGenerator_Deterministic(t *testing.T) {
	a := NewRandomGenerator(42).SampleInt32(0, 1000, 10)
	b := NewRandomGenerator(42).SampleInt32(0, 1000, 10)
	assert.Equal(t, a, b)
}
