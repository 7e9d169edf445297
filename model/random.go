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

package model

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/zhangzaixuan/implicit/base"
	"github.com/zhangzaixuan/implicit/dataset"
)

// Random recommends uniformly sampled unseen items. It shares one random
// generator across calls, so concurrent calls would race; the evaluator's
// serialization guarantee is what makes it usable there.
type Random struct {
	rng  base.RandomGenerator
	cols int32
}

func NewRandom(seed int64) *Random {
	return &Random{rng: base.NewRandomGenerator(seed)}
}

func (r *Random) Fit(trainSet *dataset.Matrix) {
	r.cols = int32(trainSet.Cols())
}

func (r *Random) Recommend(_ int32, trainItems []int32, n int) ([]int32, []float32, error) {
	if r.cols == 0 {
		return nil, nil, errors.New("random model is not fitted")
	}
	exclude := mapset.NewSet(trainItems...)
	items := r.rng.SampleInt32(0, r.cols, n, exclude)
	scores := make([]float32, len(items))
	for i := range scores {
		scores[i] = float32(len(items)-i) / float32(len(items))
	}
	return items, scores, nil
}
