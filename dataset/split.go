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

package dataset

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/juju/errors"
	"github.com/zhangzaixuan/implicit/base"
)

// Split assigns each stored interaction to the train set with probability
// trainFraction and to the test set otherwise. Assignment is independent
// per interaction, not per user, so a user may end up with all entries on
// one side. Both outputs keep the shape of m.
func Split(m *Matrix, trainFraction float64, seed int64) (trainSet, testSet *Matrix, err error) {
	if trainFraction < 0 || trainFraction > 1 {
		return nil, nil, errors.NotValidf("train fraction %v", trainFraction)
	}
	rng := base.NewRandomGenerator(seed)
	mask := bitset.New(uint(m.NNZ()))
	trainSize := 0
	for i := 0; i < m.NNZ(); i++ {
		if rng.Float64() < trainFraction {
			mask.Set(uint(i))
			trainSize++
		}
	}
	trainIndptr := make([]int, m.Rows()+1)
	testIndptr := make([]int, m.Rows()+1)
	trainIndices := make([]int32, 0, trainSize)
	testIndices := make([]int32, 0, m.NNZ()-trainSize)
	var trainValues, testValues []float32
	if m.values != nil {
		trainValues = make([]float32, 0, trainSize)
		testValues = make([]float32, 0, m.NNZ()-trainSize)
	}
	for u := 0; u < m.Rows(); u++ {
		for i := m.indptr[u]; i < m.indptr[u+1]; i++ {
			if mask.Test(uint(i)) {
				trainIndices = append(trainIndices, m.indices[i])
				if m.values != nil {
					trainValues = append(trainValues, m.values[i])
				}
			} else {
				testIndices = append(testIndices, m.indices[i])
				if m.values != nil {
					testValues = append(testValues, m.values[i])
				}
			}
		}
		trainIndptr[u+1] = len(trainIndices)
		testIndptr[u+1] = len(testIndices)
	}
	trainSet, err = NewMatrix(m.Rows(), m.Cols(), trainIndptr, trainIndices, trainValues)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	testSet, err = NewMatrix(m.Rows(), m.Cols(), testIndptr, testIndices, testValues)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return trainSet, testSet, nil
}
