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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(3, 4,
		[]int{0, 2, 2, 3},
		[]int32{1, 3, 0},
		[]float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 4, m.Cols())
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, []int32{1, 3}, m.RowView(0))
	assert.Empty(t, m.RowView(1))
	assert.Equal(t, []int32{0}, m.RowView(2))
	assert.Equal(t, []float32{1, 2}, m.RowValues(0))
	assert.Equal(t, []float32{3}, m.RowValues(2))
}

func TestNewMatrixNilValues(t *testing.T) {
	m, err := NewMatrix(1, 2, []int{0, 2}, []int32{0, 1}, nil)
	require.NoError(t, err)
	assert.Nil(t, m.RowValues(0))
}

func TestNewMatrixInvalid(t *testing.T) {
	// indptr length
	_, err := NewMatrix(2, 2, []int{0, 1}, []int32{0}, nil)
	assert.Error(t, err)
	// indptr must start at zero
	_, err = NewMatrix(1, 2, []int{1, 1}, []int32{}, nil)
	assert.Error(t, err)
	// decreasing indptr
	_, err = NewMatrix(2, 2, []int{0, 2, 1}, []int32{0, 1}, nil)
	assert.Error(t, err)
	// indptr tail mismatch
	_, err = NewMatrix(1, 2, []int{0, 3}, []int32{0, 1}, nil)
	assert.Error(t, err)
	// values length mismatch
	_, err = NewMatrix(1, 2, []int{0, 2}, []int32{0, 1}, []float32{1})
	assert.Error(t, err)
	// item index out of range
	_, err = NewMatrix(1, 2, []int{0, 1}, []int32{2}, nil)
	assert.Error(t, err)
}

func TestNewMatrixFromTriplets(t *testing.T) {
	m, err := NewMatrixFromTriplets(3, 5,
		[]int32{2, 0, 0, 2},
		[]int32{4, 1, 3, 0},
		[]float32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3}, m.RowView(0))
	assert.Empty(t, m.RowView(1))
	assert.Equal(t, []int32{4, 0}, m.RowView(2))
	assert.Equal(t, []float32{2, 3}, m.RowValues(0))
	assert.Equal(t, []float32{1, 4}, m.RowValues(2))
	// user index out of range
	_, err = NewMatrixFromTriplets(1, 1, []int32{1}, []int32{0}, nil)
	assert.Error(t, err)
}

func TestFreqDict(t *testing.T) {
	d := NewFreqDict()
	assert.Equal(t, int32(0), d.Id("a"))
	assert.Equal(t, int32(1), d.Id("b"))
	assert.Equal(t, int32(0), d.Id("a"))
	assert.Equal(t, 2, d.Count())
	assert.Equal(t, 2, d.Freq(0))
	assert.Equal(t, 1, d.Freq(1))
	s, ok := d.String(1)
	assert.True(t, ok)
	assert.Equal(t, "b", s)
	_, ok = d.String(2)
	assert.False(t, ok)
}
