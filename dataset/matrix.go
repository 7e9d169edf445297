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

// Package dataset stores user-item interactions as compressed sparse row
// matrices, the layout consumed by evaluation.
package dataset

import (
	"github.com/juju/errors"
)

// Matrix is an immutable compressed sparse row matrix of user-item
// interactions. Row u owns the half-open range [indptr[u], indptr[u+1])
// of the indices and values arrays. Rows may be empty.
type Matrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int32
	values  []float32
}

// NewMatrix creates a Matrix from raw CSR arrays. If values is nil, every
// stored entry is treated as an interaction of weight 1. The arrays are
// validated eagerly and retained without copying.
func NewMatrix(rows, cols int, indptr []int, indices []int32, values []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.NotValidf("shape (%d, %d)", rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, errors.NotValidf("indptr length %d for %d rows", len(indptr), rows)
	}
	if indptr[0] != 0 {
		return nil, errors.NotValidf("indptr[0] = %d", indptr[0])
	}
	for u := 0; u < rows; u++ {
		if indptr[u+1] < indptr[u] {
			return nil, errors.NotValidf("decreasing indptr at row %d", u)
		}
	}
	if indptr[rows] != len(indices) {
		return nil, errors.NotValidf("indptr[%d] = %d with %d indices", rows, indptr[rows], len(indices))
	}
	if values != nil && len(values) != len(indices) {
		return nil, errors.NotValidf("%d values for %d indices", len(values), len(indices))
	}
	for _, itemIndex := range indices {
		if itemIndex < 0 || int(itemIndex) >= cols {
			return nil, errors.NotValidf("item index %d outside %d columns", itemIndex, cols)
		}
	}
	return &Matrix{
		rows:    rows,
		cols:    cols,
		indptr:  indptr,
		indices: indices,
		values:  values,
	}, nil
}

// NewMatrixFromTriplets creates a Matrix from (user, item, value) triplets
// via counting sort. The relative order of one user's items is preserved.
func NewMatrixFromTriplets(rows, cols int, users, items []int32, values []float32) (*Matrix, error) {
	if len(users) != len(items) {
		return nil, errors.NotValidf("%d users for %d items", len(users), len(items))
	}
	if values != nil && len(values) != len(items) {
		return nil, errors.NotValidf("%d values for %d items", len(values), len(items))
	}
	for _, userIndex := range users {
		if userIndex < 0 || int(userIndex) >= rows {
			return nil, errors.NotValidf("user index %d outside %d rows", userIndex, rows)
		}
	}
	indptr := make([]int, rows+1)
	for _, userIndex := range users {
		indptr[userIndex+1]++
	}
	for u := 0; u < rows; u++ {
		indptr[u+1] += indptr[u]
	}
	indices := make([]int32, len(items))
	var csrValues []float32
	if values != nil {
		csrValues = make([]float32, len(values))
	}
	next := make([]int, rows)
	copy(next, indptr[:rows])
	for i, userIndex := range users {
		pos := next[userIndex]
		indices[pos] = items[i]
		if values != nil {
			csrValues[pos] = values[i]
		}
		next[userIndex]++
	}
	return NewMatrix(rows, cols, indptr, indices, csrValues)
}

// Rows returns the number of users.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of items.
func (m *Matrix) Cols() int {
	return m.cols
}

// NNZ returns the number of stored interactions.
func (m *Matrix) NNZ() int {
	return len(m.indices)
}

// RowView returns the item indices of user u without copying. The slice is
// empty for users without interactions and must not be modified.
func (m *Matrix) RowView(u int32) []int32 {
	return m.indices[m.indptr[u]:m.indptr[u+1]]
}

// RowValues returns the interaction weights of user u without copying, or
// nil if the matrix carries no weights.
func (m *Matrix) RowValues(u int32) []float32 {
	if m.values == nil {
		return nil
	}
	return m.values[m.indptr[u]:m.indptr[u+1]]
}
