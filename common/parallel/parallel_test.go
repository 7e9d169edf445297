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
package parallel

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/zhangzaixuan/implicit/common/util"
	"go.uber.org/atomic"
)

func TestParallel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a := util.RangeInt(10000)
		b := make([]int, len(a))
		workerIds := make([]int, len(a))
		// multiple threads
		_ = Parallel(context.Background(), len(a), 4, func(workerId, jobId int) error {
			b[jobId] = a[jobId]
			workerIds[jobId] = workerId
			time.Sleep(time.Microsecond)
			return nil
		})
		workersSet := mapset.NewSet(workerIds...)
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, 4, workersSet.Cardinality())
		assert.Less(t, 1, workersSet.Cardinality())
		// single thread
		_ = Parallel(context.Background(), len(a), 1, func(workerId, jobId int) error {
			b[jobId] = a[jobId]
			workerIds[jobId] = workerId
			return nil
		})
		workersSet = mapset.NewSet(workerIds...)
		assert.Equal(t, a, b)
		assert.Equal(t, 1, workersSet.Cardinality())
	})
}

func TestParallelFailFast(t *testing.T) {
	// single thread
	err := Parallel(context.Background(), 10000, 1, func(_, jobId int) error {
		if jobId == 42 {
			return errors.New("boom")
		}
		return nil
	})
	assert.ErrorContains(t, err, "boom")
	// multiple threads
	err = Parallel(context.Background(), 10000, 4, func(_, jobId int) error {
		if jobId == 42 {
			return errors.New("boom")
		}
		return nil
	})
	assert.ErrorContains(t, err, "boom")
}

func TestParallelFailFastStopsPool(t *testing.T) {
	// a failed worker stops the pool: each worker runs at most one job
	// before the first error cancels the rest
	var executed atomic.Int64
	err := Parallel(context.Background(), 10000, 4, func(_, _ int) error {
		executed.Inc()
		return errors.New("boom")
	})
	assert.ErrorContains(t, err, "boom")
	assert.LessOrEqual(t, executed.Load(), int64(4))
}

func TestParallelCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Parallel(ctx, 10000, 4, func(_, _ int) error {
			time.Sleep(time.Microsecond)
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSplit(t *testing.T) {
	// n chunks
	chunks := Split(util.RangeInt(10), 3)
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, chunks)
	// more chunks than elements
	chunks = Split(util.RangeInt(2), 3)
	assert.Equal(t, [][]int{{0}, {1}}, chunks)
	// empty slice
	assert.Nil(t, Split([]int{}, 3))
}
