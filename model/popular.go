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
	"context"
	"runtime"
	"sort"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/zhangzaixuan/implicit/common/parallel"
	"github.com/zhangzaixuan/implicit/common/util"
	"github.com/zhangzaixuan/implicit/dataset"
)

// Popularity recommends the most interacted items, skipping items the user
// has already seen. Scores are log1p-scaled interaction counts.
type Popularity struct {
	ranked []int32
	scores []float32
}

func NewPopularity() *Popularity {
	return new(Popularity)
}

// Fit counts item interactions over the train matrix. jobs == 0 means all
// available CPU cores.
func (p *Popularity) Fit(ctx context.Context, trainSet *dataset.Matrix, jobs int) error {
	if jobs < 0 {
		return errors.NotValidf("%d jobs", jobs)
	}
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}
	userChunks := parallel.Split(util.RangeInt(trainSet.Rows()), jobs)
	partCounts := make([][]float32, len(userChunks))
	err := parallel.Parallel(ctx, len(userChunks), jobs, func(_, chunkId int) error {
		counts := make([]float32, trainSet.Cols())
		for _, u := range userChunks[chunkId] {
			for _, itemIndex := range trainSet.RowView(int32(u)) {
				counts[itemIndex]++
			}
		}
		partCounts[chunkId] = counts
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}
	counts := make([]float32, trainSet.Cols())
	for _, part := range partCounts {
		for itemIndex, count := range part {
			counts[itemIndex] += count
		}
	}
	p.ranked = make([]int32, trainSet.Cols())
	for itemIndex := range p.ranked {
		p.ranked[itemIndex] = int32(itemIndex)
	}
	sort.SliceStable(p.ranked, func(i, j int) bool {
		return counts[p.ranked[i]] > counts[p.ranked[j]]
	})
	p.scores = make([]float32, trainSet.Cols())
	for i, itemIndex := range p.ranked {
		p.scores[i] = math32.Log1p(counts[itemIndex])
	}
	return nil
}

func (p *Popularity) Recommend(_ int32, trainItems []int32, n int) ([]int32, []float32, error) {
	if p.ranked == nil {
		return nil, nil, errors.New("popularity model is not fitted")
	}
	exclude := mapset.NewThreadUnsafeSet(trainItems...)
	items := make([]int32, 0, n)
	scores := make([]float32, 0, n)
	for i, itemIndex := range p.ranked {
		if len(items) >= n {
			break
		}
		if !exclude.Contains(itemIndex) {
			items = append(items, itemIndex)
			scores = append(scores, p.scores[i])
		}
	}
	return items, scores, nil
}
