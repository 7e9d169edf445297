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

// Package eval measures the ranking quality of a recommender against
// held-out interactions.
package eval

import (
	"context"
	"runtime"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/zhangzaixuan/implicit/base/log"
	"github.com/zhangzaixuan/implicit/base/progress"
	"github.com/zhangzaixuan/implicit/common/parallel"
	"github.com/zhangzaixuan/implicit/dataset"
	"github.com/zhangzaixuan/implicit/model"
	"go.uber.org/zap"
	"modernc.org/mathutil"
)

// ErrNoFeedback is returned when no user has held-out interactions, so the
// metric is undefined rather than zero.
var ErrNoFeedback = errors.New("no feedback in test set")

// noItem marks unused prediction buffer slots. Item indices are
// non-negative, so a stale slot can never match a held-out item.
const noItem = int32(-1)

// Config controls an evaluation run.
type Config struct {
	TopK         int
	Jobs         int
	ShowProgress bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		TopK:         10,
		Jobs:         0,
		ShowProgress: true,
	}
}

func (config *Config) SetTopK(topK int) *Config {
	config.TopK = topK
	return config
}

func (config *Config) SetJobs(jobs int) *Config {
	config.Jobs = jobs
	return config
}

func (config *Config) SetShowProgress(showProgress bool) *Config {
	config.ShowProgress = showProgress
	return config
}

// scorerGateway is the only access point to the recommender during an
// evaluation. Recommenders may hold non-reentrant state, so the call, the
// copy into the worker's buffer and the progress update all happen under
// one lock. Everything around it runs lock-free per worker.
type scorerGateway struct {
	mu   sync.Mutex
	rec  model.Recommender
	span *progress.Span
	bar  *progressbar.ProgressBar
}

// score fills buf with the recommender's ranking for a user and returns
// the number of valid slots. Slots past the returned count are reset so a
// previous user's predictions cannot leak into this user's count.
func (g *scorerGateway) score(userIndex int32, trainItems []int32, buf []int32) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	items, _, err := g.rec.Recommend(userIndex, trainItems, len(buf))
	if err != nil {
		return 0, errors.Trace(err)
	}
	n := copy(buf, items)
	for i := n; i < len(buf); i++ {
		buf[i] = noItem
	}
	g.span.Add(1)
	if g.bar != nil {
		_ = g.bar.Add(1)
	}
	return n, nil
}

// PrecisionAtK computes precision@K over all users with held-out
// interactions: the ratio of held-out items among each user's top-K
// recommendations, summed as hits over opportunities, where a user's
// opportunities are capped at min(K, held-out count). trainSet rows are
// passed to the recommender as context; testSet rows are the held-out
// truth. The result does not depend on the number of jobs.
func PrecisionAtK(ctx context.Context, rec model.Recommender, trainSet, testSet *dataset.Matrix, config *Config) (float64, error) {
	if config == nil {
		config = NewConfig()
	}
	if config.TopK < 1 {
		return 0, errors.NotValidf("top K %d", config.TopK)
	}
	if config.Jobs < 0 {
		return 0, errors.NotValidf("%d jobs", config.Jobs)
	}
	if trainSet.Rows() != testSet.Rows() {
		return 0, errors.NotValidf("train set with %d rows against test set with %d rows",
			trainSet.Rows(), testSet.Rows())
	}
	if ctx == nil {
		ctx = context.Background()
	}
	nWorkers := config.Jobs
	if nWorkers == 0 {
		nWorkers = runtime.NumCPU()
	}
	// count users with held-out interactions for progress reporting
	numScored := 0
	for u := int32(0); int(u) < testSet.Rows(); u++ {
		if len(testSet.RowView(u)) > 0 {
			numScored++
		}
	}
	ctx, span := progress.Start(ctx, "PrecisionAtK", numScored)
	gate := &scorerGateway{rec: rec, span: span}
	if config.ShowProgress {
		gate.bar = progressbar.Default(int64(numScored), "evaluate")
	}
	// per-worker scratch, allocated before any work is claimed and reused
	// across that worker's users
	buffers := make([][]int32, nWorkers)
	hitSets := make([]mapset.Set[int32], nWorkers)
	for workerId := 0; workerId < nWorkers; workerId++ {
		buffers[workerId] = make([]int32, config.TopK)
		hitSets[workerId] = mapset.NewThreadUnsafeSet[int32]()
	}
	partRelevant := make([]float64, nWorkers)
	partTotal := make([]float64, nWorkers)
	err := parallel.Parallel(ctx, testSet.Rows(), nWorkers, func(workerId, jobId int) error {
		userIndex := int32(jobId)
		heldOut := testSet.RowView(userIndex)
		// users without held-out interactions are skipped before the
		// serialized scorer call
		if len(heldOut) == 0 {
			return nil
		}
		buf := buffers[workerId]
		n, err := gate.score(userIndex, trainSet.RowView(userIndex), buf)
		if err != nil {
			return errors.Trace(err)
		}
		hitSet := hitSets[workerId]
		hitSet.Clear()
		hitSet.Append(heldOut...)
		hits := 0
		for _, itemIndex := range buf[:n] {
			if hitSet.Contains(itemIndex) {
				hits++
			}
		}
		partRelevant[workerId] += float64(hits)
		partTotal[workerId] += float64(mathutil.Min(config.TopK, len(heldOut)))
		return nil
	})
	if err != nil {
		span.Fail(err)
		if gate.bar != nil {
			_ = gate.bar.Exit()
		}
		return 0, errors.Trace(err)
	}
	relevant := lo.Sum(partRelevant)
	total := lo.Sum(partTotal)
	span.End()
	if total == 0 {
		return 0, errors.Trace(ErrNoFeedback)
	}
	log.Logger().Debug("precision@k evaluated",
		zap.Int("top_k", config.TopK),
		zap.Int("n_users", numScored),
		zap.Float64("relevant", relevant),
		zap.Float64("total", total))
	return relevant / total, nil
}
