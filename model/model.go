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

// Package model defines the recommender boundary used by evaluation and
// ships baseline recommenders.
package model

// Recommender produces ranked recommendations for a user. Implementations
// are not required to be safe for concurrent use: the evaluator serializes
// every call behind a single lock.
type Recommender interface {
	// Recommend returns up to n item indices for a user, ordered by
	// descending confidence, together with their scores. trainItems is the
	// user's train-set row; implementations should not recommend items
	// already in it.
	Recommend(userIndex int32, trainItems []int32, n int) ([]int32, []float32, error)
}
