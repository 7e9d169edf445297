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

// FreqDict maps raw string identifiers to dense indices and tracks how
// often each identifier was added.
type FreqDict struct {
	si  map[string]int32
	is  []string
	cnt []int
}

func NewFreqDict() *FreqDict {
	return &FreqDict{si: map[string]int32{}}
}

// Count returns the number of distinct identifiers.
func (d *FreqDict) Count() int {
	return len(d.is)
}

// Id returns the dense index of s, assigning the next free index on first
// sight, and increments its frequency.
func (d *FreqDict) Id(s string) int32 {
	if y, ok := d.si[s]; ok {
		d.cnt[y]++
		return y
	}
	y := int32(len(d.is))
	d.si[s] = y
	d.is = append(d.is, s)
	d.cnt = append(d.cnt, 1)
	return y
}

// String returns the identifier behind a dense index.
func (d *FreqDict) String(id int32) (string, bool) {
	if int(id) >= len(d.is) {
		return "", false
	}
	return d.is[id], true
}

// Freq returns how many times an identifier was added.
func (d *FreqDict) Freq(id int32) int {
	if int(id) >= len(d.cnt) {
		return 0
	}
	return d.cnt[id]
}
