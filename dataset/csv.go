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
	"bufio"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/zhangzaixuan/implicit/common/util"
)

// LoadDataFromCSV loads interactions from a CSV file. The CSV file should be:
//
//	[optional header]
//	<userId 1> <sep> <itemId 1> [<sep> <value 1> <sep> <extras>]
//	<userId 2> <sep> <itemId 2> [<sep> <value 2> <sep> <extras>]
//	...
//
// For example, the `u.data` from MovieLens 100K is:
//
//	196\t242\t3\t881250949
//	186\t302\t3\t891717742
//
// Raw identifiers are mapped to dense indices in order of first appearance.
// A missing value column defaults to weight 1. The returned dictionaries
// translate dense indices back to raw identifiers.
func LoadDataFromCSV(fileName, sep string, hasHeader bool) (*Matrix, *FreqDict, *FreqDict, error) {
	userDict, itemDict := NewFreqDict(), NewFreqDict()
	var users, items []int32
	var values []float32
	// Open file
	file, err := os.Open(fileName)
	if err != nil {
		return nil, nil, nil, errors.Trace(err)
	}
	defer file.Close()
	// Read CSV file
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore header
		if hasHeader {
			hasHeader = false
			continue
		}
		fields := strings.Split(line, sep)
		// Ignore empty line
		if len(fields) < 2 {
			continue
		}
		users = append(users, userDict.Id(fields[0]))
		items = append(items, itemDict.Id(fields[1]))
		value := float32(1)
		if len(fields) > 2 {
			if value, err = util.ParseFloat[float32](fields[2]); err != nil {
				return nil, nil, nil, errors.NotValidf("value %q in line %q", fields[2], line)
			}
		}
		values = append(values, value)
	}
	if err = scanner.Err(); err != nil {
		return nil, nil, nil, errors.Trace(err)
	}
	m, err := NewMatrixFromTriplets(userDict.Count(), itemDict.Count(), users, items, values)
	if err != nil {
		return nil, nil, nil, errors.Trace(err)
	}
	return m, userDict, itemDict, nil
}
