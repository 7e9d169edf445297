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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	err := os.WriteFile(path, []byte(
		"user,item,rating\n"+
			"196,242,3\n"+
			"186,302,3\n"+
			"196,377,1\n"+
			"\n"), 0o644)
	require.NoError(t, err)
	m, userDict, itemDict, err := LoadDataFromCSV(path, ",", true)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, []int32{0, 2}, m.RowView(0))
	assert.Equal(t, []float32{3, 1}, m.RowValues(0))
	assert.Equal(t, []int32{1}, m.RowView(1))
	user, ok := userDict.String(0)
	assert.True(t, ok)
	assert.Equal(t, "196", user)
	item, ok := itemDict.String(2)
	assert.True(t, ok)
	assert.Equal(t, "377", item)
}

func TestLoadDataFromCSVNoValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.tsv")
	err := os.WriteFile(path, []byte("a\tx\nb\ty\n"), 0o644)
	require.NoError(t, err)
	m, _, _, err := LoadDataFromCSV(path, "\t", false)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NNZ())
	assert.Equal(t, []float32{1}, m.RowValues(0))
}

func TestLoadDataFromCSVErrors(t *testing.T) {
	_, _, _, err := LoadDataFromCSV("no_such_file.csv", ",", false)
	assert.Error(t, err)
	path := filepath.Join(t.TempDir(), "bad.csv")
	err = os.WriteFile(path, []byte("a,x,not_a_number\n"), 0o644)
	require.NoError(t, err)
	_, _, _, err = LoadDataFromCSV(path, ",", false)
	assert.Error(t, err)
}
