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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhangzaixuan/implicit/base/log"
	"github.com/zhangzaixuan/implicit/dataset"
	"github.com/zhangzaixuan/implicit/eval"
	"github.com/zhangzaixuan/implicit/model"
	"go.uber.org/zap"
)

func init() {
	implicitCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	implicitCommand.PersistentFlags().String("load-csv", "", "load data from CSV file")
	implicitCommand.PersistentFlags().String("csv-sep", "\t", "load CSV file with separator")
	implicitCommand.PersistentFlags().Bool("csv-header", false, "load CSV file with header")
	implicitCommand.PersistentFlags().Float64("train-fraction", 0.8, "fraction of interactions kept for training")
	implicitCommand.PersistentFlags().Int64("seed", 0, "random seed for the train/test split")
	implicitCommand.PersistentFlags().Int("top-k", 10, "length of recommendation list")
	implicitCommand.PersistentFlags().IntP("jobs", "j", 0, "number of jobs (0 = all cores)")
	implicitCommand.PersistentFlags().Bool("no-progress", false, "disable the progress bar")
	log.AddFlags(implicitCommand.PersistentFlags())
}

var implicitCommand = &cobra.Command{
	Use:   "implicit [popular|random]",
	Short: "Evaluate precision@k of baseline recommenders on implicit feedback.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)
		// load data
		csvFile, _ := cmd.PersistentFlags().GetString("load-csv")
		if csvFile == "" {
			log.Logger().Fatal("no input data, use --load-csv")
		}
		sep, _ := cmd.PersistentFlags().GetString("csv-sep")
		header, _ := cmd.PersistentFlags().GetBool("csv-header")
		ratings, userDict, itemDict, err := dataset.LoadDataFromCSV(csvFile, sep, header)
		if err != nil {
			log.Logger().Fatal("failed to load csv file", zap.Error(err),
				zap.String("csv_file", csvFile))
		}
		log.Logger().Info("load csv file",
			zap.String("csv_file", csvFile),
			zap.Int("n_users", userDict.Count()),
			zap.Int("n_items", itemDict.Count()),
			zap.Int("n_feedback", ratings.NNZ()))
		// split
		trainFraction, _ := cmd.PersistentFlags().GetFloat64("train-fraction")
		seed, _ := cmd.PersistentFlags().GetInt64("seed")
		trainSet, testSet, err := dataset.Split(ratings, trainFraction, seed)
		if err != nil {
			log.Logger().Fatal("failed to split dataset", zap.Error(err))
		}
		log.Logger().Info("split dataset",
			zap.Float64("train_fraction", trainFraction),
			zap.Int("n_train", trainSet.NNZ()),
			zap.Int("n_test", testSet.NNZ()))
		// create model
		jobs, _ := cmd.PersistentFlags().GetInt("jobs")
		var rec model.Recommender
		switch modelName := args[0]; modelName {
		case "popular":
			popular := model.NewPopularity()
			if err = popular.Fit(cmd.Context(), trainSet, jobs); err != nil {
				log.Logger().Fatal("failed to fit model", zap.Error(err))
			}
			rec = popular
		case "random":
			random := model.NewRandom(seed)
			random.Fit(trainSet)
			rec = random
		default:
			log.Logger().Fatal("unknown model", zap.String("name", modelName))
		}
		// evaluate
		topK, _ := cmd.PersistentFlags().GetInt("top-k")
		noProgress, _ := cmd.PersistentFlags().GetBool("no-progress")
		config := eval.NewConfig().
			SetTopK(topK).
			SetJobs(jobs).
			SetShowProgress(!noProgress)
		start := time.Now()
		score, err := eval.PrecisionAtK(context.Background(), rec, trainSet, testSet, config)
		if err != nil {
			log.Logger().Fatal("failed to evaluate model", zap.Error(err))
		}
		elapsed := time.Since(start)
		// render table
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Model", fmt.Sprintf("Precision@%d", topK), "Time"})
		table.Append([]string{
			args[0],
			fmt.Sprintf("%f", score),
			elapsed.String(),
		})
		table.Render()
	},
}

func main() {
	if err := implicitCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
