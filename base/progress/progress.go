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

// Package progress reports the progress of long-running jobs such as
// model evaluation. Spans are safe for concurrent updates.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

type spanKeyType string

var spanKeyName = spanKeyType(uuid.New().String())

type Status string

const (
	StatusPending  Status = "Pending"
	StatusComplete Status = "Complete"
	StatusRunning  Status = "Running"
	StatusFailed   Status = "Failed"
)

// Tracer collects root spans under a common name.
type Tracer struct {
	name  string
	spans sync.Map
}

func NewTracer(name string) *Tracer {
	return &Tracer{name: name}
}

// Start creates a root span.
func (t *Tracer) Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	span := newSpan(name, total)
	t.spans.Store(name, span)
	return context.WithValue(ctx, spanKeyName, span), span
}

// List returns the progress of all root spans. The progress of a running
// child span is folded into its parent: each parent step expands to the
// child's total.
func (t *Tracer) List() []Progress {
	var progress []Progress
	t.spans.Range(func(_, value interface{}) bool {
		span := value.(*Span)
		p := span.Progress()
		p.Tracer = t.name
		progress = append(progress, p)
		return true
	})
	return progress
}

// Span tracks one job. Count is advanced concurrently by workers.
type Span struct {
	name     string
	total    int
	count    *atomic.Int64
	mu       sync.Mutex
	status   Status
	err      error
	start    time.Time
	finish   time.Time
	children sync.Map
}

func newSpan(name string, total int) *Span {
	return &Span{
		name:   name,
		status: StatusRunning,
		total:  total,
		count:  atomic.NewInt64(0),
		start:  time.Now(),
	}
}

// Add advances the span by n steps.
func (s *Span) Add(n int) {
	s.count.Add(int64(n))
}

// End marks the span complete and saturates its counter.
func (s *Span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning {
		s.status = StatusComplete
		s.count.Store(int64(s.total))
		s.finish = time.Now()
	}
}

// Fail marks the span failed.
func (s *Span) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
	s.finish = time.Now()
}

func (s *Span) Count() int {
	return int(s.count.Load())
}

func (s *Span) Progress() Progress {
	s.mu.Lock()
	status, err := s.status, s.err
	start, finish := s.start, s.finish
	s.mu.Unlock()
	total := s.total
	count := s.Count()
	// fold running children into the parent scale
	s.children.Range(func(_, value interface{}) bool {
		child := value.(*Span)
		p := child.Progress()
		if p.Status == StatusRunning {
			total = s.total * p.Total
			count = s.Count()*p.Total + p.Count
		} else if p.Status == StatusFailed {
			status = StatusFailed
			err = child.err
		}
		return true
	})
	var message string
	if err != nil {
		message = err.Error()
	}
	return Progress{
		Name:       s.name,
		Status:     status,
		Error:      message,
		Count:      count,
		Total:      total,
		StartTime:  start,
		FinishTime: finish,
	}
}

// Start creates a span below the span carried by ctx. If ctx carries no
// span, a detached span is returned.
func Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	childSpan := newSpan(name, total)
	if ctx == nil {
		return nil, childSpan
	}
	span, ok := ctx.Value(spanKeyName).(*Span)
	if !ok {
		return ctx, childSpan
	}
	span.children.Store(name, childSpan)
	return context.WithValue(ctx, spanKeyName, childSpan), childSpan
}

// Fail marks the span carried by ctx as failed.
func Fail(ctx context.Context, err error) {
	if span, ok := ctx.Value(spanKeyName).(*Span); ok {
		span.Fail(err)
	}
}

type Progress struct {
	Tracer     string
	Name       string
	Status     Status
	Error      string
	Count      int
	Total      int
	StartTime  time.Time
	FinishTime time.Time
}
