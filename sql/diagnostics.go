// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// SourceLocation points a diagnostic back at the parser's input. The core
// never interprets these fields; it only carries them.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	if l.File == "" && l.Line == 0 && l.Column == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one recoverable, user-facing message attached to a source
// location. Diagnostics never abort translation of siblings.
type Diagnostic struct {
	Location SourceLocation
	Message  string
}

// Sink collects diagnostics during one compileExpression walk. A Sink must
// not be shared between concurrent compilations — spec.md §5 requires each
// compilation to own its sink.
type Sink struct {
	mu                     sync.Mutex
	diags                  []Diagnostic
	log                    *logrus.Entry
	strictAggregateSources bool
}

// NewSink creates an empty Sink. log may be nil, in which case diagnostics
// are recorded but never logged.
func NewSink(log *logrus.Entry) *Sink {
	return &Sink{log: log}
}

// SetStrictAggregateSources toggles the one behavior
// compiler.Config.StrictAggregateSources documents: an additional
// warning-level log line, on top of the diagnosable error that fires
// regardless, when an aggregate's source resolves to a struct.
func (s *Sink) SetStrictAggregateSources(strict bool) {
	s.strictAggregateSources = strict
}

// WarnAggregateSourceIsStruct logs a warning-level entry if strict
// aggregate-source checking is enabled and this Sink has a logger. It
// never records a Diagnostic of its own — the diagnosable
// ErrAggregateMisuse is always logged separately via Log, independent of
// this setting.
func (s *Sink) WarnAggregateSourceIsStruct(loc SourceLocation, source string) {
	if !s.strictAggregateSources || s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"location": loc.String(),
		"source":   source,
	}).Warn("aggregate source resolves to a struct")
}

// Log records a diagnostic against loc. It is the sole way user-level
// errors are reported; it never panics and never returns an error.
func (s *Sink) Log(loc SourceLocation, message string) {
	s.mu.Lock()
	s.diags = append(s.diags, Diagnostic{Location: loc, Message: message})
	s.mu.Unlock()

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"location": loc.String(),
		}).Debug(message)
	}
}

// Diagnostics returns all diagnostics recorded so far, in recording order.
func (s *Sink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.diags) == 0
}

// Err folds every recorded diagnostic into a single error via
// hashicorp/go-multierror, for callers that want one error value instead
// of walking the diagnostic list themselves. It returns nil when the sink
// is empty.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.diags) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, d := range s.diags {
		result = multierror.Append(result, fmt.Errorf("%s: %s", d.Location, d.Message))
	}
	return result.ErrorOrNil()
}
