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

// Package compiler is the public entry point: given an expression AST root
// and a FieldSpace, it walks the tree once and returns the resulting
// fragment sequence plus any diagnostics recorded along the way.
package compiler

import (
	"context"
	"fmt"
	"io"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/malloy-core/cache"
	"github.com/dolthub/malloy-core/sql"
)

// Result is the outcome of one CompileExpression call.
type Result struct {
	Value         sql.ExprValue
	Diagnostics   []sql.Diagnostic
	CorrelationID string
}

// Compiler holds the optional collaborators a single deployment wires in:
// configuration, metrics, a structured logger, and a compile-result cache.
// The zero value is a usable compiler with every collaborator disabled.
type Compiler struct {
	Config  *Config
	Metrics *Metrics
	Log     *logrus.Logger
	Cache   *cache.Store
}

// New builds a Compiler. Any argument may be nil/zero to disable that
// collaborator; cfg defaults to DefaultConfig when nil.
func New(cfg *Config, metrics *Metrics, log *logrus.Logger, store *cache.Store) *Compiler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Compiler{Config: cfg, Metrics: metrics, Log: log, Cache: store}
}

// CompileExpression walks root once under fs and returns its translated
// value and every diagnostic recorded along the way. fieldSpaceVersion
// identifies the FieldSpace's current generation for cache-key purposes; an
// empty string with a non-nil Cache still works (the cache simply won't
// distinguish FieldSpace revisions) but a real caller should pass something
// that changes when fs's shape does.
func (c *Compiler) CompileExpression(ctx context.Context, root sql.Node, fs sql.FieldSpace, fieldSpaceVersion string) (*Result, error) {
	correlationID := uuid.NewV4().String()

	span, ctx := opentracing.StartSpanFromContext(ctx, "compiler.CompileExpression")
	defer span.Finish()
	span.SetTag("correlation_id", correlationID)

	entry := c.logEntry(correlationID)
	start := time.Now()

	if c.Cache != nil && root != nil {
		key, err := cache.Key(cache.Identity{
			ASTFingerprint:    fmt.Sprintf("%p", root),
			FieldSpaceVersion: fieldSpaceVersion,
		})
		if err == nil {
			if cached, ok, err := c.Cache.Get(key); err == nil && ok {
				entry.Info("compile cache hit")
				return &Result{Value: cached.Value, Diagnostics: cached.Diagnostics, CorrelationID: correlationID}, nil
			}
		}

		result, err := c.compileUncached(fs, root)
		c.Metrics.observeCompile(time.Since(start).Seconds())
		entry.WithField("diagnostics", len(result.Diagnostics)).Info("compile complete")
		if err == nil {
			if key, keyErr := cache.Key(cache.Identity{
				ASTFingerprint:    fmt.Sprintf("%p", root),
				FieldSpaceVersion: fieldSpaceVersion,
			}); keyErr == nil {
				_ = c.Cache.Put(key, cache.Entry{Value: result.Value, Diagnostics: result.Diagnostics})
			}
		}
		result.CorrelationID = correlationID
		return result, err
	}

	result, err := c.compileUncached(fs, root)
	c.Metrics.observeCompile(time.Since(start).Seconds())
	entry.WithField("diagnostics", len(result.Diagnostics)).Info("compile complete")
	result.CorrelationID = correlationID
	return result, err
}

func (c *Compiler) compileUncached(fs sql.FieldSpace, root sql.Node) (*Result, error) {
	var log *logrus.Entry
	if c.Log != nil {
		log = logrus.NewEntry(c.Log)
	}
	sink := sql.NewSink(log)
	if c.Config != nil {
		sink.SetStrictAggregateSources(c.Config.StrictAggregateSources)
	}

	if root == nil {
		return &Result{Value: sql.ErrorFor("no expression"), Diagnostics: sink.Diagnostics()}, nil
	}

	value, ok := root.Translate(fs, sink)
	if !ok {
		sink.Log(root.Location(), sql.ErrPartialExpressionAsValue.New(root.ElementType()).Error())
		value = sql.ErrorFor("partial expression used as value")
	}

	value.Value = sql.Compress(value.Value)

	for _, d := range sink.Diagnostics() {
		c.Metrics.observeDiagnostic(sql.ClassifyDiagnostic(d.Message))
	}

	return &Result{Value: value, Diagnostics: sink.Diagnostics()}, nil
}

func (c *Compiler) logEntry(correlationID string) *logrus.Entry {
	if c.Log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		return logrus.NewEntry(discard)
	}
	return c.Log.WithField("correlation_id", correlationID)
}

// CompileExpression is a convenience wrapper for callers that don't need a
// configured Compiler: it uses default configuration with metrics, logging,
// and caching disabled.
func CompileExpression(ctx context.Context, root sql.Node, fs sql.FieldSpace) (*Result, error) {
	return New(nil, nil, nil, nil).CompileExpression(ctx, root, fs, "")
}
