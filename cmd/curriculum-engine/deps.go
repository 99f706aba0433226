// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-engine/internal/catalog"
	"github.com/pdiddy/curriculum-engine/internal/curriculum"
	"github.com/pdiddy/curriculum-engine/internal/quality"
	"github.com/pdiddy/curriculum-engine/internal/sentiment"
	"github.com/pdiddy/curriculum-engine/internal/stage"
	"github.com/pdiddy/curriculum-engine/internal/textgen"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// engine bundles the store and generator a command works with.
type engine struct {
	cfg   types.Config
	store *catalog.Store
	gen   *curriculum.Generator

	closers []func() error
}

func (e *engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			log.Warn("closing resource", "error", err)
		}
	}
}

// openEngine opens the catalog store and wires a Generator around it using
// the loaded configuration. The text generator is only configured when an
// API key is available; without one, keywords and descriptions fall back to
// templates.
func openEngine(ctx context.Context) (*engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	e := &engine{cfg: cfg, store: store, closers: []func() error{store.Close}}

	analyzer := sentiment.Default()
	if cfg.Path.LexiconFile != "" {
		lex, err := sentiment.LoadLexicon(cfg.Path.LexiconFile)
		if err != nil {
			e.Close()
			return nil, err
		}
		analyzer = sentiment.NewAnalyzer(lex)
	}

	classifier := stage.Default()
	if cfg.Path.StageRulesFile != "" {
		rules, err := stage.LoadRules(cfg.Path.StageRulesFile)
		if err != nil {
			e.Close()
			return nil, err
		}
		classifier = stage.NewClassifier(rules)
	}

	cache, err := openCache(ctx, cfg.Cache, e)
	if err != nil {
		e.Close()
		return nil, err
	}

	deps := curriculum.Deps{
		Catalog:    store,
		Reviews:    store,
		Lookup:     store,
		Store:      store,
		Analyzer:   analyzer,
		Classifier: classifier,
		Cache:      cache,
		Log:        log,
	}
	model := cfg.TextGen.Model
	if cfg.TextGen.APIKey != "" {
		client := textgen.New(cfg.TextGen)
		deps.Text = client
		model = client.Model()
	} else {
		log.Debug("no text generation key configured, using template keywords and descriptions")
	}

	gen, err := curriculum.New(deps, curriculum.Config{
		Currency:      cfg.Path.Currency,
		MaxPerStep:    cfg.Path.MaxCoursesPerStep,
		Workers:       cfg.Path.Workers,
		MaxCandidates: cfg.Catalog.MaxResults,
		Model:         model,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	e.gen = gen
	return e, nil
}

// openCache builds the quality-score cache named by cfg.Backend.
func openCache(ctx context.Context, cfg types.CacheConfig, e *engine) (quality.Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "memory":
		return quality.NewMemoryCache(cfg.TTL), nil
	case "redis":
		rdb, err := quality.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, rdb.Close)
		log.Debug("using redis quality cache", "addr", cfg.RedisAddr)
		return quality.NewRedisCache(rdb, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: use none, memory or redis", cfg.Backend)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
