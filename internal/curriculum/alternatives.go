// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curriculum

import (
	"context"
	"fmt"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// Alternative is a preset variation of a request.
type Alternative struct {
	Name        string
	TitlePrefix string
	Platforms   []string
	Budget      float64
	PreferFree  bool
}

// Alternatives lists the presets GenerateAlternatives runs, in order.
var Alternatives = []Alternative{
	{Name: "free", TitlePrefix: "Free Learning Path: ", Platforms: []string{"YouTube", "Coursera"}, Budget: 0, PreferFree: true},
	{Name: "premium", TitlePrefix: "Premium Learning Path: ", Platforms: []string{"Udemy", "Pluralsight", "Coursera"}, Budget: 500},
	{Name: "balanced", TitlePrefix: "Balanced Learning Path: ", Platforms: []string{"YouTube", "Udemy", "edX"}, Budget: 100},
}

// Apply returns a copy of req with the preset's platforms and budget.
func (a Alternative) Apply(req Request) Request {
	req.PreferredPlatforms = append([]string(nil), a.Platforms...)
	req.MaxBudget = a.Budget
	req.PreferFree = a.PreferFree
	return req
}

// GenerateAlternatives builds one path per preset in Alternatives. The
// request's own budget and platforms are replaced by each preset's; its
// skill goal and level must still be valid. Generation stops at the first
// error, returning the paths built so far.
func (g *Generator) GenerateAlternatives(ctx context.Context, req Request) ([]*types.LearningPath, error) {
	var out []*types.LearningPath
	for _, alt := range Alternatives {
		p, err := g.generate(ctx, alt.Apply(req), alt.TitlePrefix, alt.Name)
		if p != nil {
			out = append(out, p)
		}
		if err != nil {
			return out, fmt.Errorf("%s alternative: %w", alt.Name, err)
		}
	}
	return out, nil
}
