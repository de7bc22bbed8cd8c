// Package similarity defines the pluggable text similarity model used by the
// scoring engine. Implementations must be deterministic for the same input.
package similarity

import (
	"context"
	"regexp"
	"strings"
)

// Model scores how close two text fragments are, in [0,1].
type Model interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
	Name() string
}

var tokenRe = regexp.MustCompile(`[a-z0-9+#.]+`)

func tokenize(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}

// Lexical is the default model: token-overlap with substring containment.
// It needs no external service and is fully deterministic, which also makes
// it the model of choice in tests.
type Lexical struct{}

func (Lexical) Name() string { return "lexical" }

func (Lexical) Similarity(_ context.Context, a, b string) (float64, error) {
	na := strings.Join(tokenize(a), " ")
	nb := strings.Join(tokenize(b), " ")
	if na == "" || nb == "" {
		return 0, nil
	}
	if na == nb {
		return 1.0, nil
	}
	// One phrase contained in the other counts as a near match ("Go" inside
	// "Golang backend" style hits).
	if strings.Contains(" "+nb+" ", " "+na+" ") || strings.Contains(" "+na+" ", " "+nb+" ") {
		return 0.8, nil
	}
	return jaccard(tokenize(a), tokenize(b)), nil
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	inter := 0
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		}
	}
	union := len(set) + len(seen) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
