package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"
)

const defaultEmbeddingModel = "text-embedding-004"

// Gemini backs the similarity model with Google GenAI embeddings. Cosine of
// the two embedding vectors, clamped to [0,1].
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.modelName }

func (g *Gemini) Similarity(ctx context.Context, a, b string) (float64, error) {
	if g == nil || g.client == nil {
		return 0, errors.New("gemini model is not initialized")
	}
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(a, genai.RoleUser),
		genai.NewContentFromText(b, genai.RoleUser),
	}
	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) < 2 {
		return 0, errors.New("gemini api returned incomplete embeddings")
	}

	sim := cosine(resp.Embeddings[0].Values, resp.Embeddings[1].Values)
	return math.Max(0, math.Min(1, sim)), nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
