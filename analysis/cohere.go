package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// DefaultCohereModel is used when no model is configured.
const DefaultCohereModel = "command-r-plus"

// CohereGenerator implements Generator using the Cohere Chat API
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator constructs a Cohere-backed generator.
func NewCohereGenerator(apiKey, model string, httpClient *http.Client) *CohereGenerator {
	if strings.TrimSpace(model) == "" {
		model = DefaultCohereModel
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}
}

func (c *CohereGenerator) Model() string { return c.model }

// Generate sends prompt as one non-streamed chat message.
func (c *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.model
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}
