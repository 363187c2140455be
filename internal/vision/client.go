// Package vision extracts a grid pattern from a photo using Gemini.
package vision

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	DefaultRegion = "europe-west1"
	DefaultModel  = "gemini-2.5-flash"
)

// Client wraps the Google GenAI client for Vertex AI.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a client using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func NewClient(ctx context.Context, projectID, region, model string) (*Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("gemini project is not configured")
	}
	if region == "" {
		region = DefaultRegion
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, modelName: model}, nil
}

// ExtractGrid sends an image to Gemini and returns the detected pattern.
func (c *Client) ExtractGrid(ctx context.Context, image []byte, mimeType string) (*Extraction, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return ParseExtraction(resp.Text())
}
