package assistant

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("assistant: no model configured")

// StaticClient answers every prompt with the same text, or fails with Err.
// It stands in for the model when no API key is configured.
type StaticClient struct {
	Text string
	Err  error
}

func (c StaticClient) GenerateContent(context.Context, GenerateRequest) (GenerateResponse, error) {
	if c.Err != nil {
		return GenerateResponse{}, c.Err
	}
	return GenerateResponse{Text: c.Text}, nil
}
