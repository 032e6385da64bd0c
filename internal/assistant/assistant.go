// Package assistant wraps the generative model behind the "Dhara" stylist and the
// admin's product copywriter. Neither path ever returns an error to its caller.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const (
	FallbackDescription = "An exquisite addition to your exclusive collection."
	FallbackAdvice      = "I am experiencing difficulty connecting to our fashion network."
	EmptyAdvice         = "I apologize, my stylistic processing is currently unavailable."

	stylistInstruction = "You are Dhara, a world-class luxury fashion stylist and shopping assistant for Fashion Dhara boutique. " +
		"Your tone is sophisticated, premium, and helpful. You recommend high-quality pieces that elevate the user's lifestyle. " +
		"Focus on elegance and exclusivity."
	stylistTemperature = 0.7
)

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Advice struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

type GenerateRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       *float64
}

type GenerateResponse struct {
	Text    string
	Sources []Source
}

// Client is a text generation backend.
type Client interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

type Assistant struct {
	client Client
}

func New(client Client) *Assistant {
	return &Assistant{client: client}
}

// Generate writes a two-sentence product description, or the fallback line.
func (a *Assistant) Generate(ctx context.Context, name, category string) string {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "assistant"),
		zap.String("method", "Generate"),
	)

	prompt := fmt.Sprintf(
		"Generate a sophisticated, 2-sentence luxury marketing description for a boutique product named %q in the %q category. "+
			"Use words like exquisite, premium, and artisanal.",
		name, category,
	)
	res, err := a.client.GenerateContent(ctx, GenerateRequest{Prompt: prompt})
	if err != nil {
		log.Warn("description generation failed", zap.Error(err))
		return FallbackDescription
	}
	if text := strings.TrimSpace(res.Text); text != "" {
		return text
	}
	return FallbackDescription
}

// Ask answers a shopper's question with the catalog in view.
func (a *Assistant) Ask(ctx context.Context, message, catalogContext string) Advice {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "assistant"),
		zap.String("method", "Ask"),
	)

	temp := stylistTemperature
	res, err := a.client.GenerateContent(ctx, GenerateRequest{
		Prompt: fmt.Sprintf(
			"User is shopping on Fashion Dhara. Current luxury catalog focus: %s. User asks: %s",
			catalogContext, message,
		),
		SystemInstruction: stylistInstruction,
		Temperature:       &temp,
	})
	if err != nil {
		log.Warn("shopping advice failed", zap.Error(err))
		return Advice{Text: FallbackAdvice}
	}
	if strings.TrimSpace(res.Text) == "" {
		return Advice{Text: EmptyAdvice}
	}
	return Advice{Text: res.Text, Sources: res.Sources}
}
