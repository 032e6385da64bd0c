package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
)

// GenAIClient calls the Generative Language REST API's generateContent method.
type GenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGenAIClient(apiKey, model, baseURL string) *GenAIClient {
	if apiKey == "" {
		logger.L().Warn("GenAI API key is empty")
	}
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type genaiPart struct {
	Text string `json:"text"`
}

type genaiContent struct {
	Role  string      `json:"role,omitempty"`
	Parts []genaiPart `json:"parts"`
}

type genaiConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type genaiRequest struct {
	Contents          []genaiContent `json:"contents"`
	SystemInstruction *genaiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  *genaiConfig   `json:"generationConfig,omitempty"`
}

type genaiResponse struct {
	Candidates []struct {
		Content           genaiContent `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

func (c *GenAIClient) GenerateContent(ctx context.Context, in GenerateRequest) (GenerateResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "genai"),
		zap.String("model", c.model),
	)

	body := genaiRequest{
		Contents: []genaiContent{{Role: "user", Parts: []genaiPart{{Text: in.Prompt}}}},
	}
	if in.SystemInstruction != "" {
		body.SystemInstruction = &genaiContent{Parts: []genaiPart{{Text: in.SystemInstruction}}}
	}
	if in.Temperature != nil {
		body.GenerationConfig = &genaiConfig{Temperature: in.Temperature}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return GenerateResponse{}, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return GenerateResponse{}, err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("genai request failed", zap.Error(err))
		return GenerateResponse{}, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("failed to read genai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("genai returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return GenerateResponse{}, fmt.Errorf("genai error: status %d", resp.StatusCode)
	}

	var res genaiResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding genai response", zap.Error(err))
		return GenerateResponse{}, err
	}

	var out GenerateResponse
	if len(res.Candidates) == 0 {
		return out, nil
	}
	first := res.Candidates[0]
	var text strings.Builder
	for _, p := range first.Content.Parts {
		text.WriteString(p.Text)
	}
	out.Text = text.String()
	for _, chunk := range first.GroundingMetadata.GroundingChunks {
		if chunk.Web.URI != "" {
			out.Sources = append(out.Sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return out, nil
}
