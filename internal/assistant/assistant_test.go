package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GenerateContent(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(GenerateResponse), args.Error(1)
}

func TestAssistant_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("model text", func(t *testing.T) {
		client := new(MockClient)
		client.On("GenerateContent", ctx, mock.MatchedBy(func(r GenerateRequest) bool {
			return r.SystemInstruction == "" && r.Temperature == nil &&
				containsAll(r.Prompt, `"Silk Scarf"`, `"Apparel"`, "2-sentence")
		})).Return(GenerateResponse{Text: "  Exquisite silk.  "}, nil)

		assert.Equal(t, "Exquisite silk.", New(client).Generate(ctx, "Silk Scarf", "Apparel"))
		client.AssertExpectations(t)
	})

	t.Run("failure falls back", func(t *testing.T) {
		client := new(MockClient)
		client.On("GenerateContent", ctx, mock.Anything).Return(GenerateResponse{}, errors.New("quota"))
		assert.Equal(t, FallbackDescription, New(client).Generate(ctx, "Silk Scarf", "Apparel"))
	})

	t.Run("empty answer falls back", func(t *testing.T) {
		assert.Equal(t, FallbackDescription, New(StaticClient{}).Generate(ctx, "Silk Scarf", "Apparel"))
	})
}

func TestAssistant_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("answer with sources", func(t *testing.T) {
		client := new(MockClient)
		client.On("GenerateContent", ctx, mock.MatchedBy(func(r GenerateRequest) bool {
			return r.SystemInstruction == stylistInstruction &&
				r.Temperature != nil && *r.Temperature == 0.7 &&
				containsAll(r.Prompt, "catalog focus: Aether Pods Pro", "User asks: what pairs with it?")
		})).Return(GenerateResponse{
			Text:    "Pair it with the Terra wallet.",
			Sources: []Source{{Title: "Vogue", URI: "https://vogue.example"}},
		}, nil)

		advice := New(client).Ask(ctx, "what pairs with it?", "Aether Pods Pro")
		assert.Equal(t, "Pair it with the Terra wallet.", advice.Text)
		assert.Len(t, advice.Sources, 1)
	})

	t.Run("failure", func(t *testing.T) {
		advice := New(StaticClient{Err: ErrNotConfigured}).Ask(ctx, "hi", "")
		assert.Equal(t, Advice{Text: FallbackAdvice}, advice)
	})

	t.Run("blank answer", func(t *testing.T) {
		advice := New(StaticClient{Text: " "}).Ask(ctx, "hi", "")
		assert.Equal(t, Advice{Text: EmptyAdvice}, advice)
	})
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
