package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestBuildResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "analysis text"}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 45,
			TotalTokenCount:      165,
		},
	}

	out := buildResponse(resp)
	assert.Equal(t, "analysis text", out.Content)
	assert.Equal(t, 120, out.PromptTokens)
	assert.Equal(t, 45, out.CompletionTokens)
	assert.Equal(t, 165, out.TotalTokens)
}

func TestBuildResponseWithoutUsageMetadata(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "partial"}}},
		}},
	}

	out := buildResponse(resp)
	assert.Equal(t, "partial", out.Content)
	assert.Zero(t, out.PromptTokens)
	assert.Zero(t, out.TotalTokens)
}

func TestBuildResponseEmptyCandidates(t *testing.T) {
	out := buildResponse(&genai.GenerateContentResponse{})
	assert.Empty(t, out.Content)
}
