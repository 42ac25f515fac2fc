package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tailord/backend/internal/domain"
)

const summarySystemPrompt = `You are a concise fashion shopping assistant.
Given a search query and a list of products, write a 1-2 sentence summary
highlighting the best matches and the price range. Plain text only.`

const blurbSystemPrompt = `You are a concise fashion copywriter. For each
product line, write one short blurb (max 12 words) selling the item to
someone who searched the given query. Respond with a JSON object mapping
product id to blurb, nothing else.`

// OpenAI is the expensive generative summary path. Every call carries a
// bounded timeout; callers fall back to the Simple summarizer on any error.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates the generative summarizer.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenAI{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Summarize asks the model for a short overview of the result set.
func (o *OpenAI) Summarize(ctx context.Context, results []domain.RankedResult, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Query: %s\n\nProducts:\n%s", query, formatResults(results))},
		},
		MaxTokens: 120,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrSummaryFailure)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ItemBlurbs asks the model for one blurb per item, keyed by product id.
func (o *OpenAI) ItemBlurbs(ctx context.Context, results []domain.RankedResult, query string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: blurbSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Query: %s\n\nProducts:\n%s", query, formatResults(results))},
		},
		MaxTokens: 400,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSummaryFailure, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrSummaryFailure)
	}

	var blurbs map[string]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &blurbs); err != nil {
		return nil, fmt.Errorf("%w: invalid blurb payload: %v", domain.ErrSummaryFailure, err)
	}

	return blurbs, nil
}

func formatResults(results []domain.RankedResult) string {
	var b strings.Builder
	for _, result := range results {
		fmt.Fprintf(&b, "- id=%s %s %s $%.0f available=%v tags=%s\n",
			result.ID, result.Brand, result.Title, result.Price,
			result.Available, strings.Join(result.Tags, ","))
	}
	return b.String()
}
