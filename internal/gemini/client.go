package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	genai "google.golang.org/genai"
)

// Invoker is the gateway contract the controller and the proxy handler
// consume: one task in, text or image data out, typed errors on failure.
type Invoker interface {
	Invoke(ctx context.Context, task Task, p Payload) (*Result, error)
}

// Client wraps the official genai client. It focuses on the API call itself;
// entitlement checks and state merging are the controller's concern.
type Client struct {
	cli *genai.Client
	log zerolog.Logger
}

// NewClient builds a gateway client. The key is required: the server never
// starts without its secret.
func NewClient(ctx context.Context, apiKey string, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{cli: cli, log: log}, nil
}

// Invoke dispatches one task. Model selection follows Task.Model; image
// tasks return base64 data, everything else returns the model's text.
func (c *Client) Invoke(ctx context.Context, task Task, p Payload) (*Result, error) {
	if !task.Valid() {
		return nil, &TransportError{Err: fmt.Errorf("unknown task %q", task)}
	}
	model := task.Model()
	c.log.Info().Str("task", string(task)).Str("model", model).Int("prompt_bytes", len(p.Prompt)).Msg("gateway call")

	if task == TaskGenerateImage {
		return c.generateImage(ctx, model, p)
	}
	return c.generateText(ctx, task, model, p)
}

func (c *Client) generateText(ctx context.Context, task Task, model string, p Payload) (*Result, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: p.Prompt}}}},
		p.Config,
	)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Candidates) == 0 {
		return nil, blockedFrom(task, resp)
	}
	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}
	return &Result{Text: text}, nil
}

func (c *Client) generateImage(ctx context.Context, model string, p Payload) (*Result, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: p.Prompt}}}},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE"}},
	)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Candidates) == 0 {
		return nil, blockedFrom(TaskGenerateImage, resp)
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil, ErrNoContent
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &Result{ImageData: base64.StdEncoding.EncodeToString(part.InlineData.Data)}, nil
		}
	}
	return nil, ErrNoContent
}

func firstText(resp *genai.GenerateContentResponse) string {
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// blockedFrom builds a BlockedError from prompt feedback when the response
// carries no candidates.
func blockedFrom(task Task, resp *genai.GenerateContentResponse) error {
	be := &BlockedError{Task: task}
	if fb := resp.PromptFeedback; fb != nil {
		be.Reason = string(fb.BlockReason)
		ratings := make([]string, 0, len(fb.SafetyRatings))
		for _, r := range fb.SafetyRatings {
			if r != nil {
				ratings = append(ratings, fmt.Sprintf("%s: %s", r.Category, r.Probability))
			}
		}
		be.Ratings = strings.Join(ratings, ", ")
	}
	return be
}
