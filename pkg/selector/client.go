package selector

import (
	"context"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/pkg/errors"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-5.1"

// RequestTimeout bounds a single completion request.
const RequestTimeout = 120 * time.Second

// CompletionClient abstracts the completion service so tests can
// substitute a deterministic stub.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (response string, err error)
}

// OpenAIClient implements CompletionClient via the openai-go SDK,
// requesting JSON-object responses.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient creates a completion client. Extra options (base URL
// overrides and the like) are passed through to the SDK.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) (client *OpenAIClient) {
	if model == "" {
		model = DefaultModel
	}

	allOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(RequestTimeout),
	}
	allOpts = append(allOpts, opts...)

	client = &OpenAIClient{
		model: model,
		opts:  allOpts,
	}
	return client
}

// Complete sends one synchronous chat-completion request.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (response string, err error) {
	sdk := openai.NewClient(c.opts...)

	var resp *openai.ChatCompletion
	resp, err = sdk.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		err = errors.Wrapf(ErrSelectionFailed, "completion request: %v", err)
		return response, err
	}

	if len(resp.Choices) == 0 {
		err = errors.Wrap(ErrSelectionFailed, "no choices in completion response")
		return response, err
	}

	response = resp.Choices[0].Message.Content
	return response, err
}
