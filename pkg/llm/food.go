package llm

import (
	"Foodnote/config"
	"Foodnote/pkg/log"
	"Foodnote/pkg/utils"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const FoodPrompt = "What food is in this image? Respond with ONLY the name of the food, nothing else. Be concise (2-4 words maximum)."

const (
	maxAttempts  = 3
	maxTokens    = 50
	maxImageDim  = 512
	imageQuality = 60
)

var (
	ErrRateLimited   = errors.New("food identification rate limited")
	ErrRequestFailed = errors.New("food identification request failed")
	ErrParseFailed   = errors.New("food identification response unreadable")
)

// IdentificationError Kind 为上面三个哨兵错误之一
type IdentificationError struct {
	Kind     error
	Attempts int
	Err      error
}

func (e *IdentificationError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *IdentificationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

var identifyAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodnote_food_identify_attempts_total",
		Help: "Vision model calls made for food identification",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(identifyAttempts)
}

// FoodClient 通过 OpenAI 兼容的视觉模型识别菜名，只在 429 时重试
type FoodClient struct {
	client  openai.Client
	model   string
	enabled bool
	backoff func(attempt int) time.Duration
}

func NewFoodClient(conf *config.OpenAIConfig) *FoodClient {
	client := openai.NewClient(
		option.WithAPIKey(conf.APIKey),
		option.WithBaseURL(conf.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: conf.Timeout}),
		// 重试策略自己控制
		option.WithMaxRetries(0),
	)
	return &FoodClient{
		client:  client,
		model:   conf.Model,
		enabled: conf.APIKey != "",
		backoff: LinearBackoff(2 * time.Second),
	}
}

// LinearBackoff 第 n 次失败后等待 n*step
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// WithBackoff 替换退避策略
func (c *FoodClient) WithBackoff(fn func(int) time.Duration) *FoodClient {
	c.backoff = fn
	return c
}

func (c *FoodClient) Enabled() bool {
	return c.enabled
}

// Identify 返回去掉首尾空白的菜名
func (c *FoodClient) Identify(ctx context.Context, image []byte) (string, error) {
	if !c.enabled {
		return "", &IdentificationError{Kind: ErrRequestFailed, Err: errors.New("api key not configured")}
	}

	small, err := utils.ResizeJPEG(image, maxImageDim, imageQuality)
	if err != nil {
		return "", &IdentificationError{Kind: ErrRequestFailed, Err: fmt.Errorf("prepare image: %w", err)}
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(small)

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Text: FoodPrompt,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				},
			},
		},
	}
	userMessage := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfArrayOfContentParts: contentParts,
		},
	}
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfUser: &userMessage},
		},
		MaxTokens: openai.Int(maxTokens),
	}

	for attempt := 1; ; attempt++ {
		startTime := time.Now()
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			var apiErr *openai.Error
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
				identifyAttempts.WithLabelValues("rate_limited").Inc()
				if attempt >= maxAttempts {
					return "", &IdentificationError{Kind: ErrRateLimited, Attempts: attempt, Err: err}
				}
				wait := c.backoff(attempt)
				log.L.Warn("food identification rate limited, retrying",
					zap.Int("attempt", attempt), zap.Duration("wait", wait))
				if err := sleep(ctx, wait); err != nil {
					return "", &IdentificationError{Kind: ErrRequestFailed, Attempts: attempt, Err: err}
				}
				continue
			}
			identifyAttempts.WithLabelValues("failed").Inc()
			return "", &IdentificationError{Kind: ErrRequestFailed, Attempts: attempt, Err: err}
		}

		if len(completion.Choices) == 0 {
			identifyAttempts.WithLabelValues("unparseable").Inc()
			return "", &IdentificationError{Kind: ErrParseFailed, Attempts: attempt, Err: errors.New("no choices")}
		}
		name := strings.TrimSpace(completion.Choices[0].Message.Content)
		if name == "" {
			identifyAttempts.WithLabelValues("unparseable").Inc()
			return "", &IdentificationError{Kind: ErrParseFailed, Attempts: attempt, Err: errors.New("empty content")}
		}
		identifyAttempts.WithLabelValues("ok").Inc()
		log.L.Info("food identified", zap.String("name", name), zap.Duration("cost", time.Since(startTime)))
		return name, nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
