package service

import (
	"Foodnote/config"
	"Foodnote/pkg/llm"
	"context"
)

// FoodIdentifier 根据照片识别菜名
type FoodIdentifier interface {
	Identify(ctx context.Context, image []byte) (string, error)
}

var _ FoodIdentifier = (*llm.FoodClient)(nil)

func NewFoodIdentifier(conf *config.OpenAIConfig) FoodIdentifier {
	return llm.NewFoodClient(conf)
}
