package service

import (
	"maps"
	"slices"
	"strings"
)

type EnhancerService struct{}

func NewEnhancerService() *EnhancerService {
	return &EnhancerService{}
}

// Enhance appends the names of the context keys to the prompt. Context
// values are never echoed back.
func (s *EnhancerService) Enhance(prompt string, promptContext map[string]any) (string, error) {
	if prompt == "" {
		return "", ErrPromptRequired
	}

	keys := "none"
	if len(promptContext) > 0 {
		keys = strings.Join(slices.Sorted(maps.Keys(promptContext)), ", ")
	}

	return prompt + "\n\n[context keys: " + keys + "]", nil
}
