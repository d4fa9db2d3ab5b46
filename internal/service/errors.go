package service

import "errors"

var (
	ErrHistoryDisabled = errors.New("analysis history is not configured")
	ErrPromptRequired  = errors.New("Prompt is required")
	ErrLabelMismatch   = errors.New("model returned a label count different from the batch size")
)
