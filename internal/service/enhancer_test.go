package service_test

import (
	"testing"

	"github.com/Egor213/LogiSense/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestEnhancerService_Enhance(t *testing.T) {
	testCases := []struct {
		name    string
		prompt  string
		context map[string]any
		want    string
		wantErr error
	}{
		{
			name:    "sorted context keys",
			prompt:  "abc",
			context: map[string]any{"b": 1, "a": 2},
			want:    "abc\n\n[context keys: a, b]",
		},
		{
			name:   "nil context",
			prompt: "explain CVE-2024-1234",
			want:   "explain CVE-2024-1234\n\n[context keys: none]",
		},
		{
			name:    "empty context",
			prompt:  "hi",
			context: map[string]any{},
			want:    "hi\n\n[context keys: none]",
		},
		{
			name:    "values are not echoed",
			prompt:  "p",
			context: map[string]any{"token": "secret-value"},
			want:    "p\n\n[context keys: token]",
		},
		{
			name:    "empty prompt",
			prompt:  "",
			context: map[string]any{"a": 1},
			wantErr: service.ErrPromptRequired,
		},
	}

	s := service.NewEnhancerService()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Enhance(tc.prompt, tc.context)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
