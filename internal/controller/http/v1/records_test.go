package httpv1

import (
	"encoding/json"
	"testing"

	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBatch_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "empty body", body: "", wantErr: domain.ErrInputMissing},
		{name: "whitespace only", body: " \n\t", wantErr: domain.ErrInputMissing},
		{name: "null", body: "null", wantErr: domain.ErrInputMissing},
		{name: "empty array", body: "[]", wantErr: domain.ErrInputMissing},
		{name: "empty object", body: "{}", wantErr: domain.ErrInputMissing},
		{name: "single object", body: `{"level":"INFO"}`, wantErr: domain.ErrDataFormat},
		{name: "array of numbers", body: `[1, 2]`, wantErr: domain.ErrDataFormat},
		{name: "mixed array", body: `[{"a":1}, "x"]`, wantErr: domain.ErrDataFormat},
		{name: "string", body: `"logs"`, wantErr: domain.ErrDataFormat},
		{name: "malformed", body: `not json`, wantErr: domain.ErrDataFormat},
		{name: "truncated", body: `[{"a":`, wantErr: domain.ErrDataFormat},
		{name: "not a number", body: `[{"a":NaN}]`, wantErr: domain.ErrDataFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeBatch([]byte(tc.body))

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeBatch_KeepsOrderAndTypes(t *testing.T) {
	body := `[{"z":1.5,"a":"x\"y","m":null,"n":{"k":[1,2]},"b":true},{"only":-3}]`

	got, err := decodeBatch([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, []string{"z", "a", "m", "n", "b"}, first.Keys())

	v, _ := first.Get("z")
	assert.Equal(t, json.Number("1.5"), v)
	v, _ = first.Get("a")
	assert.Equal(t, `x"y`, v)
	v, ok := first.Get("m")
	assert.True(t, ok)
	assert.Nil(t, v)
	v, _ = first.Get("n")
	assert.Equal(t, json.RawMessage(`{"k":[1,2]}`), v)
	v, _ = first.Get("b")
	assert.Equal(t, true, v)

	out, err := json.Marshal(got[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"only":-3}`, string(out))
}

func TestDecodeBatch_RoundTripKeepsFieldOrder(t *testing.T) {
	body := `[{"timestamp":"2024-01-15T10:00:00","service":"auth","latency_ms":20}]`

	got, err := decodeBatch([]byte(body))
	require.NoError(t, err)

	out, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Equal(t, `{"timestamp":"2024-01-15T10:00:00","service":"auth","latency_ms":20}`, string(out))
}
