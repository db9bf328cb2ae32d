package uploader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPassesThrough(t *testing.T) {
	ctx := context.Background()

	for _, payload := range []string{"", "https://cdn.example.com/a.png", "data:image/png;base64,aGVsbG8="} {
		url, err := Noop{}.Upload(ctx, "Box Centering", payload)
		require.NoError(t, err)
		assert.Equal(t, payload, url)
	}
}

func TestIsRemoteURL(t *testing.T) {
	assert.True(t, IsRemoteURL("https://cdn.example.com/a.png"))
	assert.True(t, IsRemoteURL("http://cdn.example.com/a.png"))
	assert.False(t, IsRemoteURL("data:image/png;base64,aGVsbG8="))
	assert.False(t, IsRemoteURL(""))
	assert.False(t, IsRemoteURL("aGVsbG8="))
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantData string
		wantType string
		wantExt  string
		wantErr  bool
	}{
		{
			name:     "png data uri",
			payload:  "data:image/png;base64,aGVsbG8=",
			wantData: "hello",
			wantType: "image/png",
			wantExt:  ".png",
		},
		{
			name:     "jpeg data uri",
			payload:  "data:image/jpeg;base64,aGVsbG8=",
			wantData: "hello",
			wantType: "image/jpeg",
			wantExt:  ".jpg",
		},
		{
			name:     "bare base64 defaults to png",
			payload:  "aGVsbG8=",
			wantData: "hello",
			wantType: "image/png",
			wantExt:  ".png",
		},
		{
			name:     "unknown mime falls back to png extension",
			payload:  "data:image/x-icon;base64,aGVsbG8=",
			wantData: "hello",
			wantType: "image/x-icon",
			wantExt:  ".png",
		},
		{
			name:    "data uri without comma",
			payload: "data:image/png;base64",
			wantErr: true,
		},
		{
			name:    "invalid base64",
			payload: "not base64 at all!!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, ext, err := decodePayload(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(data))
			assert.Equal(t, tt.wantType, contentType)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}
