package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoutesByType(t *testing.T) {
	in, err := Decode([]byte(`{"type":"message","message":{"id":"m1","conversation_id":"c1","text":"hi"}}`))
	require.NoError(t, err)
	assert.Equal(t, TypeMessage, in.Type)
	require.NotNil(t, in.Message)
	assert.Equal(t, "m1", in.Message.ID)
}

func TestDecodeRejectsMissingType(t *testing.T) {
	_, err := Decode([]byte(`{"message":{"id":"m1"}}`))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	in, err := Decode([]byte(`{"type":"pong","server_time":"2026-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, TypePong, in.Type)
}
