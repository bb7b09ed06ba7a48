package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterSegments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatSegments(&buf, sampleSegments()))

	var got []map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "event", got[0]["type"])
	assert.Equal(t, "A", got[0]["event_id"])
	assert.NotContains(t, got[1], "collapsed")

	collapsed, ok := got[2]["collapsed"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gap-30-80", collapsed["id"])
	assert.Equal(t, true, collapsed["is_collapsed"])
}

func TestJSONFormatterEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatSegments(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, NewJSONFormatter().FormatLayout(&buf, model.Layout{}))

	var got map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []interface{}{}, got["events"])
	assert.Equal(t, []interface{}{}, got["markers"])
	assert.Equal(t, []interface{}{}, got["ticks"])
}

func TestJSONFormatterLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatLayout(&buf, sampleLayout()))

	var got model.Layout
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleLayout(), got)
	assert.Contains(t, buf.String(), "\n  \"viewport\"")
}
