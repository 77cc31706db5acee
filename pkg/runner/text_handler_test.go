package runner

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyflow/surveyflow/pkg/domain"
)

func newBlockingReader() (*io.PipeReader, *io.PipeWriter) {
	return io.Pipe()
}

func TestTextHandler_Output(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(bytes.NewReader(nil), out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	err := h.Output(context.Background(), Event{Type: EventQuestion, Prompt: &Prompt{
		Kind:     domain.KindMultiQueue,
		Text:     "Pick crops",
		Multiple: true,
		Choices:  []Choice{{Key: "a", Label: "Apple"}},
	}})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Rendered: Pick crops")
	assert.Contains(t, s, "(optional, press enter to skip)")
	assert.Contains(t, s, "[a] Apple")
	assert.Contains(t, s, "separated by commas")
	assert.False(t, h.Interactive)
}

func TestInputHint(t *testing.T) {
	tests := []struct {
		name   string
		prompt Prompt
		want   string
	}{
		{"free text", Prompt{Kind: domain.KindFree, InputType: domain.InputText}, ""},
		{"number", Prompt{Kind: domain.KindFree, InputType: domain.InputNumber}, "Expected: number."},
		{"voice", Prompt{Kind: domain.KindVoice, MaxDurationSec: 30}, "Enter the reference of the voice capture. Max 30s."},
		{"camera", Prompt{Kind: domain.KindCamera, MaxCount: 3}, "Enter the reference of the camera capture. Max 3 items."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inputHint(tt.prompt))
		})
	}
}

func TestTextHandler_Input(t *testing.T) {
	h := NewTextHandler(bytes.NewBufferString("first\r\nlast"), io.Discard)
	ctx := context.Background()

	line, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputCancelled(t *testing.T) {
	pr, pw := newBlockingReader()
	defer pw.Close()
	h := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONHandler_Input(t *testing.T) {
	h := NewJSONHandler(bytes.NewBufferString("\"a,b\"\nplain text\n"), io.Discard)
	ctx := context.Background()

	v, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a,b", v)

	v, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "plain text", v)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
