package tool

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakkenlabs/toolgate/schema"
)

type echoInput struct {
	Text string `json:"text"`
}

func newEchoTool() *Base[echoInput] {
	params := ObjectSchema(map[string]*Schema{
		"text": {Type: TypeString, Description: "text to echo back"},
	}, "text")
	return NewBase("echo", "Echoes the given text", params,
		func(ctx context.Context, req *echoInput) (schema.ToolOutput, error) {
			return schema.Success(req.Text, nil), nil
		})
}

func TestBase_Identity(t *testing.T) {
	b := newEchoTool()

	assert.Equal(t, "echo", b.Name())
	assert.Equal(t, "Echoes the given text", b.Description())

	decl := b.Declaration()
	assert.Equal(t, "echo", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, []string{"text"}, decl.Parameters.Required)
}

func TestBase_InputModelReturnsFreshPointer(t *testing.T) {
	b := newEchoTool()

	first := b.InputModel()
	second := b.InputModel()

	require.IsType(t, &echoInput{}, first)
	assert.NotSame(t, first, second, "each call must allocate a new input")
}

func TestBase_ExecuteWithTypedInput(t *testing.T) {
	b := newEchoTool()

	out, err := b.Execute(context.Background(), &echoInput{Text: "hello"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "hello", out.Message)
}

func TestBase_ExecuteWithWrongTypeFailsInBand(t *testing.T) {
	b := newEchoTool()

	out, err := b.Execute(context.Background(), "not a struct")

	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "unexpected type")
}

func TestBase_StatusDefaultsEmptyAndIsConcurrencySafe(t *testing.T) {
	b := newEchoTool()
	assert.Empty(t, b.Status())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.SetStatus("working")
			_ = b.Status()
		}()
	}
	wg.Wait()

	assert.Equal(t, "working", b.Status())
}

func TestBase_SatisfiesToolAndRegistryFlow(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newEchoTool()))

	out, err := r.Run(context.Background(), "echo", map[string]any{"text": "roundtrip"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "roundtrip", out.Message)
}
