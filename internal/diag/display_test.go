package diag

import (
	"testing"

	"github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeDisplay(t *testing.T) *display.Display {
	t.Helper()
	d, err := display.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
	require.NoError(t, err)
	require.NoError(t, d.Init())
	return d
}

func TestDisplaySinkKeepsRecentLines(t *testing.T) {
	sink := Display(newFakeDisplay(t))
	w := sink.Writer.(*displayWriter)

	stream := NewStream(sink)
	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, stream.Println(msg))
	}

	assert.Equal(t, "display", sink.Name)
	assert.Equal(t, []string{"two", "three", "four", "five"}, w.shown())
	require.NoError(t, stream.Close())
}

func TestDisplaySinkHoldsPartialLine(t *testing.T) {
	sink := Display(newFakeDisplay(t))
	w := sink.Writer.(*displayWriter)

	n, err := w.Write([]byte("Error not "))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Empty(t, w.shown())

	_, err = w.Write([]byte("tagged! Code: 9\r\nnext"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Error not tagged! Code: 9"}, w.shown())
}

func TestOpenDisplayDryRun(t *testing.T) {
	sink, err := OpenDisplay(true)
	require.NoError(t, err)

	_, err = sink.Writer.Write([]byte("Invalid pattern string!\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid pattern string!"}, sink.Writer.(*displayWriter).shown())
	assert.NoError(t, sink.Closer.Close())
}
