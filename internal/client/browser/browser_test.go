package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemOpener_CommandPerPlatform(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"https://x"}},
		{"freebsd", "xdg-open", []string{"https://x"}},
		{"darwin", "open", []string{"https://x"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var gotName string
			var gotArgs []string
			o := &SystemOpener{GOOS: tt.goos, start: func(_ context.Context, name string, args ...string) error {
				gotName, gotArgs = name, args
				return nil
			}}
			require.NoError(t, o.Open(context.Background(), "https://x"))
			assert.Equal(t, tt.name, gotName)
			assert.Equal(t, tt.args, gotArgs)
		})
	}
}

func TestSystemOpener_StartError(t *testing.T) {
	boom := errors.New("not found")
	o := &SystemOpener{GOOS: "linux", start: func(context.Context, string, ...string) error { return boom }}
	err := o.Open(context.Background(), "https://x")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "xdg-open")
}

func TestPrintOpener(t *testing.T) {
	var got string
	require.NoError(t, PrintOpener{Print: func(u string) { got = u }}.Open(context.Background(), "https://pay"))
	assert.Equal(t, "https://pay", got)
	require.NoError(t, PrintOpener{}.Open(context.Background(), "https://pay"))
}
