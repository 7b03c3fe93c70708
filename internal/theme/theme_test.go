package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Light\n")
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	m, err = ParseMode("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	_, err = ParseMode("sepia")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, Light.Toggle())
	assert.True(t, Dark.IsDark())
	assert.Equal(t, "light", Light.String())
}

func TestPaletteFor(t *testing.T) {
	dark := PaletteFor(Dark)
	assert.Equal(t, SpaceBackground, dark.Background)
	assert.Len(t, dark.Stars, 5)
	assert.Equal(t, uint8(0xFF), dark.Glow.A)

	light := PaletteFor(Light)
	assert.Equal(t, LightBackground, light.Background)
	assert.InDelta(t, 77, float64(light.Glow.A), 1) // 0.3 * 255
	assert.Equal(t, uint8(128), light.Sparkle.A)
}

func TestWithAlpha_Clamps(t *testing.T) {
	assert.Equal(t, uint8(0), WithAlpha(Cyan, -1).A)
	assert.Equal(t, uint8(255), WithAlpha(Cyan, 4).A)
	assert.Equal(t, Cyan.R, WithAlpha(Cyan, 0.5).R)
}

func TestSignal_SetAndSubscribe(t *testing.T) {
	s := NewSignal(Dark)
	ch := s.Subscribe()

	s.Set(Dark) // unchanged, no notification
	select {
	case m := <-ch:
		require.Failf(t, "unexpected notification", "got %v", m)
	default:
	}

	s.Set(Light)
	assert.Equal(t, Light, <-ch)
	assert.False(t, s.Dark())
}

func TestSignal_SubscriberSeesLatestOnly(t *testing.T) {
	s := NewSignal(Dark)
	ch := s.Subscribe()

	s.Toggle() // light
	s.Toggle() // dark
	s.Toggle() // light

	assert.Equal(t, Light, <-ch)
	select {
	case m := <-ch:
		require.Failf(t, "expected a single buffered value", "got extra %v", m)
	default:
	}
}

func TestSignal_Unsubscribe(t *testing.T) {
	s := NewSignal(Dark)
	ch := s.Subscribe()
	s.Unsubscribe(ch)
	s.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")

	s.Toggle() // must not panic on closed channel
	assert.Equal(t, Light, s.Mode())
}

func TestFileSource_LoadAndWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme")
	require.NoError(t, os.WriteFile(path, []byte("light\n"), 0644))

	sig := NewSignal(Dark)
	src := NewFileSource(path, sig, nil)
	require.NoError(t, src.Start())
	defer src.Stop()

	assert.Equal(t, Light, sig.Mode(), "initial content should be applied")

	require.NoError(t, os.WriteFile(path, []byte("dark\n"), 0644))
	assert.Eventually(t, func() bool { return sig.Dark() }, 2*time.Second, 10*time.Millisecond)
}

func TestFileSource_IgnoresGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme")
	require.NoError(t, os.WriteFile(path, []byte("purple"), 0644))

	sig := NewSignal(Light)
	src := NewFileSource(path, sig, nil)

	err := src.Load()
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, Light, sig.Mode())
}

func TestFileSource_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(filepath.Join(dir, "missing"), NewSignal(Dark), nil)

	require.NoError(t, src.Start())
	require.NoError(t, src.Start())
	assert.NoError(t, src.Stop())
	assert.NoError(t, src.Stop())
}
