package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSoundConfig() SoundConfig {
	config := DefaultSoundConfig()
	config.BeepDelay = 0
	return config
}

func TestSoundNotifier(t *testing.T) {
	notifier := NewSoundNotifier(DefaultSoundConfig())

	assert.True(t, notifier.IsEnabled())

	notifier.SetEnabled(false)
	assert.False(t, notifier.IsEnabled())

	notifier.SetEnabled(true)
	assert.True(t, notifier.IsEnabled())
}

func TestDefaultSoundConfig(t *testing.T) {
	config := DefaultSoundConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, 800, config.Frequency)
	assert.Equal(t, 200*time.Millisecond, config.Duration)
	assert.Equal(t, 50*time.Millisecond, config.BeepDelay)
}

func TestSoundNotifierPlaySounds(t *testing.T) {
	config := testSoundConfig()
	fakeProvider := &FakeBeepProvider{}
	notifier := NewSoundNotifierWithProvider(config, fakeProvider)

	t.Run("PlayAlertSound", func(t *testing.T) {
		fakeProvider.Reset()
		notifier.PlayAlertSound()

		fakeProvider.WaitForCalls(1)

		assert.Equal(t, []BeepCall{{Frequency: 800, Duration: 200}}, fakeProvider.Snapshot())
	})

	t.Run("PlaySuccessSound", func(t *testing.T) {
		fakeProvider.Reset()
		notifier.PlaySuccessSound()

		fakeProvider.WaitForCalls(2)

		assert.Equal(t, []BeepCall{{Frequency: 1000, Duration: 100}, {Frequency: 1200, Duration: 100}}, fakeProvider.Snapshot())
	})

	t.Run("PlayErrorSound", func(t *testing.T) {
		fakeProvider.Reset()
		notifier.PlayErrorSound()

		fakeProvider.WaitForCalls(1)

		assert.Equal(t, []BeepCall{{Frequency: 400, Duration: 400}}, fakeProvider.Snapshot())
	})
}

func TestSoundNotifierDisabled(t *testing.T) {
	config := testSoundConfig()
	config.Enabled = false
	fakeProvider := &FakeBeepProvider{}
	notifier := NewSoundNotifierWithProvider(config, fakeProvider)

	notifier.PlayAlertSound()
	notifier.PlaySuccessSound()
	notifier.PlayErrorSound()

	assert.Equal(t, 0, fakeProvider.CallCount)
}
