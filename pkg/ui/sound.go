package ui

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

// BeepProvider interface for sound beep functionality
type BeepProvider interface {
	Beep(frequency float64, duration int) error
}

// RealBeepProvider implements BeepProvider using actual beeep library
type RealBeepProvider struct{}

func (r *RealBeepProvider) Beep(frequency float64, duration int) error {
	return beeep.Beep(frequency, duration)
}

// FakeBeepProvider records beeps instead of playing them
type FakeBeepProvider struct {
	CallCount int
	Calls     []BeepCall
	doneCh    chan struct{}
	mu        sync.Mutex
}

type BeepCall struct {
	Frequency float64
	Duration  int
}

func (f *FakeBeepProvider) Beep(frequency float64, duration int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CallCount++
	f.Calls = append(f.Calls, BeepCall{Frequency: frequency, Duration: duration})

	if f.doneCh != nil {
		select {
		case f.doneCh <- struct{}{}:
		default:
		}
	}

	return nil
}

// Reset clears all recorded calls
func (f *FakeBeepProvider) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CallCount = 0
	f.Calls = nil
	f.doneCh = make(chan struct{}, 10)
}

// WaitForCalls blocks until the given number of beeps were recorded since the last Reset
func (f *FakeBeepProvider) WaitForCalls(expectedCalls int) {
	f.mu.Lock()
	if f.doneCh == nil {
		f.doneCh = make(chan struct{}, 10)
	}
	ch := f.doneCh
	f.mu.Unlock()

	for i := 0; i < expectedCalls; i++ {
		<-ch
	}
}

// Snapshot returns a copy of the recorded calls
func (f *FakeBeepProvider) Snapshot() []BeepCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]BeepCall(nil), f.Calls...)
}

// SoundConfig holds sound notification settings
type SoundConfig struct {
	Enabled   bool
	Frequency int           // Hz for the alert beep
	Duration  time.Duration // length of the alert beep
	BeepDelay time.Duration // pause between beeps in a sequence
}

// DefaultSoundConfig returns default sound configuration
func DefaultSoundConfig() SoundConfig {
	return SoundConfig{
		Enabled:   true,
		Frequency: 800,
		Duration:  200 * time.Millisecond,
		BeepDelay: 50 * time.Millisecond,
	}
}

// SoundNotifier plays short cues for watch and refactor outcomes
type SoundNotifier struct {
	config   SoundConfig
	provider BeepProvider
	mu       sync.RWMutex
}

// NewSoundNotifier creates a new sound notifier with real beep provider
func NewSoundNotifier(config SoundConfig) *SoundNotifier {
	return NewSoundNotifierWithProvider(config, &RealBeepProvider{})
}

// NewSoundNotifierWithProvider creates a new sound notifier with custom provider
func NewSoundNotifierWithProvider(config SoundConfig, provider BeepProvider) *SoundNotifier {
	return &SoundNotifier{
		config:   config,
		provider: provider,
	}
}

// PlayAlertSound plays when a comparison reaches high maintainability impact
func (s *SoundNotifier) PlayAlertSound() {
	if !s.IsEnabled() {
		return
	}

	go func() {
		_ = s.provider.Beep(float64(s.config.Frequency), int(s.config.Duration.Milliseconds())) //nolint:errcheck // UI feedback errors are not critical
	}()
}

// PlaySuccessSound plays after files were rewritten
func (s *SoundNotifier) PlaySuccessSound() {
	if !s.IsEnabled() {
		return
	}

	// two rising beeps
	go func() {
		_ = s.provider.Beep(1000.0, 100) //nolint:errcheck // UI feedback errors are not critical
		if s.config.BeepDelay > 0 {
			timer := time.NewTimer(s.config.BeepDelay)
			<-timer.C
		}
		_ = s.provider.Beep(1200.0, 100) //nolint:errcheck // UI feedback errors are not critical
	}()
}

// PlayErrorSound plays when a rewrite is rejected or a run fails
func (s *SoundNotifier) PlayErrorSound() {
	if !s.IsEnabled() {
		return
	}

	go func() {
		_ = s.provider.Beep(400.0, 400) //nolint:errcheck // UI feedback errors are not critical
	}()
}

// SetEnabled enables or disables sound notifications
func (s *SoundNotifier) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Enabled = enabled
}

// IsEnabled returns whether sound notifications are enabled
func (s *SoundNotifier) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Enabled
}
