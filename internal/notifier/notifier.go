// Package notifier emits the test site's startup diagnostics.
package notifier

import "go.uber.org/zap"

// Device is a placeholder for a measured device. It has no fields yet.
type Device struct{}

// State is the lifecycle state of a Notifier.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitialized   State = "initialized"
)

var startupLines = []string{
	"🚀 Frequency Graphs Test Site - Ready!",
	"📈 Testing environment for frequency response graphs",
	"🔧 This is separate from production site",
}

// StartupLines returns the lines Initialize writes, in order.
func StartupLines() []string {
	out := make([]string, len(startupLines))
	copy(out, startupLines)
	return out
}

// Notifier signals that the test site finished loading.
type Notifier struct {
	devices     []Device
	logger      *zap.Logger
	initialized bool
}

// New creates a notifier that writes to logger. A nil logger discards output.
func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		devices: []Device{},
		logger:  logger,
	}
}

// Initialize writes the startup lines. It is safe to call more than once;
// each call writes the same lines again.
func (n *Notifier) Initialize() {
	for _, line := range startupLines {
		n.logger.Info(line)
	}
	n.initialized = true
}

// Devices returns a copy of the device list.
func (n *Notifier) Devices() []Device {
	out := make([]Device, len(n.devices))
	copy(out, n.devices)
	return out
}

func (n *Notifier) Initialized() bool {
	return n.initialized
}

func (n *Notifier) State() State {
	if n.initialized {
		return StateInitialized
	}
	return StateUninitialized
}
