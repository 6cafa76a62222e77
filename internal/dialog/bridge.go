package dialog

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
)

// Bridge turns a callback-driven Picker into blocking calls for command handlers.
type Bridge struct {
	picker  Picker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewBridge creates a bridge over the given picker.
func NewBridge(picker Picker, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bridge{picker: picker, logger: logger}
}

// WithMetrics records dialog outcomes on m.
func (b *Bridge) WithMetrics(m *monitoring.Metrics) *Bridge {
	b.metrics = m
	return b
}

// Open shows a pick-file dialog and blocks until the user decides.
func (b *Bridge) Open(opts Options) Result {
	return b.await(ModeOpen, opts)
}

// Save shows a save-file dialog and blocks until the user decides.
func (b *Bridge) Save(opts Options) Result {
	return b.await(ModeSave, opts)
}

// await blocks on a single-use slot the picker's completion fills.
// There is no timeout: a dialog left open keeps the caller waiting.
func (b *Bridge) await(mode Mode, opts Options) Result {
	slot := make(chan Result, 1)
	var once sync.Once
	done := func(r Result) {
		once.Do(func() { slot <- r })
	}

	if b.metrics != nil {
		b.metrics.DialogOpened()
	}
	b.logger.Debug("Opening file dialog",
		zap.String("mode", string(mode)),
		zap.String("title", opts.Title),
		zap.String("filter", opts.Filter.Pattern()),
	)

	switch mode {
	case ModeSave:
		b.picker.SaveFile(opts, done)
	default:
		b.picker.PickFile(opts, done)
	}

	res := <-slot
	if res.Selected && res.Path == "" {
		res = NoSelection()
	}

	if b.metrics != nil {
		b.metrics.DialogClosed(string(mode), res.Selected)
	}
	if res.Selected {
		b.logger.Info("User selected path", zap.String("mode", string(mode)), zap.String("path", res.Path))
	} else {
		b.logger.Info("User dismissed file dialog", zap.String("mode", string(mode)))
	}
	return res
}
