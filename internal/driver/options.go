package driver

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"efguard/internal/config"
	"efguard/internal/observ"
)

// Options configures a driver run. The zero value analyzes the OS
// filesystem with the built-in config.
type Options struct {
	Fs     afero.Fs
	Config *config.Config
	// Symbols overrides Config.Symbols when non-nil.
	Symbols []string
	// Settings lists the additional files searched for the settings
	// document. When empty, files next to the analyzed sources are used.
	Settings       []string
	MaxDiagnostics int
	// Jobs limits parallel passes; <= 0 means GOMAXPROCS.
	Jobs     int
	Logger   logrus.FieldLogger
	Progress ProgressSink
	Cache    *DiskCache
	Timer    *observ.Timer
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Symbols == nil {
		o.Symbols = o.Config.Symbols
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}
