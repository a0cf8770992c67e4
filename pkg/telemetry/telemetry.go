// Package telemetry owns the process logger and tracer. Components ask it for a named logger
// instead of building their own.
package telemetry

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Telemetry struct {
	Logger      zerolog.Logger
	Tracer      trace.Tracer
	serviceName string
}

// New builds the telemetry from environment configuration, overridden by the non-zero fields of
// opts.
func New(opts Options) (Telemetry, error) {
	config, err := loadConfig()
	if err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to load telemetry config")
	}

	options := newDefaultOptions()
	config.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return Telemetry{}, eris.Wrap(err, "invalid telemetry options")
	}

	var tracer trace.Tracer
	if options.TraceEnabled {
		tracer = otel.GetTracerProvider().Tracer(options.ServiceName)
	} else {
		tracer = noop.NewTracerProvider().Tracer(options.ServiceName)
	}

	return Telemetry{
		Logger:      newLogger(options),
		Tracer:      tracer,
		serviceName: options.ServiceName,
	}, nil
}

// Nop returns a telemetry that discards every log line and span.
func Nop() Telemetry {
	return Telemetry{
		Logger:      zerolog.Nop(),
		Tracer:      noop.NewTracerProvider().Tracer("nop"),
		serviceName: "nop",
	}
}

// GetLogger returns a component-specific logger.
func (t *Telemetry) GetLogger(component string) zerolog.Logger {
	return t.Logger.With().Str("component", t.serviceName+"."+component).Logger()
}

func newLogger(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := opts.Output
	if opts.LogFormat == LogFormatPretty {
		console := zerolog.ConsoleWriter{Out: opts.Output, TimeFormat: time.RFC3339}
		if f, ok := opts.Output.(*os.File); !ok || (f != os.Stdout && f != os.Stderr) {
			console.NoColor = true
		}
		writer = console
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}
