package lexer

import (
	"fmt"
	"io"

	"PrattKit/internal/logger"
	"PrattKit/token"
)

const DefaultStackSize = 5

// Options configures a TokenStream.
type Options struct {
	// EndOfStream is the kind of the token emitted once input is exhausted.
	EndOfStream token.Kind `yaml:"eos_token" toml:"eos_token"`
	// StackSize bounds the mode stack, counting the active mode.
	StackSize int `yaml:"stack_size" toml:"stack_size"`

	logOutput io.Writer
	logLevel  logger.LogLevel
}

func DefaultOptions() Options {
	return Options{
		EndOfStream: token.EndOfStream,
		StackSize:   DefaultStackSize,
		logLevel:    logger.ERROR,
	}
}

type Option func(*Options)

func WithEndOfStream(kind token.Kind) Option {
	return func(o *Options) { o.EndOfStream = kind }
}

func WithStackSize(size int) Option {
	return func(o *Options) { o.StackSize = size }
}

// WithOptions replaces the stream settings wholesale. Logging settings are
// kept.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		o.EndOfStream = opts.EndOfStream
		o.StackSize = opts.StackSize
	}
}

// WithLogger traces stream activity to w. level is one of "error", "info"
// or "debug"; empty and unknown levels fall back to "error".
func WithLogger(w io.Writer, level string) Option {
	return func(o *Options) {
		lvl, err := logger.ParseLevel(level)
		if err != nil {
			lvl = logger.ERROR
		}
		o.logOutput = w
		o.logLevel = lvl
	}
}

func (o Options) validate() error {
	if o.StackSize < 1 {
		return fmt.Errorf("%w: stack size %d", ErrInvalidOption, o.StackSize)
	}
	if !o.EndOfStream.Valid() {
		return fmt.Errorf("%w: end of stream token kind %q", ErrInvalidOption, o.EndOfStream)
	}
	return nil
}
