package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"PrattKit/internal/logger"
	"PrattKit/token"
)

// TokenStream is the tokenizer engine. It owns its input and releases it
// once the input is exhausted, a lexical error occurs or Close is called.
type TokenStream struct {
	id     string
	state  State
	stack  []State
	limit  int
	eos    token.Kind
	skip   bool
	valid  bool
	failed error

	source io.Reader
	reader *bufio.Reader
	buffer string
	line   int
	offset int

	log *logger.Logger
}

// NewTokenStream creates a stream over input, which must be a string, a
// []byte or an io.Reader, starting in the main mode. The first line is read
// immediately.
func NewTokenStream(main State, input any, opts ...Option) (*TokenStream, error) {
	if main == nil {
		return nil, fmt.Errorf("%w: nil main state", ErrInvalidOption)
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	source, err := openSource(input)
	if err != nil {
		return nil, err
	}

	s := &TokenStream{
		id:     uuid.NewString(),
		state:  main,
		limit:  options.StackSize,
		eos:    options.EndOfStream,
		valid:  true,
		source: source,
		reader: bufio.NewReader(source),
	}
	log := logger.Discard()
	if options.logOutput != nil {
		log = logger.New(options.logOutput, options.logLevel)
	}
	s.log = log.With("stream " + s.id)
	s.log.Info("open %T input (stack size %d, end of stream %s)", input, s.limit, s.eos)

	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func openSource(input any) (io.Reader, error) {
	switch in := input.(type) {
	case string:
		return strings.NewReader(in), nil
	case []byte:
		return strings.NewReader(string(in)), nil
	case io.Reader:
		if in != nil {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: string or io.Reader required, got %T", ErrInvalidInput, input)
}

// ID identifies the stream in trace output.
func (s *TokenStream) ID() string {
	return s.id
}

// read loads the next line into the buffer. It returns false once the input
// is exhausted.
func (s *TokenStream) read() (bool, error) {
	if s.reader == nil {
		return false, nil
	}

	line, err := s.reader.ReadString('\n')
	if line != "" && (err == nil || errors.Is(err, io.EOF)) {
		s.buffer = line
		s.line++
		s.offset = 0
		s.log.Debug("read line %d (%d bytes)", s.line, len(line))
		return true, nil
	}

	s.release()
	if err != nil && !errors.Is(err, io.EOF) {
		s.log.Error("read failed after line %d: %v", s.line, err)
		return false, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	s.log.Info("end of stream after line %d", s.line)
	return false, nil
}

func (s *TokenStream) release() {
	if s.reader != nil {
		if c, ok := s.source.(io.Closer); ok {
			if err := c.Close(); err != nil {
				s.log.Error("close input: %v", err)
			}
		}
		s.reader = nil
		s.source = nil
	}
	s.valid = false
}

// Close releases the input source. It is safe to call more than once.
func (s *TokenStream) Close() error {
	s.release()
	return nil
}

func (s *TokenStream) Skip() {
	s.skip = true
}

func (s *TokenStream) Pop() error {
	if len(s.stack) == 0 {
		return ErrStackUnderflow
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.log.Debug("pop mode %T (depth %d)", s.state, len(s.stack)+1)
	return nil
}

func (s *TokenStream) Push(state State) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", ErrInvalidOption)
	}
	if len(s.stack)+1 >= s.limit {
		return fmt.Errorf("%w (capacity %d)", ErrStackOverflow, s.limit)
	}
	s.stack = append(s.stack, s.state)
	s.state = state
	s.log.Debug("push mode %T (depth %d)", state, len(s.stack)+1)
	return nil
}

// Depth is the number of modes on the stack, counting the active one.
func (s *TokenStream) Depth() int {
	return len(s.stack) + 1
}

func (s *TokenStream) Valid() bool {
	return s.valid
}

// Next returns the next token. Once the input is exhausted it returns the
// end of stream token forever; once a lexical error occurred it returns that
// error forever.
func (s *TokenStream) Next() (token.Token, error) {
	if s.failed != nil {
		return token.Token{}, s.failed
	}
	if !s.valid {
		return token.New(s.eos, ""), nil
	}

	for {
		s.skip = false

		if s.offset >= len(s.buffer) {
			more, err := s.read()
			if err != nil {
				return token.Token{}, s.fail(err, "Unexpected read error")
			}
			if !more {
				return token.New(s.eos, ""), nil
			}
		}

		tok, ok, err := s.state.Token(s, s.buffer, s.offset)
		if err != nil {
			return token.Token{}, s.fail(err, "Unexpected token")
		}
		if !ok || tok.Lexeme == "" {
			return token.Token{}, s.fail(nil, "Unexpected token")
		}

		s.offset += len(tok.Lexeme)

		if !s.skip {
			return tok, nil
		}
		s.log.Debug("skip %s", tok)
	}
}

func (s *TokenStream) fail(err error, message string) error {
	var failure *token.ParseFailure
	if !errors.As(err, &failure) {
		failure = token.Wrap(err, message, s.Position())
	}
	s.log.Error("%v", failure)
	s.failed = failure
	s.release()
	return failure
}

// Position reports where the stream currently stands. The offset is moved
// back onto the last byte of the line when it sits past the end, and onto
// the first byte of a UTF-8 sequence when it lands inside one.
func (s *TokenStream) Position() token.Position {
	if s.buffer == "" {
		return token.Position{}
	}
	offset := min(s.offset, len(s.buffer)-1)
	for offset > 0 && !utf8.RuneStart(s.buffer[offset]) {
		offset--
	}
	pos, err := token.NewPosition(s.buffer, s.line, offset)
	if err != nil {
		return token.Position{}
	}
	return pos
}

func (s *TokenStream) Error(message string) error {
	return token.NewParseFailure(message, s.Position())
}

func (s *TokenStream) String() string {
	return "TokenStream(" + s.id + ")"
}
