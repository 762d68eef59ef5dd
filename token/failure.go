package token

// ParseFailure is the error produced by every stage of the pipeline once it
// is running: lexical errors, grammar dispatch errors and demand mismatches.
type ParseFailure struct {
	Message  string
	Position Position
	Err      error
}

func NewParseFailure(message string, position Position) *ParseFailure {
	return &ParseFailure{Message: message, Position: position}
}

// Wrap returns a ParseFailure for message at position caused by err.
func Wrap(err error, message string, position Position) *ParseFailure {
	return &ParseFailure{Message: message, Position: position, Err: err}
}

func (f *ParseFailure) Error() string {
	msg := f.Message
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	if f.Position.Known() {
		return msg + " at " + f.Position.Location()
	}
	return msg
}

func (f *ParseFailure) Unwrap() error {
	return f.Err
}
