package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is configured by the CLI. Library code receives its
// logger through configuration and should only fall back to this one when none was provided.
var GlobalLogger = NewLogger(zerolog.Disabled)

// Logger describes a custom logging object that can log events to any arbitrary channel in structured, unstructured,
// or unstructured-and-colorized format.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// context describes the key-value pairs that every event emitted by this Logger carries. Sub-loggers inherit the
	// context of their parent.
	context []contextField

	// plainLogger describes the logger that fans out to every structured and uncolored writer this Logger manages.
	plainLogger zerolog.Logger

	// colorLogger describes the logger that fans out to every colorized writer this Logger manages. It is kept apart
	// from plainLogger so that ANSI codes never reach files or structured output.
	colorLogger zerolog.Logger

	// structuredWriters describes the writers that receive JSON output.
	structuredWriters []io.Writer

	// unstructuredWriters describes the writers that receive plain, uncolored console-style output.
	unstructuredWriters []io.Writer

	// unstructuredColorWriters describes the writers that receive console-style output with ANSI coloring.
	unstructuredColorWriters []io.Writer
}

// contextField is a single key-value pair attached through NewSubLogger.
type contextField struct {
	key   string
	value string
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger has no writers until AddWriter is
// called, so it is effectively silent.
func NewLogger(level zerolog.Level) *Logger {
	l := &Logger{
		level:                    level,
		structuredWriters:        make([]io.Writer, 0),
		unstructuredWriters:      make([]io.Writer, 0),
		unstructuredColorWriters: make([]io.Writer, 0),
	}
	l.rebuild()
	return l
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have their own unique logger so that parsing of logs is "grep-able" based on some key
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	sub := &Logger{
		level:                    l.level,
		context:                  append(append([]contextField{}, l.context...), contextField{key, value}),
		structuredWriters:        l.structuredWriters,
		unstructuredWriters:      l.unstructuredWriters,
		unstructuredColorWriters: l.unstructuredColorWriters,
	}
	sub.rebuild()
	return sub
}

// AddWriter will add a writer to the list of channels where log output will be sent. Adding a writer that is already
// managed with the same format is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for _, w := range *writers {
		if w == writer {
			return
		}
	}
	*writers = append(*writers, writer)
	l.rebuild()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. If the writer does not exist, this
// function is a no-op
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for i, w := range *writers {
		if w == writer {
			*writers = append((*writers)[:i], (*writers)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// writersFor returns the writer list that corresponds to the given format
func (l *Logger) writersFor(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writer lists, level and context.
func (l *Logger) rebuild() {
	plainWriters := make([]io.Writer, 0, len(l.structuredWriters)+len(l.unstructuredWriters))
	plainWriters = append(plainWriters, l.structuredWriters...)
	for _, w := range l.unstructuredWriters {
		plainWriters = append(plainWriters, setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level))
	}
	colorWriters := make([]io.Writer, 0, len(l.unstructuredColorWriters))
	for _, w := range l.unstructuredColorWriters {
		colorWriters = append(colorWriters, setupDefaultFormatting(zerolog.ConsoleWriter{Out: w}, l.level))
	}

	l.plainLogger = l.newZerologLogger(plainWriters)
	l.colorLogger = l.newZerologLogger(colorWriters)
}

// newZerologLogger creates a zerolog logger over the given writers carrying this Logger's level and context. With no
// writers, a disabled logger is returned so events can still be created safely.
func (l *Logger) newZerologLogger(writers []io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return zerolog.New(io.Discard).Level(zerolog.Disabled)
	}
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(l.level).With().Timestamp()
	for _, field := range l.context {
		ctx = ctx.Str(field.key, field.value)
	}
	return ctx.Logger()
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.rebuild()
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error is a wrapper function that will log an error event.
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic is a wrapper function that will log a panic event and then panic with the plain message
func (l *Logger) Panic(args ...any) {
	l.log(zerolog.PanicLevel, args...)
	_, plainMsg, _, _ := buildMsgs(args...)
	panic(plainMsg)
}

// log builds the messages from the provided args, chains the optional error and structured info to an event for
// each of the two underlying loggers and sends them off.
func (l *Logger) log(level zerolog.Level, args ...any) {
	colorMsg, plainMsg, err, info := buildMsgs(args...)

	// WithLevel is used so that a panic-level event is written without zerolog panicking mid-way
	colorEvent := l.colorLogger.WithLevel(level)
	plainEvent := l.plainLogger.WithLevel(level)

	for _, event := range []*zerolog.Event{colorEvent, plainEvent} {
		event.Err(err)
		// Stack traces are only attached at debug level or below
		if err != nil && l.level <= zerolog.DebugLevel {
			event.Stack()
		}
		if info != nil {
			event.Any("info", info)
		}
	}

	colorEvent.Msg(colorMsg)
	plainEvent.Msg(plainMsg)
}

// buildMsgs takes in a variadic list of arguments of any type and returns two strings and, optionally, an error and
// a StructuredLogInfo object. The first string is colorized for console output while the second one is plain. A
// colors.ColorFunc argument switches the color context for the arguments that follow it.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	colorOutput := make([]string, 0, len(args))
	plainOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			// Only one structured log info can be provided for each log message
			info = t
		case error:
			// Only one error can be provided for each log message
			err = t
		default:
			colorOutput = append(colorOutput, colorCtx(t))
			plainOutput = append(plainOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(colorOutput, ""), strings.Join(plainOutput, ""), err, info
}

// setupDefaultFormatting will update the console writer's formatting to the project standard
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i any) string {
		return ""
	}

	// Messages are already colorized by the ColorFunc arguments of the log call
	writer.FormatMessage = func(i any) string {
		if i == nil {
			return ""
		}
		return fmt.Sprintf("%v", i)
	}

	writer.FormatLevel = func(i any) string {
		lvl, err := zerolog.ParseLevel(fmt.Sprintf("%v", i))
		if err != nil {
			return fmt.Sprintf("%v", i)
		}

		colorize := func(f colors.ColorFunc, s string) string {
			if writer.NoColor {
				return s
			}
			return f(s)
		}

		switch lvl {
		case zerolog.TraceLevel:
			return colorize(colors.CyanBold, zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colorize(colors.BlueBold, zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colorize(colors.GreenBold, colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colorize(colors.YellowBold, zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return colorize(colors.RedBold, zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return colorize(colors.RedBold, zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return colorize(colors.RedBold, zerolog.LevelPanicValue)
		default:
			return fmt.Sprintf("%v", i)
		}
	}

	// Above debug level, the `module` component is noise on the console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module", "run"}
	}

	return writer
}
