// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package logger builds the zap loggers used by the r2voronoi programs.
package logger

import (
	"bytes"
	"html"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ansiReset = "\033[0m"
	timeFmt   = "[2006-01-02 | 15:04:05]"
)

var (
	ansiCode = regexp.MustCompile(`\033\[(\d+)m`)

	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m",
		zapcore.InfoLevel:  "\033[32m",
		zapcore.WarnLevel:  "\033[33m",
		zapcore.ErrorLevel: "\033[31m",
	}

	htmlColors = map[string]string{
		"31": "red",
		"32": "green",
		"33": "yellow",
		"34": "blue",
		"36": "cyan",
	}
)

// New returns a console logger writing to w, with colored levels and a
// bracketed timestamp.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(timeFmt))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	colorCode, ok := levelColors[level]
	if !ok {
		colorCode = ansiReset
	}
	enc.AppendString(colorCode + level.String() + ansiReset)
}

// Buffered is a logger whose output is kept in memory for display in a web
// page.
type Buffered struct {
	*zap.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

func NewBuffered(level zapcore.Level) *Buffered {
	b := &Buffered{}
	b.Logger = New(b, level)
	return b
}

func (b *Buffered) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *Buffered) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// HTML returns the captured output as a <pre> block with ANSI colors turned
// into spans.
func (b *Buffered) HTML() string {
	return ansiToHTML(b.String())
}

func (b *Buffered) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// ansiToHTML escapes input and converts ANSI color codes to spans with inline
// styles. Unknown codes are dropped; a reset closes the open span.
func ansiToHTML(input string) string {
	var (
		result    strings.Builder
		lastIndex int
		open      bool
	)
	closeSpan := func() {
		if open {
			result.WriteString("</span>")
			open = false
		}
	}

	result.WriteString("<pre>")
	for _, match := range ansiCode.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]
		result.WriteString(html.EscapeString(input[lastIndex:start]))

		code := input[match[2]:match[3]]
		if color, ok := htmlColors[code]; ok {
			closeSpan()
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if code == "0" {
			closeSpan()
		}
		lastIndex = end
	}
	result.WriteString(html.EscapeString(input[lastIndex:]))
	closeSpan()
	result.WriteString("</pre>")

	return result.String()
}
