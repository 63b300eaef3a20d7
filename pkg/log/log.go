// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Falco Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log holds the library-wide structured logger.
//
// A shared library must not write to the standard streams of its host
// unless asked to, so the global logger is a no-op until Replace is called
// with a logger built by New.
package log

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Value // *zap.Logger

func init() {
	global.Store(zap.NewNop())
}

// L returns the library-wide logger.
func L() *zap.Logger {
	return global.Load().(*zap.Logger)
}

// Replace sets the library-wide logger and returns a function restoring
// the previous one. A nil logger disables logging.
func Replace(l *zap.Logger) func() {
	if l == nil {
		l = zap.NewNop()
	}
	prev := L()
	global.Store(l)
	return func() {
		global.Store(prev)
	}
}

// New builds a logger, overriding the default options with the input
// options. The defaults configure a text logger at the info level writing
// to stderr. The OffLevel level yields a no-op logger.
func New(options ...Option) (*zap.Logger, error) {
	lg, _, err := Open(options...)
	return lg, err
}

// Open is like New, but also returns a function closing the outputs
// opened for the logger. The function must be called once the logger is
// not used anymore.
func Open(options ...Option) (*zap.Logger, func(), error) {
	cfg := &Config{
		Level:  InfoLevel,
		Format: TextFormat,
	}
	for _, opt := range options {
		opt(cfg)
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stderr"}
	}

	var lvl zapcore.Level
	switch strings.ToLower(cfg.Level) {
	case OffLevel:
		return zap.NewNop(), func() {}, nil
	case DebugLevel:
		lvl = zapcore.DebugLevel
	case InfoLevel, "":
		lvl = zapcore.InfoLevel
	case WarnLevel:
		lvl = zapcore.WarnLevel
	case ErrorLevel:
		lvl = zapcore.ErrorLevel
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "lvl",
		NameKey:          "logger",
		TimeKey:          "ts",
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: consoleSeparator,
	}

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case JSONFormat:
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encoderCfg)
	case TextFormat, "":
		encoderCfg.EncodeTime = consoleTimeEncoder
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	sink, closeSink, err := zap.Open(cfg.OutputPaths...)
	if err != nil {
		return nil, nil, err
	}
	errSink, closeErrSink, err := zap.Open("stderr")
	if err != nil {
		closeSink()
		return nil, nil, err
	}

	lg := zap.New(zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(lvl)), zap.ErrorOutput(errSink))
	return lg.Named(loggerName), func() {
		closeSink()
		closeErrSink()
	}, nil
}

const (
	loggerName       = "counter-ffi"
	consoleSeparator = " | "
)

func consoleTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02" + consoleSeparator + "15:04:05.000"))
}
