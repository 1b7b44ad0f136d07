// SPDX-FileCopyrightText: Copyright (c) 2022-2023 The go-mail Authors
//
// SPDX-License-Identifier: MIT

//go:build go1.21
// +build go1.21

package log

import (
	"fmt"
	"io"
	"log/slog"
)

// JSONlog is a structured JSON logger that satisfies the Logger interface,
// built on log/slog. Engine callers reach for it when container
// operations run inside a service that expects machine-parseable logs.
type JSONlog struct {
	level Level
	log   *slog.Logger
}

// NewJSON returns a new JSONlog writing to o, filtering out messages below
// l.
func NewJSON(o io.Writer, l Level) *JSONlog {
	opts := slog.HandlerOptions{}
	switch l {
	case LevelDebug:
		opts.Level = slog.LevelDebug
	case LevelInfo:
		opts.Level = slog.LevelInfo
	case LevelWarn:
		opts.Level = slog.LevelWarn
	case LevelError:
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelDebug
	}
	return &JSONlog{
		level: l,
		log:   slog.New(slog.NewJSONHandler(o, &opts)),
	}
}

// Debugf performs a Sprintf-formatted debug log via the structured logger.
func (l *JSONlog) Debugf(f string, v ...interface{}) {
	if l.level >= LevelDebug {
		l.log.Debug(fmt.Sprintf(f, v...))
	}
}

// Infof performs a Sprintf-formatted info log via the structured logger.
func (l *JSONlog) Infof(f string, v ...interface{}) {
	if l.level >= LevelInfo {
		l.log.Info(fmt.Sprintf(f, v...))
	}
}

// Warnf performs a Sprintf-formatted warn log via the structured logger.
func (l *JSONlog) Warnf(f string, v ...interface{}) {
	if l.level >= LevelWarn {
		l.log.Warn(fmt.Sprintf(f, v...))
	}
}

// Errorf performs a Sprintf-formatted error log via the structured logger.
func (l *JSONlog) Errorf(f string, v ...interface{}) {
	if l.level >= LevelError {
		l.log.Error(fmt.Sprintf(f, v...))
	}
}
