// SPDX-FileCopyrightText: Copyright (c) 2022-2023 The go-mail Authors
//
// SPDX-License-Identifier: MIT

// Package log implements a logger interface used across the cryptolib
// packages, plus two concrete implementations: a plain-text Stdlog and a
// structured JSONlog.
package log

// Logger is the log interface used by the container engine and its
// supporting packages.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}
