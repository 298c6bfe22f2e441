// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package clog provides a small prefixed logger with a runtime on/off
// switch and a pluggable backend.
package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider is the backend the logger writes to.
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Clog is a logger instance. Output is disabled until LogMode(true).
type Clog struct {
	provider LogProvider
	// 1: enable, 0: disable
	has *uint32
}

// NewLogger returns a disabled logger writing to stderr with the given prefix.
func NewLogger(prefix string) Clog {
	return Clog{
		provider: defaultLogger{log.New(os.Stderr, prefix, log.LstdFlags)},
		has:      new(uint32),
	}
}

// LogMode enables or disables output.
func (sf Clog) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(sf.has, 1)
	} else {
		atomic.StoreUint32(sf.has, 0)
	}
}

// SetLogProvider replaces the backend. A nil provider is ignored.
func (sf *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

// Critical logs a critical message.
func (sf Clog) Critical(format string, v ...interface{}) {
	if atomic.LoadUint32(sf.has) == 1 {
		sf.provider.Critical(format, v...)
	}
}

// Error logs an error message.
func (sf Clog) Error(format string, v ...interface{}) {
	if atomic.LoadUint32(sf.has) == 1 {
		sf.provider.Error(format, v...)
	}
}

// Warn logs a warning message.
func (sf Clog) Warn(format string, v ...interface{}) {
	if atomic.LoadUint32(sf.has) == 1 {
		sf.provider.Warn(format, v...)
	}
}

// Debug logs a debug message.
func (sf Clog) Debug(format string, v ...interface{}) {
	if atomic.LoadUint32(sf.has) == 1 {
		sf.provider.Debug(format, v...)
	}
}

type defaultLogger struct {
	*log.Logger
}

func (sf defaultLogger) Critical(format string, v ...interface{}) {
	sf.Printf("[C]: "+format, v...)
}

func (sf defaultLogger) Error(format string, v ...interface{}) {
	sf.Printf("[E]: "+format, v...)
}

func (sf defaultLogger) Warn(format string, v ...interface{}) {
	sf.Printf("[W]: "+format, v...)
}

func (sf defaultLogger) Debug(format string, v ...interface{}) {
	sf.Printf("[D]: "+format, v...)
}
