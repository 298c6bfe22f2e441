// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package clog

import (
	"fmt"
	"testing"
)

type captureProvider struct {
	lines []string
}

func (sf *captureProvider) Critical(format string, v ...interface{}) {
	sf.lines = append(sf.lines, "C "+fmt.Sprintf(format, v...))
}

func (sf *captureProvider) Error(format string, v ...interface{}) {
	sf.lines = append(sf.lines, "E "+fmt.Sprintf(format, v...))
}

func (sf *captureProvider) Warn(format string, v ...interface{}) {
	sf.lines = append(sf.lines, "W "+fmt.Sprintf(format, v...))
}

func (sf *captureProvider) Debug(format string, v ...interface{}) {
	sf.lines = append(sf.lines, "D "+fmt.Sprintf(format, v...))
}

func TestLogModeGating(t *testing.T) {
	l := NewLogger("test => ")
	p := &captureProvider{}
	l.SetLogProvider(p)

	l.Debug("dropped %d", 1)
	if len(p.lines) != 0 {
		t.Fatalf("disabled logger wrote %v", p.lines)
	}

	l.LogMode(true)
	l.Critical("c")
	l.Error("e %s", "x")
	l.Warn("w")
	l.Debug("d %d", 2)
	want := []string{"C c", "E e x", "W w", "D d 2"}
	if len(p.lines) != len(want) {
		t.Fatalf("got %v, want %v", p.lines, want)
	}
	for i, line := range want {
		if p.lines[i] != line {
			t.Errorf("line %d: got %q, want %q", i, p.lines[i], line)
		}
	}

	l.LogMode(false)
	l.Error("dropped again")
	if len(p.lines) != len(want) {
		t.Errorf("disabled logger wrote %v", p.lines[len(want):])
	}
}

func TestSetLogProviderNil(t *testing.T) {
	l := NewLogger("test => ")
	p := &captureProvider{}
	l.SetLogProvider(p)
	l.SetLogProvider(nil)
	l.LogMode(true)
	l.Warn("still captured")
	if len(p.lines) != 1 {
		t.Errorf("nil provider replaced the backend: %v", p.lines)
	}
}
