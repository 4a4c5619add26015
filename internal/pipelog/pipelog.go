// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipelog manages the lifecycle of a facade's run log, grounded on
// fem.Start/fem.End: one log file per configured facade, flushed on every
// exit path (success, config error, or panic recovery in the caller).
package pipelog

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard logger with an owned, closeable file handle.
type Logger struct {
	file *os.File
	std  *log.Logger
}

// Start opens (or truncates) fnamepath and returns a Logger writing to it.
// verbose also tees log lines to stderr, mirroring fem.Start's verbose flag.
func Start(fnamepath string, verbose bool) (*Logger, error) {
	f, err := os.Create(fnamepath)
	if err != nil {
		return nil, err
	}
	var w io.Writer = f
	if verbose {
		w = io.MultiWriter(f, os.Stderr)
	}
	return &Logger{file: f, std: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}, nil
}

// Printf writes a formatted log line.
func (o *Logger) Printf(format string, args ...interface{}) {
	if o == nil {
		return
	}
	o.std.Printf(format, args...)
}

// End flushes and closes the log file. Safe to call on a nil Logger.
func (o *Logger) End() {
	if o == nil || o.file == nil {
		return
	}
	o.file.Sync()
	o.file.Close()
}
