// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errio provides a sticky-error io.Writer: once a write fails,
// every subsequent Write is a no-op that returns the same error, so a
// caller emitting many independent lines (a token listing, a diagnostic
// report) can ignore the return value of all but the last one.
package errio

import (
	"io"

	"github.com/pkg/errors"
)

// Writer wraps w and remembers the first error any Write call produced.
type Writer struct {
	w   io.Writer
	Err error
}

// New returns a Writer wrapping w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}
