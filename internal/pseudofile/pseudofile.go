// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// Package pseudofile provides helpers for reading fixed size records from
// kernel pseudo-files, where a single read isn't guaranteed to return the
// whole record and there is no out-of-band length.
package pseudofile

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/xerrors"
)

// LengthError is returned from ReadExact when the source doesn't contain
// exactly the expected number of bytes. When the source is too long, Read
// is one more than Expected.
type LengthError struct {
	Read     int
	Expected int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("read %d but expected %d", e.Read, e.Expected)
}

func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR)
}

// ReadExact fills buf from r, retrying after short or interrupted reads,
// and then checks that r has no more data. A read that returns no data
// before buf is full is treated as the end of the source.
func ReadExact(r io.Reader, buf []byte) error {
	n := 0
	eof := false
	for n < len(buf) && !eof {
		m, err := r.Read(buf[n:])
		n += m
		switch {
		case err == nil && m == 0:
			eof = true
		case err == nil:
		case err == io.EOF:
			eof = true
		case isInterrupted(err):
		default:
			return xerrors.Errorf("cannot read after %d bytes: %w", n, err)
		}
	}

	if n < len(buf) {
		return &LengthError{Read: n, Expected: len(buf)}
	}
	if eof {
		return nil
	}

	var extra [1]byte
	for {
		m, err := r.Read(extra[:])
		switch {
		case m > 0:
			return &LengthError{Read: n + m, Expected: len(buf)}
		case err == nil || err == io.EOF:
			return nil
		case isInterrupted(err):
		default:
			return xerrors.Errorf("cannot check for end of file: %w", err)
		}
	}
}
