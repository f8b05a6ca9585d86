// Package internal holds helpers shared by the compression algorithm packages
// (lz4, snappy) that are not part of the public compression API.
package internal

import (
	"bytes"
	"fmt"
	"io"
)

// Drain returns source's full contents as a *bytes.Buffer, reusing source itself when it is
// already one instead of copying. Both compressor implementations need the whole body in memory
// before they can call into their respective block-compression libraries.
func Drain(source io.Reader, what string) (*bytes.Buffer, error) {
	if buf, ok := source.(*bytes.Buffer); ok {
		return buf, nil
	}
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(source); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", what, err)
	}
	return buf, nil
}
