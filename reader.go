package yson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// NewReader sniffs the dialect of data and returns a Cursor positioned
// before its first value — a JSONReader wrapped as a Cursor for JSON input,
// or a UBJSONReader wrapped as a Cursor for UBJSON input. data is used as
// the source in full; no bytes already sniffed are discarded.
func NewReader(data []byte) (Cursor, error) {
	dialect, err := SniffDialect(data)
	if err != nil {
		return nil, err
	}
	switch dialect {
	case DialectJSON:
		tr, err := NewBufferTextReader(data)
		if err != nil {
			return nil, err
		}
		return NewJSONCursor(NewJSONReader(tr)), nil
	case DialectUBJSON:
		return NewUBJSONCursor(NewUBJSONReader(bytes.NewReader(data))), nil
	default:
		return nil, fmt.Errorf("yson: cannot determine dialect")
	}
}

// NewStreamReader sniffs the dialect of r by peeking at its leading bytes —
// without discarding them — then returns a Cursor over the full stream,
// sniffed prefix included. r is read through internally buffered readers,
// so callers must not read from it directly once this returns.
func NewStreamReader(r io.Reader) (Cursor, error) {
	br := bufio.NewReaderSize(r, builtinDefaultChunkSize)
	peek, _ := br.Peek(sniffPrefixLimit)
	dialect, err := SniffDialect(peek)
	if err != nil {
		return nil, err
	}
	switch dialect {
	case DialectJSON:
		tr, err := NewStreamTextReader(br)
		if err != nil {
			return nil, err
		}
		return NewJSONCursor(NewJSONReader(tr)), nil
	case DialectUBJSON:
		return NewUBJSONCursor(NewUBJSONReader(br)), nil
	default:
		return nil, fmt.Errorf("yson: cannot determine dialect")
	}
}

// NewFileReader opens path, sniffs its dialect, and returns a Cursor over
// it together with the io.Closer the caller must close when done reading.
func NewFileReader(path string) (Cursor, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	c, err := NewStreamReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return c, f, nil
}
