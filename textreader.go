package yson

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextReader is the external collaborator the JSON tokenizer relies on for
// more input text: Append must append at most n bytes of UTF-8 text onto
// buf, returning the extended slice, and report ok=false once the source is
// exhausted. Concrete implementations detect the source's encoding from a
// leading byte-order mark and transcode to UTF-8; only UTF-8 and UTF-16 are
// supported, matching this library's historical "UTF-8 in, UTF-8 out"
// contract — a UTF-32 byte-order mark is reported as an encoding error
// rather than silently mis-decoded.
type TextReader interface {
	Append(buf []byte, n int) (out []byte, ok bool, err error)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// sniffEncoding inspects up to the first 4 bytes of b and returns the byte
// length of any recognized byte-order mark plus a decoder that transcodes
// the remainder to UTF-8 (nil once the BOM, if any, is stripped, when the
// source is already UTF-8).
func sniffEncoding(b []byte) (bomLen int, dec transform.Transformer, err error) {
	switch {
	case bytes.HasPrefix(b, bomUTF32LE), bytes.HasPrefix(b, bomUTF32BE):
		return 0, nil, errors.New("yson: UTF-32 input is not supported")
	case bytes.HasPrefix(b, bomUTF8):
		return len(bomUTF8), nil, nil
	case bytes.HasPrefix(b, bomUTF16BE):
		return len(bomUTF16BE), unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case bytes.HasPrefix(b, bomUTF16LE):
		return len(bomUTF16LE), unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), nil
	default:
		return 0, nil, nil
	}
}

// BufferTextReader is a TextReader over an in-memory byte slice: the common
// case, and the one a caller handing yson a whole document in memory uses.
type BufferTextReader struct {
	data []byte
	pos  int
}

// NewBufferTextReader strips/transcodes any byte-order mark in data and
// returns a TextReader over the (now UTF-8) result.
func NewBufferTextReader(data []byte) (*BufferTextReader, error) {
	bomLen, dec, err := sniffEncoding(data)
	if err != nil {
		return nil, err
	}
	data = data[bomLen:]
	if dec != nil {
		decoded, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, fmt.Errorf("yson: decoding input: %w", err)
		}
		data = decoded
	}
	return &BufferTextReader{data: data}, nil
}

// Append implements TextReader.
func (r *BufferTextReader) Append(buf []byte, n int) ([]byte, bool, error) {
	if r.pos >= len(r.data) {
		return buf, false, nil
	}
	end := r.pos + n
	if end > len(r.data) {
		end = len(r.data)
	}
	buf = append(buf, r.data[r.pos:end]...)
	r.pos = end
	return buf, true, nil
}

// StreamTextReader is a TextReader over an io.Reader, such as a network
// connection or an already-open file.
type StreamTextReader struct {
	r io.Reader
}

// NewStreamTextReader wraps r, sniffing and stripping/transcoding a leading
// byte-order mark. It may read a few bytes from r before returning.
func NewStreamTextReader(r io.Reader) (*StreamTextReader, error) {
	br := bufio.NewReaderSize(r, builtinDefaultChunkSize)
	peek, _ := br.Peek(4)
	bomLen, dec, err := sniffEncoding(peek)
	if err != nil {
		return nil, err
	}
	if bomLen > 0 {
		if _, err := br.Discard(bomLen); err != nil && err != io.EOF {
			return nil, err
		}
	}
	var src io.Reader = br
	if dec != nil {
		src = transform.NewReader(br, dec)
	}
	return &StreamTextReader{r: src}, nil
}

// Append implements TextReader.
func (r *StreamTextReader) Append(buf []byte, n int) ([]byte, bool, error) {
	tmp := make([]byte, n)
	read, err := r.r.Read(tmp)
	if read > 0 {
		buf = append(buf, tmp[:read]...)
	}
	if err != nil {
		if err == io.EOF {
			return buf, read > 0, nil
		}
		return buf, false, err
	}
	return buf, true, nil
}

// FileTextReader is a TextReader over an open *os.File.
type FileTextReader struct {
	*StreamTextReader
	f *os.File
}

// NewFileTextReader opens path and wraps it in a StreamTextReader.
func NewFileTextReader(path string) (*FileTextReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sr, err := NewStreamTextReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &FileTextReader{StreamTextReader: sr, f: f}, nil
}

// Close closes the underlying file.
func (r *FileTextReader) Close() error {
	return r.f.Close()
}
