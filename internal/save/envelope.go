package save

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

// ErrChecksum means a stored blob does not match its checksum
var ErrChecksum = errors.New("checksum mismatch")

var bufferPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Blob is a compressed payload with the BLAKE3 checksum of its plain bytes
type Blob struct {
	Data     []byte
	Checksum string
}

// Seal compresses payload and records its checksum
func Seal(payload []byte) (Blob, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zw := lz4.NewWriter(buf)
	if _, err := zw.Write(payload); err != nil {
		return Blob{}, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return Blob{}, fmt.Errorf("compress: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return Blob{Data: out, Checksum: checksum(payload)}, nil
}

// Open decompresses the blob and verifies the checksum
func (b Blob) Open() ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zr := lz4.NewReader(bytes.NewReader(b.Data))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	if checksum(out) != b.Checksum {
		return nil, ErrChecksum
	}
	return out, nil
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
