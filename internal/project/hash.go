package project

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// Digest - фиксированный 256 битный хеш содержимого
type Digest [32]byte

// Hex renders d as lowercase hex.
func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// DigestBytes hashes raw content.
func DigestBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// DigestFile hashes a file on disk.
func DigestFile(path string) (Digest, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	return DigestBytes(data), nil
}

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
