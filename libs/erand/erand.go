package erand

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
)

// Int32 returns a cryptographically secure random signed 32-bit value.
func Int32() int32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return int32(binary.BigEndian.Uint32(buf[:]))
}

// Token returns n cryptographically secure random bytes, hex-encoded.
func Token(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
