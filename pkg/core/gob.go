package core

import (
	"bytes"

	"github.com/dave/stablegob"
)

// StableEncode encodes v deterministically. Block and transaction
// hashes are computed over this encoding, so it must be byte-stable
// across nodes: map fields are emitted in sorted key order.
func StableEncode(v interface{}) []byte {
	var buf bytes.Buffer
	enc := stablegob.NewEncoder(&buf)
	err := enc.Encode(v)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}
