package core

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const (
	hashBytes = 32
	addrBytes = 20
)

// Hash is the hash of a piece of data.
type Hash [hashBytes]byte

// GenesisPrevHash is the previous-hash sentinel carried by the block at
// index 0. It is never the hash of any real block.
var GenesisPrevHash = Hash{}

// SHA3 returns the SHA3-256 hash over the concatenation of the given
// byte slices.
func SHA3(b ...[]byte) Hash {
	d := sha3.New256()
	for _, e := range b {
		_, err := d.Write(e)
		if err != nil {
			// should not happen
			panic(err)
		}
	}
	h := d.Sum(nil)
	var hash Hash
	copy(hash[:], h)
	return hash
}

func (h Hash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// Addr returns the address associated to the hash.
func (h Hash) Addr() Addr {
	var addr Addr
	copy(addr[:], h[hashBytes-addrBytes:])
	return addr
}

// Addr is the address of an account.
type Addr [addrBytes]byte

// ZeroAddr is the empty address.
var ZeroAddr = Addr{}

func (a Addr) String() string {
	return fmt.Sprintf("%x", a[:])
}

// Hex returns the hex encoding of the address.
func (a Addr) Hex() string {
	return fmt.Sprintf("%x", a[:])
}

// AddrFromHex parses a hex encoded address.
func AddrFromHex(s string) (Addr, error) {
	var a Addr
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, err
	}

	if len(b) != addrBytes {
		return a, fmt.Errorf("address must be %d bytes, got %d", addrBytes, len(b))
	}

	copy(a[:], b)
	return a, nil
}
