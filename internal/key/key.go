// Package key provides a type to generate and print (for example in hex) a
// random symmetric key of a required size
package key

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrorKeyAlreadyGenerated Error occures when trying to generate a key on a
// Key object which already has a generated key
var ErrorKeyAlreadyGenerated = errors.New("key already generated")

// ErrorKeyGenerateFailed Error occures when the key generation failed
var ErrorKeyGenerateFailed = errors.New("key generation failed")

// ErrorInvalidKey Error occures when the key is invalid
var ErrorInvalidKey = errors.New("invalid key")

// SizeAES256 the byte size required for a single layer aes-256 key
const SizeAES256 int = 32

// SizeAES512 the byte size required for the dual layer 512 bit variants,
// two 32 byte halves
const SizeAES512 int = 64

// Key is a type to generate and print (for example in hex) a random key
type Key []byte

// NewKey creates an empty Key object
func NewKey() *Key {
	var k Key
	return &k
}

// NewGeneratedKey creates a Key and fills it with size random bytes
func NewGeneratedKey(size int) (*Key, error) {
	k := NewKey()
	if err := k.Generate(size); err != nil {
		return nil, errors.Join(ErrorKeyGenerateFailed, err)
	}

	return k, nil
}

// Generate creates the key, returns error if the key generation failed or
// the key is already generated
func (k *Key) Generate(size int) error {
	if len(*k) != 0 {
		return ErrorKeyAlreadyGenerated
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return err
	}

	*k = bytes
	return nil
}

// Get returns the raw key bytes
func (k *Key) Get() []byte {
	return *k
}

// String returns the key as a hex string, the form it travels in the URL
// fragment
func (k *Key) String() string {
	return hex.EncodeToString(*k)
}

// FromHex creates a Key from a hex string
func FromHex(s string) (*Key, error) {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrorInvalidKey, err)
	}

	k := NewKey()
	*k = decoded

	return k, nil
}
