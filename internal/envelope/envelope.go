// Package envelope implements the encrypt and decrypt routines for every
// supported algorithm identifier. The result of an encryption is a self
// describing envelope: the algorithm tag, the ciphertext and every parameter
// (IVs, auth tags, nonce) needed to decrypt it, minus the key.
package envelope

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrUnsupportedAlgorithm Error occures when the algorithm identifier is not
// recognized
var ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")

// ErrInvalidKeySize Error occures when the key length does not match the
// algorithm requirement
var ErrInvalidKeySize = errors.New("invalid key size")

// ErrDecryptFailed Error occures when the key, IV or auth tag combination is
// wrong or the ciphertext is corrupted
var ErrDecryptFailed = errors.New("decrypt failed")

// ErrMalformedEnvelope Error occures when the envelope fields can not be
// decoded
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Algorithm identifies a supported cipher suite
type Algorithm string

const (
	AES256GCM        Algorithm = "aes-256-gcm"
	AES256CBC        Algorithm = "aes-256-cbc"
	AES512GCM        Algorithm = "aes-512-gcm"
	AES512CBC        Algorithm = "aes-512-cbc"
	ChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

// gcmIVSize is the IV length used by the GCM and CBC envelopes
const gcmIVSize = 16

// Envelope bundles the ciphertext with the algorithm tag and the parameters
// needed to decrypt it. The dual layer variants carry two IVs and two auth
// tags, one per layer.
type Envelope struct {
	Algorithm  Algorithm `json:"algorithm"`
	Ciphertext string    `json:"encrypted"`
	IVs        []string  `json:"iv,omitempty"`
	AuthTags   []string  `json:"authTag,omitempty"`
	Nonce      string    `json:"nonce,omitempty"`
}

type suite struct {
	keySize int
	seal    func(k []byte, plaintext []byte) (*Envelope, error)
	open    func(k []byte, env *Envelope) ([]byte, error)
}

var suites = map[Algorithm]suite{
	AES256GCM:        {keySize: 32, seal: sealAES256GCM, open: openAES256GCM},
	AES256CBC:        {keySize: 32, seal: sealAES256CBC, open: openAES256CBC},
	AES512GCM:        {keySize: 64, seal: sealAES512GCM, open: openAES512GCM},
	AES512CBC:        {keySize: 64, seal: sealAES512CBC, open: openAES512CBC},
	ChaCha20Poly1305: {keySize: chacha20poly1305.KeySize, seal: sealChaCha20, open: openChaCha20},
}

// ParseAlgorithm validates an algorithm identifier string
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if _, ok := suites[a]; !ok {
		return "", ErrUnsupportedAlgorithm
	}

	return a, nil
}

// KeySize returns the key byte length the algorithm requires
func (a Algorithm) KeySize() (int, error) {
	s, ok := suites[a]
	if !ok {
		return 0, ErrUnsupportedAlgorithm
	}

	return s.keySize, nil
}

// Encrypt encrypts the plaintext under the caller supplied key and returns
// the envelope for the requested algorithm
func Encrypt(algorithm Algorithm, k []byte, plaintext []byte) (*Envelope, error) {
	s, ok := suites[algorithm]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}

	if len(k) != s.keySize {
		return nil, ErrInvalidKeySize
	}

	return s.seal(k, plaintext)
}

// Decrypt consumes an envelope and returns the plaintext. A wrong key, IV or
// auth tag results in ErrDecryptFailed, an unknown algorithm tag in
// ErrUnsupportedAlgorithm.
func Decrypt(k []byte, env *Envelope) ([]byte, error) {
	s, ok := suites[env.Algorithm]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}

	if len(k) != s.keySize {
		return nil, ErrInvalidKeySize
	}

	return s.open(k, env)
}

func sealAES256GCM(k []byte, plaintext []byte) (*Envelope, error) {
	ciphertext, iv, tag, err := gcmSeal(k, plaintext)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  AES256GCM,
		Ciphertext: hex.EncodeToString(ciphertext),
		IVs:        []string{hex.EncodeToString(iv)},
		AuthTags:   []string{hex.EncodeToString(tag)},
	}, nil
}

func openAES256GCM(k []byte, env *Envelope) ([]byte, error) {
	ciphertext, iv, tag, err := decodeSingleLayer(env, true)
	if err != nil {
		return nil, err
	}

	return gcmOpen(k, ciphertext, iv, tag)
}

func sealAES256CBC(k []byte, plaintext []byte) (*Envelope, error) {
	ciphertext, iv, err := cbcEncrypt(k, plaintext)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  AES256CBC,
		Ciphertext: hex.EncodeToString(ciphertext),
		IVs:        []string{hex.EncodeToString(iv)},
	}, nil
}

func openAES256CBC(k []byte, env *Envelope) ([]byte, error) {
	ciphertext, iv, _, err := decodeSingleLayer(env, false)
	if err != nil {
		return nil, err
	}

	return cbcDecrypt(k, ciphertext, iv)
}

// sealAES512GCM applies two independent aes-256-gcm layers, the first over
// the plaintext with the first key half, the second over the first layer's
// ciphertext with the second key half
func sealAES512GCM(k []byte, plaintext []byte) (*Envelope, error) {
	inner, iv1, tag1, err := gcmSeal(k[:32], plaintext)
	if err != nil {
		return nil, err
	}

	outer, iv2, tag2, err := gcmSeal(k[32:], inner)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  AES512GCM,
		Ciphertext: hex.EncodeToString(outer),
		IVs:        []string{hex.EncodeToString(iv1), hex.EncodeToString(iv2)},
		AuthTags:   []string{hex.EncodeToString(tag1), hex.EncodeToString(tag2)},
	}, nil
}

func openAES512GCM(k []byte, env *Envelope) ([]byte, error) {
	ciphertext, ivs, tags, err := decodeDualLayer(env, true)
	if err != nil {
		return nil, err
	}

	inner, err := gcmOpen(k[32:], ciphertext, ivs[1], tags[1])
	if err != nil {
		return nil, err
	}

	return gcmOpen(k[:32], inner, ivs[0], tags[0])
}

func sealAES512CBC(k []byte, plaintext []byte) (*Envelope, error) {
	inner, iv1, err := cbcEncrypt(k[:32], plaintext)
	if err != nil {
		return nil, err
	}

	outer, iv2, err := cbcEncrypt(k[32:], inner)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Algorithm:  AES512CBC,
		Ciphertext: hex.EncodeToString(outer),
		IVs:        []string{hex.EncodeToString(iv1), hex.EncodeToString(iv2)},
	}, nil
}

func openAES512CBC(k []byte, env *Envelope) ([]byte, error) {
	ciphertext, ivs, _, err := decodeDualLayer(env, false)
	if err != nil {
		return nil, err
	}

	inner, err := cbcDecrypt(k[32:], ciphertext, ivs[1])
	if err != nil {
		return nil, err
	}

	return cbcDecrypt(k[:32], inner, ivs[0])
}

func sealChaCha20(k []byte, plaintext []byte) (*Envelope, error) {
	aead, err := chacha20poly1305.New(k)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := splitTag(sealed, aead.Overhead())

	return &Envelope{
		Algorithm:  ChaCha20Poly1305,
		Ciphertext: hex.EncodeToString(ciphertext),
		Nonce:      hex.EncodeToString(nonce),
		AuthTags:   []string{hex.EncodeToString(tag)},
	}, nil
}

func openChaCha20(k []byte, env *Envelope) ([]byte, error) {
	if len(env.AuthTags) != 1 || env.Nonce == "" {
		return nil, ErrMalformedEnvelope
	}

	ciphertext, err := decodeHex(env.Ciphertext)
	if err != nil {
		return nil, err
	}

	nonce, err := decodeHex(env.Nonce)
	if err != nil {
		return nil, err
	}

	tag, err := decodeHex(env.AuthTags[0])
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(k)
	if err != nil {
		return nil, err
	}

	if len(nonce) != aead.NonceSize() {
		return nil, ErrMalformedEnvelope
	}

	plaintext, err := aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptFailed, err)
	}

	return plaintext, nil
}

// gcmSeal encrypts with aes-256-gcm and returns the ciphertext, IV and auth
// tag as separate values to keep the envelope layout explicit
func gcmSeal(k []byte, plaintext []byte) (ciphertext, iv, tag []byte, err error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, nil, nil, err
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, gcmIVSize)
	if err != nil {
		return nil, nil, nil, err
	}

	iv = make([]byte, gcmIVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, err
	}

	sealed := aesGCM.Seal(nil, iv, plaintext, nil)
	ciphertext, tag = splitTag(sealed, aesGCM.Overhead())

	return ciphertext, iv, tag, nil
}

func gcmOpen(k []byte, ciphertext, iv, tag []byte) ([]byte, error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCMWithNonceSize(block, gcmIVSize)
	if err != nil {
		return nil, err
	}

	if len(iv) != gcmIVSize || len(tag) != aesGCM.Overhead() {
		return nil, ErrMalformedEnvelope
	}

	plaintext, err := aesGCM.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptFailed, err)
	}

	return plaintext, nil
}

func cbcEncrypt(k []byte, plaintext []byte) (ciphertext, iv []byte, err error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, nil, err
	}

	iv = make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, iv, nil
}

// cbcDecrypt has no integrity check, a wrong key surfaces as a padding error
// or as garbage output
func cbcDecrypt(k []byte, ciphertext, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}

	if len(iv) != aes.BlockSize || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrMalformedEnvelope
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	return pkcs7Unpad(padded, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryptFailed
	}

	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > blockSize {
		return nil, ErrDecryptFailed
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrDecryptFailed
		}
	}

	return data[:len(data)-padLen], nil
}

func splitTag(sealed []byte, overhead int) (ciphertext, tag []byte) {
	return sealed[:len(sealed)-overhead], sealed[len(sealed)-overhead:]
}

func decodeSingleLayer(env *Envelope, withTag bool) (ciphertext, iv, tag []byte, err error) {
	if len(env.IVs) != 1 {
		return nil, nil, nil, ErrMalformedEnvelope
	}

	ciphertext, err = decodeHex(env.Ciphertext)
	if err != nil {
		return nil, nil, nil, err
	}

	iv, err = decodeHex(env.IVs[0])
	if err != nil {
		return nil, nil, nil, err
	}

	if withTag {
		if len(env.AuthTags) != 1 {
			return nil, nil, nil, ErrMalformedEnvelope
		}

		tag, err = decodeHex(env.AuthTags[0])
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return ciphertext, iv, tag, nil
}

func decodeDualLayer(env *Envelope, withTags bool) (ciphertext []byte, ivs, tags [2][]byte, err error) {
	if len(env.IVs) != 2 {
		return nil, ivs, tags, ErrMalformedEnvelope
	}

	ciphertext, err = decodeHex(env.Ciphertext)
	if err != nil {
		return nil, ivs, tags, err
	}

	for i := range env.IVs {
		ivs[i], err = decodeHex(env.IVs[i])
		if err != nil {
			return nil, ivs, tags, err
		}
	}

	if withTags {
		if len(env.AuthTags) != 2 {
			return nil, ivs, tags, ErrMalformedEnvelope
		}

		for i := range env.AuthTags {
			tags[i], err = decodeHex(env.AuthTags[i])
			if err != nil {
				return nil, ivs, tags, err
			}
		}
	}

	return ciphertext, ivs, tags, nil
}

func decodeHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrMalformedEnvelope, err)
	}

	return data, nil
}
