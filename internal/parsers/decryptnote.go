package parsers

import (
	"errors"
	"net/http"

	"github.com/sealnote/sealnote/internal/key"
)

type DecryptNoteParser struct{}

type DecryptNoteRequestData struct {
	Password string
	Key      key.Key
}

func NewDecryptNoteParser() DecryptNoteParser {
	return DecryptNoteParser{}
}

// keys are hex encoded, 32 bytes for the single layer suites, 64 for the
// dual layer 512 bit variants
func parseDecryptionKey(keyString string) (*key.Key, error) {
	if len(keyString) != key.SizeAES256*2 && len(keyString) != key.SizeAES512*2 {
		return nil, ErrInvalidKey
	}

	k, err := key.FromHex(keyString)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	return k, nil
}

func (d DecryptNoteParser) Parse(r *http.Request) (*DecryptNoteRequestData, error) {
	var body struct {
		Password      string `json:"password"`
		DecryptionKey string `json:"decryptionKey"`
	}

	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	k, err := parseDecryptionKey(body.DecryptionKey)
	if err != nil {
		return nil, err
	}

	return &DecryptNoteRequestData{
		Password: body.Password,
		Key:      *k,
	}, nil
}
