package parsers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealnote/sealnote/internal/key"
)

func Test_DecryptNoteParser(t *testing.T) {
	k, err := key.NewGeneratedKey(key.SizeAES512)
	require.NoError(t, err)

	parser := NewDecryptNoteParser()

	data, err := parser.Parse(jsonRequest(fmt.Sprintf(`{"password":"pw","decryptionKey":%q}`, k.String())))

	require.NoError(t, err)
	assert.Equal(t, "pw", data.Password)
	assert.Equal(t, k.Get(), data.Key.Get())
}

func Test_DecryptNoteParser_InvalidKey(t *testing.T) {
	parser := NewDecryptNoteParser()

	testCases := []struct {
		name string
		body string
	}{
		{"missing key", `{"password":"pw"}`},
		{"too short", `{"decryptionKey":"abcdef"}`},
		{"right length not hex", fmt.Sprintf(`{"decryptionKey":%q}`, strings.Repeat("zz", key.SizeAES256))},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := parser.Parse(jsonRequest(testCase.body))
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}
