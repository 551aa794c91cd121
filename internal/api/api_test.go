package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/key"
	"github.com/sealnote/sealnote/internal/linkstore"
	"github.com/sealnote/sealnote/internal/services"
	"github.com/sealnote/sealnote/internal/views"
)

func newTestServer(t *testing.T, noteService NoteService) (*httptest.Server, *linkstore.Store) {
	t.Helper()

	store := linkstore.NewStore(time.Second, zap.NewNop())
	t.Cleanup(store.Close)

	externalURL, err := url.Parse("https://share.example.com")
	require.NoError(t, err)

	router := NewRouter(store, noteService, HandlerConfig{
		MaxDataSize:      1024 * 1024,
		WebExternalURL:   externalURL,
		DefaultExpire:    time.Hour,
		MaxExpireSeconds: 86400 * 7,
		RequestTimeout:   30 * time.Second,
	}, zap.NewNop())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, store
}

func postJSON(t *testing.T, serverURL string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(serverURL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getURL(t *testing.T, serverURL string) *http.Response {
	t.Helper()
	resp, err := http.Get(serverURL)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func Test_ShareLifecycle(t *testing.T) {
	server, _ := newTestServer(t, new(MockNoteService))

	resp := postJSON(t, server.URL+"/api/share", `{"password":"hunter2","note":"the router","useCount":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created views.ShareCreatedResponse
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3600, created.ExpiresIn)

	shareURL, err := url.Parse(created.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, "/shared/"+created.ID, shareURL.Path)
	require.NotEmpty(t, shareURL.Fragment)

	// reading does not spend a use and the envelope opens with the fragment key
	for i := 0; i < 3; i++ {
		readResp := getURL(t, server.URL+"/api/share/"+created.ID)
		require.Equal(t, http.StatusOK, readResp.StatusCode)

		var read views.ShareReadResponse
		decodeBody(t, readResp, &read)
		assert.Equal(t, 2, read.RemainingUses)

		k, err := key.FromHex(shareURL.Fragment)
		require.NoError(t, err)

		plaintext, err := envelope.Decrypt(k.Get(), read.EncryptedData)
		require.NoError(t, err)

		var payload linkstore.Payload
		require.NoError(t, json.Unmarshal(plaintext, &payload))
		assert.Equal(t, "hunter2", payload.Password)
		assert.Equal(t, "the router", payload.Note)
	}

	var consumed views.ShareConsumedResponse

	resp = postJSON(t, server.URL+"/api/share/"+created.ID+"/consume", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &consumed)
	assert.True(t, consumed.Success)
	assert.Equal(t, 1, consumed.RemainingUses)

	resp = postJSON(t, server.URL+"/api/share/"+created.ID+"/consume", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &consumed)
	assert.Equal(t, 0, consumed.RemainingUses)

	resp = postJSON(t, server.URL+"/api/share/"+created.ID+"/consume", "")
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func Test_Share_Errors(t *testing.T) {
	server, _ := newTestServer(t, new(MockNoteService))

	resp := postJSON(t, server.URL+"/api/share", `{"note":"no password"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/share", `{"password":"x","expiresIn":-5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getURL(t, server.URL+"/api/share/0123456789abcdef")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getURL(t, server.URL+"/api/share/not-hex")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_NoteCreate(t *testing.T) {
	noteService := new(MockNoteService)

	k, err := key.NewGeneratedKey(key.SizeAES256)
	require.NoError(t, err)

	expiresAt := time.Now().Add(2 * time.Hour)
	noteService.On("CreateNote", mock.Anything, mock.MatchedBy(func(req services.CreateNoteRequest) bool {
		return req.Content == "secret" &&
			req.Algorithm == envelope.AES256GCM &&
			req.Expire == 2*time.Hour &&
			req.RecipientEmail == "to@example.com"
	})).Return(&services.NoteMeta{
		ID:        "11111111-2222-3333-4444-555555555555",
		ExpiresAt: expiresAt,
	}, *k, nil)

	server, _ := newTestServer(t, noteService)

	resp := postJSON(t, server.URL+"/api/secure-notes/share", `{
		"content": "secret",
		"encryptionAlgorithm": "aes-256-gcm",
		"expiresIn": 7200,
		"recipientEmail": "to@example.com"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created views.NoteCreatedResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", created.NoteID)
	assert.Equal(t, "https://share.example.com/secure-notes/11111111-2222-3333-4444-555555555555#"+k.String(), created.NoteURL)

	noteService.AssertExpectations(t)
}

func Test_NoteCreate_Invalid(t *testing.T) {
	noteService := new(MockNoteService)
	server, _ := newTestServer(t, noteService)

	resp := postJSON(t, server.URL+"/api/secure-notes/share", `{"content":"x","encryptionAlgorithm":"rot13"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/secure-notes/share", `{"encryptionAlgorithm":"aes-256-gcm"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noteService.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything)
}

func Test_NoteStatus(t *testing.T) {
	noteID := "11111111-2222-3333-4444-555555555555"

	noteService := new(MockNoteService)
	noteService.On("GetNoteStatus", mock.Anything, noteID).Return(&services.NoteStatus{
		ID:               noteID,
		RequiresPassword: true,
		ExpiresAt:        time.Now().Add(time.Hour),
		RemainingViews:   1,
	}, nil)

	server, _ := newTestServer(t, noteService)

	resp := getURL(t, server.URL+"/api/secure-notes/"+noteID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status views.NoteStatusResponse
	decodeBody(t, resp, &status)
	assert.True(t, status.RequiresPassword)
	assert.Equal(t, 1, status.RemainingViews)
}

func Test_NoteStatus_Errors(t *testing.T) {
	goneID := "11111111-2222-3333-4444-555555555555"
	missingID := "99999999-8888-7777-6666-555555555555"

	noteService := new(MockNoteService)
	noteService.On("GetNoteStatus", mock.Anything, goneID).Return(nil, services.ErrNoteExpired)
	noteService.On("GetNoteStatus", mock.Anything, missingID).Return(nil, services.ErrNoteNotFound)

	server, _ := newTestServer(t, noteService)

	resp := getURL(t, server.URL+"/api/secure-notes/"+goneID)
	assert.Equal(t, http.StatusGone, resp.StatusCode)

	resp = getURL(t, server.URL+"/api/secure-notes/"+missingID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getURL(t, server.URL+"/api/secure-notes/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_NoteDecrypt(t *testing.T) {
	noteID := "11111111-2222-3333-4444-555555555555"

	k, err := key.NewGeneratedKey(key.SizeAES256)
	require.NoError(t, err)

	noteService := new(MockNoteService)
	noteService.On("DecryptNote", mock.Anything, noteID, "pw", *k).Return(&services.DecryptedNote{
		Content:        "secret",
		RemainingViews: 0,
		SenderEmail:    "from@example.com",
	}, nil)

	server, _ := newTestServer(t, noteService)

	resp := postJSON(t, server.URL+"/api/secure-notes/"+noteID+"/decrypt",
		fmt.Sprintf(`{"password":"pw","decryptionKey":%q}`, k.String()))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decrypted views.NoteDecryptedResponse
	decodeBody(t, resp, &decrypted)
	assert.True(t, decrypted.Success)
	assert.Equal(t, "secret", decrypted.Content)
	assert.Equal(t, 0, decrypted.RemainingViews)
	assert.Equal(t, "from@example.com", decrypted.SenderEmail)
}

func Test_NoteDecrypt_Errors(t *testing.T) {
	noteID := "11111111-2222-3333-4444-555555555555"

	k, err := key.NewGeneratedKey(key.SizeAES256)
	require.NoError(t, err)

	noteService := new(MockNoteService)
	noteService.On("DecryptNote", mock.Anything, noteID, "wrong", mock.Anything).Return(nil, services.ErrWrongPassword)

	server, _ := newTestServer(t, noteService)

	resp := postJSON(t, server.URL+"/api/secure-notes/"+noteID+"/decrypt",
		fmt.Sprintf(`{"password":"wrong","decryptionKey":%q}`, k.String()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/secure-notes/"+noteID+"/decrypt", `{"password":"pw","decryptionKey":"tooshort"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_NoteDelete(t *testing.T) {
	noteID := "11111111-2222-3333-4444-555555555555"

	noteService := new(MockNoteService)
	noteService.On("DeleteNote", mock.Anything, noteID).Return(nil)

	server, _ := newTestServer(t, noteService)

	request, err := http.NewRequest(http.MethodDelete, server.URL+"/api/secure-notes/"+noteID, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted views.NoteDeletedResponse
	decodeBody(t, resp, &deleted)
	assert.True(t, deleted.Success)
}

func Test_Health(t *testing.T) {
	server, _ := newTestServer(t, new(MockNoteService))

	resp := getURL(t, server.URL+"/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	decodeBody(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
}
