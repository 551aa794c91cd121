package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/hasher"
	"github.com/sealnote/sealnote/internal/key"
	"github.com/sealnote/sealnote/internal/models"
	"github.com/sealnote/sealnote/internal/urls"
)

// ErrNoteNotFound Error occures when the note id is unknown
var ErrNoteNotFound = errors.New("note not found")

// ErrNoteExpired Error occures when the note expired or has no remaining
// views, reads remove the row as a side effect
var ErrNoteExpired = errors.New("note expired")

// ErrWrongPassword Error occures when the access password does not match,
// the note itself is untouched
var ErrWrongPassword = errors.New("wrong password")

// ErrCreateNoteFailed Error occures when the note could not be created
var ErrCreateNoteFailed = errors.New("note create failed")

// every note starts with a single view
const initialViews = 1

// CreateNoteRequest carries the validated input of a note creation
type CreateNoteRequest struct {
	Content        string
	Algorithm      envelope.Algorithm
	Password       string
	Expire         time.Duration
	ExpireOnView   bool
	RecipientEmail string
	SenderEmail    string
	EmailSubject   string
}

// NoteMeta is the non-secret result of a note creation
type NoteMeta struct {
	ID        string
	ExpiresAt time.Time
	Created   time.Time
}

// NoteStatus is the non-secret metadata of a stored note
type NoteStatus struct {
	ID               string
	RequiresPassword bool
	ExpiresAt        time.Time
	RemainingViews   int
	ExpireOnView     bool
}

// DecryptedNote is the result of a successful decrypt
type DecryptedNote struct {
	Content        string
	RemainingViews int
	ExpireOnView   bool
	SenderEmail    string
	EmailSubject   string
}

// NoteManager provides the secure note service on top of the durable store
type NoteManager struct {
	db             *sql.DB
	model          NoteModel
	hasher         hasher.PasswordHasher
	notifier       Notifier
	webExternalURL *url.URL
	logger         *zap.Logger
}

// NewNoteManager creates a new NoteManager
func NewNoteManager(
	db *sql.DB,
	model NoteModel,
	passwordHasher hasher.PasswordHasher,
	notifier Notifier,
	webExternalURL *url.URL,
	logger *zap.Logger,
) *NoteManager {
	return &NoteManager{
		db:             db,
		model:          model,
		hasher:         passwordHasher,
		notifier:       notifier,
		webExternalURL: webExternalURL,
		logger:         logger,
	}
}

// CreateNote encrypts the content under a freshly generated key sized to the
// algorithm, stores the note and fires the optional notification. The key is
// returned to the caller and never persisted.
func (m *NoteManager) CreateNote(ctx context.Context, req CreateNoteRequest) (*NoteMeta, key.Key, error) {
	keySize, err := req.Algorithm.KeySize()
	if err != nil {
		return nil, nil, err
	}

	k, err := key.NewGeneratedKey(keySize)
	if err != nil {
		return nil, nil, errors.Join(ErrCreateNoteFailed, err)
	}

	env, err := envelope.Encrypt(req.Algorithm, k.Get(), []byte(req.Content))
	if err != nil {
		return nil, nil, err
	}

	encryptedData, err := json.Marshal(env)
	if err != nil {
		return nil, nil, errors.Join(ErrCreateNoteFailed, err)
	}

	note := &models.Note{
		ID:             uuid.New().String(),
		EncryptedData:  encryptedData,
		ExpiresAt:      time.Now().Add(req.Expire),
		RemainingViews: initialViews,
		ExpireOnView:   req.ExpireOnView,
		SenderEmail:    toNullString(req.SenderEmail),
		EmailSubject:   toNullString(req.EmailSubject),
	}

	if req.Password != "" {
		passwordHash, err := m.hasher.Hash(req.Password)
		if err != nil {
			return nil, nil, errors.Join(ErrCreateNoteFailed, err)
		}
		note.RequiresPassword = true
		note.PasswordHash = toNullString(passwordHash)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, errors.Join(ErrCreateNoteFailed, err)
	}

	if err := m.model.CreateNote(ctx, tx, note); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, nil, errors.Join(err, rollbackErr)
		}
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, errors.Join(ErrCreateNoteFailed, err)
	}

	if req.RecipientEmail != "" {
		go m.notify(req, note.ID, k.String())
	}

	return &NoteMeta{
		ID:        note.ID,
		ExpiresAt: note.ExpiresAt,
		Created:   note.Created,
	}, *k, nil
}

// notify runs detached from the request, a slow or failing mail server never
// delays the creation response
func (m *NoteManager) notify(req CreateNoteRequest, id string, keyString string) {
	noteURL, err := urls.NoteURL(m.webExternalURL, id, keyString)
	if err != nil {
		m.logger.Error("build note url failed", zap.String("note", id), zap.Error(err))
		return
	}

	notification := NoteNotification{
		Recipient:        req.RecipientEmail,
		Sender:           req.SenderEmail,
		Subject:          req.EmailSubject,
		NoteURL:          noteURL.String(),
		Expire:           req.Expire,
		RequiresPassword: req.Password != "",
		Algorithm:        req.Algorithm,
		ExpireOnView:     req.ExpireOnView,
	}

	if err := m.notifier.NoteCreated(notification); err != nil {
		m.logger.Error("note notification failed", zap.String("note", id), zap.Error(err))
	}
}

// GetNoteStatus returns the non-secret metadata of a note. Reading an
// expired or exhausted note deletes the row and reports ErrNoteExpired.
func (m *NoteManager) GetNoteStatus(ctx context.Context, id string) (*NoteStatus, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	note, err := m.readValidNote(ctx, tx, id)
	if err != nil {
		if commitErr := tx.Commit(); commitErr != nil {
			return nil, errors.Join(err, commitErr)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &NoteStatus{
		ID:               note.ID,
		RequiresPassword: note.RequiresPassword,
		ExpiresAt:        note.ExpiresAt,
		RemainingViews:   note.RemainingViews,
		ExpireOnView:     note.ExpireOnView,
	}, nil
}

// DecryptNote reveals the note content. It checks the optional password
// gate, decrypts through the envelope codec and spends the view: an
// expire-on-view note is deleted immediately, otherwise remaining_views is
// decremented with a conditional update so concurrent reads can not spend
// the same view twice. Failed password or decrypt attempts leave the note
// untouched.
func (m *NoteManager) DecryptNote(ctx context.Context, id string, password string, k key.Key) (*DecryptedNote, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	note, err := m.readValidNote(ctx, tx, id)
	if err != nil {
		if commitErr := tx.Commit(); commitErr != nil {
			return nil, errors.Join(err, commitErr)
		}
		return nil, err
	}

	if note.RequiresPassword {
		if err := m.hasher.Compare(note.PasswordHash.String, password); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return nil, errors.Join(ErrWrongPassword, rollbackErr)
			}
			return nil, ErrWrongPassword
		}
	}

	var env envelope.Envelope
	if err := json.Unmarshal(note.EncryptedData, &env); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, errors.Join(err, rollbackErr)
		}
		return nil, errors.Join(envelope.ErrMalformedEnvelope, err)
	}

	plaintext, err := envelope.Decrypt(k, &env)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return nil, errors.Join(err, rollbackErr)
		}
		return nil, err
	}

	remainingViews := 0
	if note.ExpireOnView {
		if err := m.model.DeleteNote(ctx, tx, id); err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return nil, errors.Join(err, rollbackErr)
			}
			if errors.Is(err, models.ErrNoteNotFound) {
				return nil, ErrNoteExpired
			}
			return nil, err
		}
	} else {
		remainingViews, err = m.model.UseView(ctx, tx, id)
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return nil, errors.Join(err, rollbackErr)
			}
			if errors.Is(err, models.ErrNoteNotFound) {
				return nil, ErrNoteExpired
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &DecryptedNote{
		Content:        string(plaintext),
		RemainingViews: remainingViews,
		ExpireOnView:   note.ExpireOnView,
		SenderEmail:    note.SenderEmail.String,
		EmailSubject:   note.EmailSubject.String,
	}, nil
}

// DeleteNote removes a note by id
func (m *NoteManager) DeleteNote(ctx context.Context, id string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := m.model.DeleteNote(ctx, tx, id); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		if errors.Is(err, models.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	return tx.Commit()
}

// readValidNote fetches the note and enforces the expiry and view count
// rules, removing dead rows lazily
func (m *NoteManager) readValidNote(ctx context.Context, tx *sql.Tx, id string) (*models.Note, error) {
	note, err := m.model.ReadNote(ctx, tx, id)
	if err != nil {
		if errors.Is(err, models.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if err := validateNote(note); err != nil {
		if deleteErr := m.model.DeleteNote(ctx, tx, id); deleteErr != nil && !errors.Is(deleteErr, models.ErrNoteNotFound) {
			return nil, errors.Join(err, deleteErr)
		}
		return nil, err
	}

	return note, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
