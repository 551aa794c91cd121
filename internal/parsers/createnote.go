package parsers

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/sealnote/sealnote/internal/envelope"
	"github.com/sealnote/sealnote/internal/parsers/expiration"
)

type CreateNoteParser struct {
	defaultExpire    time.Duration
	maxExpireSeconds int
}

type CreateNoteRequestData struct {
	Content        string
	Algorithm      envelope.Algorithm
	Password       string
	Expiration     time.Duration
	ExpireOnView   bool
	RecipientEmail string
	SenderEmail    string
	EmailSubject   string
}

func NewCreateNoteParser(defaultExpire time.Duration, maxExpireSeconds int) CreateNoteParser {
	return CreateNoteParser{
		defaultExpire:    defaultExpire,
		maxExpireSeconds: maxExpireSeconds,
	}
}

func parseEmail(address string) (string, error) {
	if address == "" {
		return "", nil
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return "", errors.Join(ErrInvalidEmail, err)
	}

	return parsed.Address, nil
}

func (c CreateNoteParser) Parse(r *http.Request) (*CreateNoteRequestData, error) {
	var body struct {
		Content        string `json:"content"`
		Algorithm      string `json:"encryptionAlgorithm"`
		Password       string `json:"password"`
		ExpiresIn      int    `json:"expiresIn"`
		ExpireOnView   bool   `json:"expireOnView"`
		RecipientEmail string `json:"recipientEmail"`
		SenderEmail    string `json:"senderEmail"`
		EmailSubject   string `json:"emailSubject"`
	}

	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	if body.Content == "" {
		return nil, ErrInvalidData
	}

	algorithm, err := envelope.ParseAlgorithm(body.Algorithm)
	if err != nil {
		return nil, err
	}

	expire, err := expiration.Calculate(body.ExpiresIn, c.defaultExpire, c.maxExpireSeconds)
	if err != nil {
		return nil, err
	}

	recipient, err := parseEmail(body.RecipientEmail)
	if err != nil {
		return nil, err
	}

	sender, err := parseEmail(body.SenderEmail)
	if err != nil {
		return nil, err
	}

	return &CreateNoteRequestData{
		Content:        body.Content,
		Algorithm:      algorithm,
		Password:       body.Password,
		Expiration:     expire,
		ExpireOnView:   body.ExpireOnView,
		RecipientEmail: recipient,
		SenderEmail:    sender,
		EmailSubject:   body.EmailSubject,
	}, nil
}
