package parsers

import (
	"net/http"
	"time"

	"github.com/sealnote/sealnote/internal/parsers/expiration"
	"github.com/sealnote/sealnote/internal/parsers/usecount"
)

type CreateShareParser struct {
	defaultExpire    time.Duration
	maxExpireSeconds int
}

type CreateShareRequestData struct {
	Password   string
	Note       string
	Expiration time.Duration
	UseCount   int
}

func NewCreateShareParser(defaultExpire time.Duration, maxExpireSeconds int) CreateShareParser {
	return CreateShareParser{
		defaultExpire:    defaultExpire,
		maxExpireSeconds: maxExpireSeconds,
	}
}

func (c CreateShareParser) Parse(r *http.Request) (*CreateShareRequestData, error) {
	var body struct {
		Password  string `json:"password"`
		Note      string `json:"note"`
		ExpiresIn int    `json:"expiresIn"`
		UseCount  int    `json:"useCount"`
	}

	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	if body.Password == "" {
		return nil, ErrInvalidData
	}

	expire, err := expiration.Calculate(body.ExpiresIn, c.defaultExpire, c.maxExpireSeconds)
	if err != nil {
		return nil, err
	}

	useCount, err := usecount.Parse(body.UseCount)
	if err != nil {
		return nil, err
	}

	return &CreateShareRequestData{
		Password:   body.Password,
		Note:       body.Note,
		Expiration: expire,
		UseCount:   useCount,
	}, nil
}
