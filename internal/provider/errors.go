package provider

import (
	"errors"
	"fmt"

	"sketchui-backend/internal/model"
)

// ErrMissingCredential 所选提供方未配置 API Key
var ErrMissingCredential = errors.New("missing credential")

// ProviderError 提供方调用失败。HTTPStatus 为 0 表示没有收到 HTTP 响应
type ProviderError struct {
	Provider   model.Provider
	HTTPStatus int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewMissingCredentialError 构造未配置 API Key 的错误，errors.Is(err, ErrMissingCredential) 为 true
func NewMissingCredentialError(p model.Provider) *ProviderError {
	return &ProviderError{
		Provider: p,
		Message:  ErrMissingCredential.Error(),
		Err:      ErrMissingCredential,
	}
}
