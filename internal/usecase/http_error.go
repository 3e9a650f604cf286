package usecase

import (
	"errors"
	"fmt"
)

// usecase層からhandler層へ渡すエラー。
// エラー種別（404/409/400…）をStatusにそのまま持たせ、
// handler側はwriteErrorで写すだけにする。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

// AsHTTPErrorはerrチェーンからHTTPErrorを取り出す
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
