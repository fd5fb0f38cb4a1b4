package service

import "unicode/utf8"

const defaultPasswordMinLength = 8

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key i18n 文案 key
func (e passwordPolicyError) Key() string {
	return e.key
}

// Args i18n 格式化参数
func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

func validatePassword(minLength int, password string) error {
	if minLength <= 0 {
		minLength = defaultPasswordMinLength
	}
	if utf8.RuneCountInString(password) < minLength {
		return passwordPolicyError{key: "error.password_too_short", args: []interface{}{minLength}}
	}
	return nil
}
