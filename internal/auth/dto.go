package auth

import "github.com/nalharbi/inspection-management/internal"

type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d RegisterDTO) Validate() error {
	var messages []string
	if d.Username == "" {
		messages = append(messages, "username is required")
	}
	if len(d.Password) < 6 {
		messages = append(messages, "password must be at least 6 characters")
	}
	if len(messages) > 0 {
		return internal.NewValidationError(messages...)
	}
	return nil
}

func (d LoginDTO) Validate() error {
	var messages []string
	if d.Username == "" {
		messages = append(messages, "username is required")
	}
	if d.Password == "" {
		messages = append(messages, "password is required")
	}
	if len(messages) > 0 {
		return internal.NewValidationError(messages...)
	}
	return nil
}
