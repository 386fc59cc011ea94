package manager

import "github.com/nalharbi/inspection-management/internal"

type CreateManagerDTO struct {
	Name       string `json:"name"`
	Rank       int    `json:"rank"`
	Department string `json:"department"`
}

// UpdateManagerDTO carries a partial update: nil fields are left untouched.
type UpdateManagerDTO struct {
	Name       *string `json:"name"`
	Rank       *int    `json:"rank"`
	Department *string `json:"department"`
}

func (d CreateManagerDTO) Validate() error {
	var messages []string
	if d.Name == "" {
		messages = append(messages, "name is required")
	}
	if !ValidRank(d.Rank) {
		messages = append(messages, "rank must be a number between 1 and 16")
	}
	if d.Department == "" {
		messages = append(messages, "department is required")
	}
	if len(messages) > 0 {
		return internal.NewValidationError(messages...)
	}
	return nil
}

func (d UpdateManagerDTO) Validate() error {
	var messages []string
	if d.Name != nil && *d.Name == "" {
		messages = append(messages, "name is required")
	}
	if d.Rank != nil && !ValidRank(*d.Rank) {
		messages = append(messages, "rank must be a number between 1 and 16")
	}
	if d.Department != nil && *d.Department == "" {
		messages = append(messages, "department is required")
	}
	if len(messages) > 0 {
		return internal.NewValidationError(messages...)
	}
	return nil
}
