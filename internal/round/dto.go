package round

import "github.com/nalharbi/inspection-management/internal"

type CreateRoundDTO struct {
	ManagerID string `json:"manager_id"`
	Location  string `json:"location"`
	Day       string `json:"day"`
	Hijri     *Hijri `json:"hijri,omitempty"`
}

func (d CreateRoundDTO) Validate() error {
	var messages []string
	if d.ManagerID == "" {
		messages = append(messages, "manager id is required")
	}
	if d.Location == "" {
		messages = append(messages, "location is required")
	}
	if d.Day == "" {
		messages = append(messages, "day is required")
	}
	if len(messages) > 0 {
		return internal.NewValidationError(messages...)
	}
	return nil
}
