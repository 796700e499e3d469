package entity

import "time"

// Gift is a catalogue entry offered for giving away.
type Gift struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	AgeYears    int       `json:"age_years"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
