package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Owner is the populated user reference stored on a project.
type Owner struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

type Project struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"` // not-started | in-progress | completed
	ImageID     string    `json:"imageId,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Owner       Owner     `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Image is an uploaded picture as returned by the image host.
type Image struct {
	ImageID  string `json:"imageId"`
	ImageURL string `json:"imageUrl"`
}
