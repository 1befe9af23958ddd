package reminder

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Reminder struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Repeat      string     `json:"repeat,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateReminderRequest represents the payload for a new reminder.
type CreateReminderRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Repeat      string     `json:"repeat"`
}

// UpdateReminderRequest carries a partial update; nil fields are left untouched.
type UpdateReminderRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Subject     *string    `json:"subject,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Repeat      *string    `json:"repeat,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// Page is one page of a user's reminders.
type Page struct {
	Items []*Reminder `json:"items"`
	Total int         `json:"total"`
}

// ApplyDefaults fills optional fields left empty by the client.
func (req *CreateReminderRequest) ApplyDefaults() {
	if req.Subject == "" {
		req.Subject = "General"
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if req.Repeat == "" {
		req.Repeat = "none"
	}
}

// Apply copies the non-nil fields of req onto r.
func (req *UpdateReminderRequest) Apply(r *Reminder) {
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Subject != nil {
		r.Subject = *req.Subject
	}
	if req.DueDate != nil {
		r.DueDate = req.DueDate
	}
	if req.Priority != nil {
		r.Priority = *req.Priority
	}
	if req.Repeat != nil {
		r.Repeat = *req.Repeat
	}
	if req.Completed != nil {
		r.Completed = *req.Completed
	}
}
