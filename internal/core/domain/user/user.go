package user

import "time"

// EducationLevel describes the learner's current stage.
type EducationLevel string

const (
	EducationSchool     EducationLevel = "school"
	EducationHighSchool EducationLevel = "high_school"
	EducationUniversity EducationLevel = "university"
)

type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

type User struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	EducationLevel EducationLevel `json:"educationLevel"`
	Subjects       []string       `json:"subjects,omitempty"`
	Preferences    *Preferences   `json:"preferences,omitempty"`
	JoinedAt       *time.Time     `json:"joinedAt,omitempty"`
	CreatedAt      *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

// UpdateUserRequest carries a partial profile update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name           *string         `json:"name,omitempty"`
	Email          *string         `json:"email,omitempty"`
	EducationLevel *EducationLevel `json:"educationLevel,omitempty"`
	Subjects       []string        `json:"subjects,omitempty"`
}

// Apply copies the non-nil fields of req onto u.
func (req *UpdateUserRequest) Apply(u *User) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.EducationLevel != nil {
		u.EducationLevel = *req.EducationLevel
	}
	if req.Subjects != nil {
		u.Subjects = req.Subjects
	}
}

type ReminderStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

type SummaryStats struct {
	Total         int `json:"total"`
	AverageLength int `json:"averageLength"`
}

type StudyTime struct {
	ThisWeek  float64 `json:"thisWeek"`
	ThisMonth float64 `json:"thisMonth"`
	Trend     string  `json:"trend"`
}

type SubjectProgress struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Progress int    `json:"progress"`
}

// Stats aggregates a user's study activity.
type Stats struct {
	UserID    int64             `json:"userId"`
	Reminders ReminderStats     `json:"reminders"`
	Summaries SummaryStats      `json:"summaries"`
	StudyTime StudyTime         `json:"studyTime"`
	Subjects  []SubjectProgress `json:"subjects"`
}
