package summary

import "time"

// MaxContentLength is the largest text accepted for summarization.
const MaxContentLength = 50000

type Length string

const (
	LengthBrief    Length = "brief"
	LengthDetailed Length = "detailed"
)

// Words returns how many words a summary of this length keeps.
func (l Length) Words() int {
	if l == LengthDetailed {
		return 500
	}
	return 200
}

type Options struct {
	Length            Length `json:"length"`
	IncludeKeyPoints  *bool  `json:"includeKeyPoints,omitempty"`
	GenerateQuestions bool   `json:"generateQuestions"`
}

// Normalized fills defaults so equivalent option sets compare equal.
func (o Options) Normalized() Options {
	if o.Length != LengthDetailed {
		o.Length = LengthBrief
	}
	if o.IncludeKeyPoints == nil {
		t := true
		o.IncludeKeyPoints = &t
	}
	return o
}

type GenerateRequest struct {
	Content string  `json:"content"`
	Options Options `json:"options"`
}

type TextStats struct {
	Length int `json:"length"`
	Words  int `json:"words"`
}

type Text struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
	Words  int    `json:"words"`
}

// Generated is the result of summarizing free-form content.
type Generated struct {
	Original       TextStats `json:"original"`
	Summary        Text      `json:"summary"`
	KeyPoints      []string  `json:"keyPoints,omitempty"`
	StudyQuestions []string  `json:"studyQuestions,omitempty"`
}

type Summary struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	OriginalLength int       `json:"originalLength,omitempty"`
	SummaryLength  int       `json:"summaryLength"`
	KeyPoints      []string  `json:"keyPoints,omitempty"`
	FullSummary    string    `json:"fullSummary,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
