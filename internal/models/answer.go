package models

const (
	VerdictPass = "pass"
	VerdictFail = "fail"
)

// Answer is the durable record of one submission during an attempt, one per
// question. It is written once and never mutated.
type Answer struct {
	PK         string `bson:"pk" json:"-"`
	SK         string `bson:"sk" json:"-"`
	QuestionID string `bson:"-" json:"questionId"`
	UserAnswer string `bson:"userAnswer" json:"userAnswer"`
	Verdict    string `bson:"status" json:"status"`

	// Joined from the question record for answer review responses.
	QuestionText  string `bson:"-" json:"questionText,omitempty"`
	CorrectAnswer string `bson:"-" json:"correctAnswer,omitempty"`
}
