package models

import "time"

// Attempt is one user's run through one quiz. QuestionOrder is fixed when the
// attempt is created; Progress indexes into it and CurrentQuestionID always
// equals QuestionOrder[Progress] while the attempt is active. DateFinished is
// stamped exactly once, when the attempt advances past its last question.
type Attempt struct {
	PK     string `bson:"pk" json:"-"`
	SK     string `bson:"sk" json:"-"`
	ID     string `bson:"-" json:"attemptId"`
	UserID string `bson:"-" json:"userId"`
	QuizID string `bson:"-" json:"quizId"`

	Score             int64      `bson:"score" json:"score"`
	DateStarted       time.Time  `bson:"dateStarted" json:"dateStarted"`
	DateFinished      *time.Time `bson:"dateFinished,omitempty" json:"dateFinished,omitempty"`
	QuestionOrder     []string   `bson:"questionOrder" json:"questionOrder"`
	CurrentQuestionID string     `bson:"currentQuestionId" json:"currentQuestionId"`
	Progress          int        `bson:"progress" json:"progress"`
}

// Finished reports whether the attempt reached its terminal state.
func (a *Attempt) Finished() bool {
	return a.DateFinished != nil
}
