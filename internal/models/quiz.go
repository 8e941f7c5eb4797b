package models

// Quiz is the metadata row of a quiz partition. Its questions live in the
// same partition under QUESTION# sort keys.
type Quiz struct {
	PK          string `bson:"pk" json:"-"`
	SK          string `bson:"sk" json:"-"`
	ID          string `bson:"-" json:"quizId"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Visible     bool   `bson:"visible" json:"visible"`

	// QuestionCount is derived at read time, never stored.
	QuestionCount int `bson:"-" json:"questionCount,omitempty"`
}
