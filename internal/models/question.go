package models

type Question struct {
	PK            string   `bson:"pk" json:"-"`
	SK            string   `bson:"sk" json:"-"`
	ID            string   `bson:"-" json:"questionId"`
	Text          string   `bson:"questionText" json:"questionText"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer string   `bson:"correctAnswer" json:"correctAnswer,omitempty"`
}
