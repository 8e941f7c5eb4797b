package table

import "strings"

// Key identifies one item in the single-table layout. Related records share a
// partition key so they can be fetched together with a sort-key prefix query.
type Key struct {
	PK string
	SK string
}

const (
	MetadataSK     = "METADATA"
	QuestionPrefix = "QUESTION#"
	AttemptPrefix  = "ATTEMPT#"
)

func QuizKey(quizID string) Key {
	return Key{PK: QuizPartition(quizID), SK: MetadataSK}
}

func QuizPartition(quizID string) string {
	return "QUIZ#" + quizID
}

func QuestionKey(quizID, questionID string) Key {
	return Key{PK: QuizPartition(quizID), SK: QuestionPrefix + questionID}
}

func UserKey(userID string) Key {
	return Key{PK: UserPartition(userID), SK: MetadataSK}
}

func UserPartition(userID string) string {
	return "USER#" + userID
}

// AttemptPartition groups all attempts of one user on one quiz.
func AttemptPartition(userID, quizID string) string {
	return "USER#" + userID + "#QUIZ#" + quizID
}

func AttemptKey(userID, quizID, attemptID string) Key {
	return Key{PK: AttemptPartition(userID, quizID), SK: AttemptPrefix + attemptID}
}

// AnswerPartition groups all answers recorded during one attempt.
func AnswerPartition(userID, quizID, attemptID string) string {
	return AttemptPartition(userID, quizID) + "#ATTEMPT#" + attemptID
}

func AnswerKey(userID, quizID, attemptID, questionID string) Key {
	return Key{PK: AnswerPartition(userID, quizID, attemptID), SK: QuestionPrefix + questionID}
}

// IDFromSK recovers the identifier a sort key carries after its kind prefix.
func IDFromSK(sk string) string {
	if i := strings.IndexByte(sk, '#'); i >= 0 {
		return sk[i+1:]
	}
	return sk
}
