package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"

	"github.com/google/uuid"
)

// pointsPerCorrect is the fixed score award for a correct answer.
const pointsPerCorrect = 100

// CurrentQuestion is the public view of the question an attempt points at.
// The correct answer never appears here.
type CurrentQuestion struct {
	QuestionID string   `json:"questionId"`
	Text       string   `json:"questionText"`
	Options    []string `json:"options"`
	Position   int      `json:"position"`
	Total      int      `json:"total"`
}

// AnswerResult reports the verdict of a submission together with the correct
// answer, which the client uses for feedback display.
type AnswerResult struct {
	Verdict       string `json:"status"`
	CorrectAnswer string `json:"correctAnswer"`
}

// AdvanceResult is either the next question or the terminal completed state.
type AdvanceResult struct {
	Completed    bool             `json:"completed"`
	Question     *CurrentQuestion `json:"question,omitempty"`
	DateFinished *time.Time       `json:"dateFinished,omitempty"`
}

type TimeTaken struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

type AttemptSummary struct {
	Score        int64      `json:"score"`
	DateStarted  time.Time  `json:"dateStarted"`
	DateFinished *time.Time `json:"dateFinished,omitempty"`
	TimeTaken    *TimeTaken `json:"timeTaken,omitempty"`
}

// AttemptService owns the lifecycle of a quiz attempt: creation with a
// shuffled question order, answer scoring, and advancement to completion.
type AttemptService struct {
	Attempts  *repository.AttemptRepository
	Questions *repository.QuestionRepository
	Answers   *repository.AnswerRepository
}

func NewAttemptService(attempts *repository.AttemptRepository, questions *repository.QuestionRepository, answers *repository.AnswerRepository) *AttemptService {
	return &AttemptService{Attempts: attempts, Questions: questions, Answers: answers}
}

// StartAttempt creates an attempt with a uniformly random permutation of the
// quiz's question ids. The permutation is fixed for the attempt's lifetime.
func (s *AttemptService) StartAttempt(ctx context.Context, userID, quizID string) (*models.Attempt, error) {
	if userID == "" || quizID == "" {
		return nil, validationf("userId and quizId are required")
	}

	questions, err := s.Questions.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, notFoundf("no questions found for the quiz")
	}

	order := make([]string, len(questions))
	for i, q := range questions {
		order[i] = q.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	attempt := &models.Attempt{
		ID:                uuid.NewString(),
		UserID:            userID,
		QuizID:            quizID,
		Score:             0,
		DateStarted:       time.Now().UTC(),
		QuestionOrder:     order,
		CurrentQuestionID: order[0],
		Progress:          0,
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetAttempt returns the full attempt record, state-tracking fields included.
func (s *AttemptService) GetAttempt(ctx context.Context, userID, quizID, attemptID string) (*models.Attempt, error) {
	return s.findAttempt(ctx, userID, quizID, attemptID)
}

// GetCurrentQuestion resolves the attempt's current question. The response
// carries the 1-based position and the total question count but never the
// correct answer.
func (s *AttemptService) GetCurrentQuestion(ctx context.Context, userID, quizID, attemptID string) (*CurrentQuestion, error) {
	attempt, err := s.findAttempt(ctx, userID, quizID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return nil, invalidStatef("attempt is already completed")
	}
	return s.questionAt(ctx, attempt, attempt.Progress)
}

// SubmitAnswer validates the submission against the attempt's current
// question, scores it by exact match, and durably records the answer. Any
// non-matching value, the empty string included, is a fail. A pass raises the
// score by pointsPerCorrect through an atomic increment, so concurrent
// submissions for the same attempt cannot lose updates.
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID, quizID, attemptID, questionID, answerValue string) (*AnswerResult, error) {
	if questionID == "" {
		return nil, validationf("questionId is required")
	}

	attempt, err := s.findAttempt(ctx, userID, quizID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return nil, invalidStatef("attempt is already completed")
	}
	if questionID != attempt.CurrentQuestionID {
		return nil, invalidStatef("answer targets a question that is not current")
	}

	question, err := s.Questions.FindByID(ctx, quizID, questionID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("question not found")
	}
	if err != nil {
		return nil, err
	}

	verdict := models.VerdictFail
	if answerValue == question.CorrectAnswer {
		verdict = models.VerdictPass
		if err := s.Attempts.IncrementScore(ctx, userID, quizID, attemptID, pointsPerCorrect); err != nil {
			return nil, err
		}
	}

	answer := &models.Answer{
		QuestionID: questionID,
		UserAnswer: answerValue,
		Verdict:    verdict,
	}
	if err := s.Answers.Create(ctx, userID, quizID, attemptID, answer); err != nil {
		return nil, err
	}

	return &AnswerResult{Verdict: verdict, CorrectAnswer: question.CorrectAnswer}, nil
}

// Advance moves the attempt to its next question, or stamps the completion
// timestamp when the last question has been passed. Both writes are
// conditional on the observed state, so a concurrent Advance loses cleanly
// instead of skipping a question or moving the timestamp.
func (s *AttemptService) Advance(ctx context.Context, userID, quizID, attemptID string) (*AdvanceResult, error) {
	attempt, err := s.findAttempt(ctx, userID, quizID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return nil, invalidStatef("attempt is already completed")
	}
	if len(attempt.QuestionOrder) == 0 {
		return nil, invalidStatef("attempt has no question order")
	}

	if attempt.Progress+1 < len(attempt.QuestionOrder) {
		next := attempt.QuestionOrder[attempt.Progress+1]
		err := s.Attempts.AdvanceTo(ctx, userID, quizID, attemptID, attempt.Progress, next)
		if errors.Is(err, table.ErrConditionFailed) {
			return nil, invalidStatef("attempt advanced concurrently")
		}
		if err != nil {
			return nil, err
		}
		question, err := s.questionAt(ctx, attempt, attempt.Progress+1)
		if err != nil {
			return nil, err
		}
		return &AdvanceResult{Question: question}, nil
	}

	finishedAt := time.Now().UTC()
	err = s.Attempts.Complete(ctx, userID, quizID, attemptID, finishedAt)
	if errors.Is(err, table.ErrConditionFailed) {
		return nil, invalidStatef("attempt is already completed")
	}
	if err != nil {
		return nil, err
	}
	return &AdvanceResult{Completed: true, DateFinished: &finishedAt}, nil
}

// GetAttemptSummary reports the score and timestamps. For a finished attempt
// the elapsed wall-clock time is broken into whole minutes and remainder
// seconds.
func (s *AttemptService) GetAttemptSummary(ctx context.Context, userID, quizID, attemptID string) (*AttemptSummary, error) {
	attempt, err := s.findAttempt(ctx, userID, quizID, attemptID)
	if err != nil {
		return nil, err
	}
	summary := &AttemptSummary{
		Score:        attempt.Score,
		DateStarted:  attempt.DateStarted,
		DateFinished: attempt.DateFinished,
	}
	if attempt.Finished() {
		elapsed := attempt.DateFinished.Sub(attempt.DateStarted)
		summary.TimeTaken = &TimeTaken{
			Minutes: int(elapsed.Minutes()),
			Seconds: int(elapsed.Seconds()) % 60,
		}
	}
	return summary, nil
}

func (s *AttemptService) findAttempt(ctx context.Context, userID, quizID, attemptID string) (*models.Attempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, userID, quizID, attemptID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("user attempt not found")
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AttemptService) questionAt(ctx context.Context, attempt *models.Attempt, position int) (*CurrentQuestion, error) {
	if position < 0 || position >= len(attempt.QuestionOrder) {
		return nil, invalidStatef("attempt progress points outside the question order")
	}
	questionID := attempt.QuestionOrder[position]
	question, err := s.Questions.FindByID(ctx, attempt.QuizID, questionID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("current question not found")
	}
	if err != nil {
		return nil, err
	}
	return &CurrentQuestion{
		QuestionID: question.ID,
		Text:       question.Text,
		Options:    question.Options,
		Position:   position + 1,
		Total:      len(attempt.QuestionOrder),
	}, nil
}
