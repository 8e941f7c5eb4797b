package service

import (
	"context"
	"sort"
	"testing"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"
)

type fixture struct {
	store    *table.MemStore
	attempts *AttemptService
	answers  *AnswerService
	quizzes  *QuizService
}

func newFixture() *fixture {
	store := table.NewMemStore()
	quizRepo := repository.NewQuizRepository(store)
	questionRepo := repository.NewQuestionRepository(store)
	attemptRepo := repository.NewAttemptRepository(store)
	answerRepo := repository.NewAnswerRepository(store)
	return &fixture{
		store:    store,
		attempts: NewAttemptService(attemptRepo, questionRepo, answerRepo),
		answers:  NewAnswerService(answerRepo, questionRepo),
		quizzes:  NewQuizService(quizRepo, questionRepo),
	}
}

// seedQuiz writes a quiz with one question per entry of correctAnswers,
// returning the quiz id and question ids keyed by their correct answer.
func (f *fixture) seedQuiz(t *testing.T, correctAnswers []string) (string, map[string]string) {
	t.Helper()
	ctx := context.Background()
	quizRepo := repository.NewQuizRepository(f.store)
	questionRepo := repository.NewQuestionRepository(f.store)

	quiz := &models.Quiz{ID: "quiz-1", Title: "Python Basics", Visible: true}
	if err := quizRepo.Create(ctx, quiz); err != nil {
		t.Fatalf("seeding quiz failed: %v", err)
	}

	answerByQuestion := make(map[string]string, len(correctAnswers))
	for i, answer := range correctAnswers {
		question := &models.Question{
			ID:            "question-" + string(rune('a'+i)),
			Text:          "What prints?",
			Options:       []string{answer, "other", "neither"},
			CorrectAnswer: answer,
		}
		if err := questionRepo.Create(ctx, quiz.ID, question); err != nil {
			t.Fatalf("seeding question failed: %v", err)
		}
		answerByQuestion[question.ID] = answer
	}
	return quiz.ID, answerByQuestion
}

func TestStartAttemptShufflesAllQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, byQuestion := f.seedQuiz(t, []string{"def", "loop", "list", "dict", "set"})

	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	if attempt.Progress != 0 {
		t.Errorf("expected progress 0, got %d", attempt.Progress)
	}
	if attempt.Score != 0 {
		t.Errorf("expected score 0, got %d", attempt.Score)
	}
	if len(attempt.QuestionOrder) != len(byQuestion) {
		t.Fatalf("expected %d questions in order, got %d", len(byQuestion), len(attempt.QuestionOrder))
	}
	if attempt.CurrentQuestionID != attempt.QuestionOrder[0] {
		t.Errorf("currentQuestionId %s does not match questionOrder[0] %s", attempt.CurrentQuestionID, attempt.QuestionOrder[0])
	}
	if attempt.Finished() {
		t.Error("new attempt must not be finished")
	}

	// The order is a permutation of exactly the quiz's question ids.
	seen := make(map[string]int)
	for _, id := range attempt.QuestionOrder {
		seen[id]++
	}
	for id := range byQuestion {
		if seen[id] != 1 {
			t.Errorf("question %s appears %d times in order", id, seen[id])
		}
	}

	// The permutation is fixed: re-fetching returns the same ordering.
	refetched, err := f.attempts.GetAttempt(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	for i := range attempt.QuestionOrder {
		if refetched.QuestionOrder[i] != attempt.QuestionOrder[i] {
			t.Fatalf("question order changed on re-fetch at index %d", i)
		}
	}
}

func TestStartAttemptEmptyQuiz(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizRepo := repository.NewQuizRepository(f.store)
	if err := quizRepo.Create(ctx, &models.Quiz{ID: "empty-quiz", Title: "Empty", Visible: true}); err != nil {
		t.Fatalf("seeding quiz failed: %v", err)
	}

	_, err := f.attempts.StartAttempt(ctx, "user-1", "empty-quiz")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	// No attempt record was written.
	items, err := f.store.Query(ctx, table.AttemptPartition("user-1", "empty-quiz"), "")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no attempt records, found %d", len(items))
	}
}

func TestSubmitAnswerScoring(t *testing.T) {
	testCases := []struct {
		name        string
		submit      func(correct string) string
		wantVerdict string
		wantScore   int64
	}{
		{"exact match passes", func(correct string) string { return correct }, models.VerdictPass, 100},
		{"wrong value fails", func(string) string { return "wrong" }, models.VerdictFail, 0},
		{"case differs fails", func(correct string) string { return "DEF" }, models.VerdictFail, 0},
		{"empty submission fails", func(string) string { return "" }, models.VerdictFail, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			quizID, byQuestion := f.seedQuiz(t, []string{"def"})

			attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
			if err != nil {
				t.Fatalf("StartAttempt failed: %v", err)
			}
			current := attempt.CurrentQuestionID
			correct := byQuestion[current]

			result, err := f.attempts.SubmitAnswer(ctx, "user-1", quizID, attempt.ID, current, tc.submit(correct))
			if err != nil {
				t.Fatalf("SubmitAnswer failed: %v", err)
			}
			if result.Verdict != tc.wantVerdict {
				t.Errorf("expected verdict %s, got %s", tc.wantVerdict, result.Verdict)
			}
			if result.CorrectAnswer != correct {
				t.Errorf("expected correct answer %q in result, got %q", correct, result.CorrectAnswer)
			}

			refetched, err := f.attempts.GetAttempt(ctx, "user-1", quizID, attempt.ID)
			if err != nil {
				t.Fatalf("GetAttempt failed: %v", err)
			}
			if refetched.Score != tc.wantScore {
				t.Errorf("expected score %d, got %d", tc.wantScore, refetched.Score)
			}

			// The answer is durably recorded either way.
			answers, err := f.answers.ListAnswers(ctx, "user-1", quizID, attempt.ID)
			if err != nil {
				t.Fatalf("ListAnswers failed: %v", err)
			}
			if len(answers) != 1 {
				t.Fatalf("expected 1 answer record, got %d", len(answers))
			}
			if answers[0].Verdict != tc.wantVerdict {
				t.Errorf("stored verdict %s, expected %s", answers[0].Verdict, tc.wantVerdict)
			}
		})
	}
}

func TestSubmitAnswerNonCurrentQuestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, _ := f.seedQuiz(t, []string{"def", "loop"})

	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	notCurrent := attempt.QuestionOrder[1]

	_, err = f.attempts.SubmitAnswer(ctx, "user-1", quizID, attempt.ID, notCurrent, "anything")
	if KindOf(err) != KindInvalidState {
		t.Fatalf("expected InvalidState, got %v", err)
	}

	// No answer record and no score change.
	answers, err := f.answers.ListAnswers(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("expected no answer records, got %d", len(answers))
	}
	refetched, _ := f.attempts.GetAttempt(ctx, "user-1", quizID, attempt.ID)
	if refetched.Score != 0 {
		t.Errorf("expected score unchanged, got %d", refetched.Score)
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, _ := f.seedQuiz(t, []string{"def"})
	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	if _, err := f.attempts.SubmitAnswer(ctx, "user-1", quizID, attempt.ID, "", "x"); KindOf(err) != KindValidation {
		t.Errorf("expected Validation for empty questionId, got %v", err)
	}

	// An empty answer value is a submission, not a validation failure.
	result, err := f.attempts.SubmitAnswer(ctx, "user-1", quizID, attempt.ID, attempt.CurrentQuestionID, "")
	if err != nil {
		t.Fatalf("SubmitAnswer with empty value failed: %v", err)
	}
	if result.Verdict != models.VerdictFail {
		t.Errorf("expected verdict %s for empty value, got %s", models.VerdictFail, result.Verdict)
	}
}

func TestAdvanceWalksEveryQuestionOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, _ := f.seedQuiz(t, []string{"def", "loop", "list", "dict"})

	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	visited := []string{attempt.CurrentQuestionID}
	for i := 1; i < len(attempt.QuestionOrder); i++ {
		result, err := f.attempts.Advance(ctx, "user-1", quizID, attempt.ID)
		if err != nil {
			t.Fatalf("Advance %d failed: %v", i, err)
		}
		if result.Completed {
			t.Fatalf("completed early at advance %d", i)
		}
		if result.Question.Position != i+1 {
			t.Errorf("expected position %d, got %d", i+1, result.Question.Position)
		}
		if result.Question.Total != len(attempt.QuestionOrder) {
			t.Errorf("expected total %d, got %d", len(attempt.QuestionOrder), result.Question.Total)
		}
		visited = append(visited, result.Question.QuestionID)
	}

	for i, id := range attempt.QuestionOrder {
		if visited[i] != id {
			t.Errorf("visited[%d] = %s, expected %s", i, visited[i], id)
		}
	}

	// Final advance completes the attempt.
	result, err := f.attempts.Advance(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("final Advance failed: %v", err)
	}
	if !result.Completed {
		t.Fatal("expected terminal completed result")
	}
	if result.DateFinished == nil {
		t.Fatal("expected dateFinished to be set")
	}

	refetched, _ := f.attempts.GetAttempt(ctx, "user-1", quizID, attempt.ID)
	if !refetched.Finished() {
		t.Fatal("expected attempt to be finished")
	}
	if refetched.DateFinished.Before(refetched.DateStarted) {
		t.Error("dateFinished is before dateStarted")
	}

	// Completion is one-way.
	if _, err := f.attempts.Advance(ctx, "user-1", quizID, attempt.ID); KindOf(err) != KindInvalidState {
		t.Errorf("expected InvalidState after completion, got %v", err)
	}
}

func TestAdvanceCorruptQuestionOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	attemptRepo := repository.NewAttemptRepository(f.store)

	// A stale record with no question order must be rejected, not paniced on.
	stale := &models.Attempt{ID: "a1", UserID: "user-1", QuizID: "quiz-1", Progress: 0}
	if err := attemptRepo.Create(ctx, stale); err != nil {
		t.Fatalf("seeding stale attempt failed: %v", err)
	}

	if _, err := f.attempts.Advance(ctx, "user-1", "quiz-1", "a1"); KindOf(err) != KindInvalidState {
		t.Errorf("expected InvalidState for empty question order, got %v", err)
	}
}

func TestGetCurrentQuestionCorruptAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	attemptRepo := repository.NewAttemptRepository(f.store)
	quizID, _ := f.seedQuiz(t, []string{"def"})

	// Empty question order and out-of-range progress both surface as
	// InvalidState instead of panicking on the slice index.
	empty := &models.Attempt{ID: "a1", UserID: "user-1", QuizID: quizID, Progress: 0}
	if err := attemptRepo.Create(ctx, empty); err != nil {
		t.Fatalf("seeding attempt failed: %v", err)
	}
	if _, err := f.attempts.GetCurrentQuestion(ctx, "user-1", quizID, "a1"); KindOf(err) != KindInvalidState {
		t.Errorf("expected InvalidState for empty question order, got %v", err)
	}

	overrun := &models.Attempt{ID: "a2", UserID: "user-1", QuizID: quizID, QuestionOrder: []string{"question-a"}, CurrentQuestionID: "question-a", Progress: 3}
	if err := attemptRepo.Create(ctx, overrun); err != nil {
		t.Fatalf("seeding attempt failed: %v", err)
	}
	if _, err := f.attempts.GetCurrentQuestion(ctx, "user-1", quizID, "a2"); KindOf(err) != KindInvalidState {
		t.Errorf("expected InvalidState for out-of-range progress, got %v", err)
	}
}

func TestGetCurrentQuestionIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, _ := f.seedQuiz(t, []string{"def", "loop"})
	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	first, err := f.attempts.GetCurrentQuestion(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetCurrentQuestion failed: %v", err)
	}
	second, err := f.attempts.GetCurrentQuestion(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetCurrentQuestion failed: %v", err)
	}

	if first.QuestionID != second.QuestionID || first.Position != second.Position || first.Total != second.Total || first.Text != second.Text {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if first.Position != 1 {
		t.Errorf("expected 1-based position 1, got %d", first.Position)
	}
	if first.Total != 2 {
		t.Errorf("expected total 2, got %d", first.Total)
	}
}

func TestGetCurrentQuestionHidesCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, byQuestion := f.seedQuiz(t, []string{"def"})
	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	question, err := f.attempts.GetCurrentQuestion(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetCurrentQuestion failed: %v", err)
	}
	// The public view has no correct-answer field at all; its options must
	// still include the correct value among the choices.
	correct := byQuestion[question.QuestionID]
	found := false
	for _, opt := range question.Options {
		if opt == correct {
			found = true
		}
	}
	if !found {
		t.Error("options do not include the correct value")
	}
}

func TestAttemptNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	if _, err := f.attempts.GetAttempt(ctx, "u", "q", "missing"); KindOf(err) != KindNotFound {
		t.Errorf("GetAttempt: expected NotFound, got %v", err)
	}
	if _, err := f.attempts.GetCurrentQuestion(ctx, "u", "q", "missing"); KindOf(err) != KindNotFound {
		t.Errorf("GetCurrentQuestion: expected NotFound, got %v", err)
	}
	if _, err := f.attempts.SubmitAnswer(ctx, "u", "q", "missing", "x", "y"); KindOf(err) != KindNotFound {
		t.Errorf("SubmitAnswer: expected NotFound, got %v", err)
	}
	if _, err := f.attempts.Advance(ctx, "u", "q", "missing"); KindOf(err) != KindNotFound {
		t.Errorf("Advance: expected NotFound, got %v", err)
	}
	if _, err := f.attempts.GetAttemptSummary(ctx, "u", "q", "missing"); KindOf(err) != KindNotFound {
		t.Errorf("GetAttemptSummary: expected NotFound, got %v", err)
	}
}

func TestAttemptSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, byQuestion := f.seedQuiz(t, []string{"def"})
	attempt, err := f.attempts.StartAttempt(ctx, "user-1", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	summary, err := f.attempts.GetAttemptSummary(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetAttemptSummary failed: %v", err)
	}
	if summary.TimeTaken != nil || summary.DateFinished != nil {
		t.Error("unfinished attempt must not report timeTaken or dateFinished")
	}

	correct := byQuestion[attempt.CurrentQuestionID]
	if _, err := f.attempts.SubmitAnswer(ctx, "user-1", quizID, attempt.ID, attempt.CurrentQuestionID, correct); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if _, err := f.attempts.Advance(ctx, "user-1", quizID, attempt.ID); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	summary, err = f.attempts.GetAttemptSummary(ctx, "user-1", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("GetAttemptSummary failed: %v", err)
	}
	if summary.Score != 100 {
		t.Errorf("expected score 100, got %d", summary.Score)
	}
	if summary.DateFinished == nil || summary.TimeTaken == nil {
		t.Fatal("finished attempt must report dateFinished and timeTaken")
	}
	if summary.TimeTaken.Minutes != 0 || summary.TimeTaken.Seconds < 0 || summary.TimeTaken.Seconds > 59 {
		t.Errorf("implausible timeTaken: %+v", summary.TimeTaken)
	}
}

// Full scenario: three questions answered in shuffled order, two correctly.
func TestAttemptScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID, byQuestion := f.seedQuiz(t, []string{"def", "loop", "list"})

	attempt, err := f.attempts.StartAttempt(ctx, "user-7", quizID)
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	// Answer the first and third questions correctly, the second wrong.
	wantScores := []int64{100, 100, 200}
	for i := 0; i < 3; i++ {
		current, err := f.attempts.GetCurrentQuestion(ctx, "user-7", quizID, attempt.ID)
		if err != nil {
			t.Fatalf("GetCurrentQuestion %d failed: %v", i, err)
		}
		value := byQuestion[current.QuestionID]
		if i == 1 {
			value = "x"
		}
		result, err := f.attempts.SubmitAnswer(ctx, "user-7", quizID, attempt.ID, current.QuestionID, value)
		if err != nil {
			t.Fatalf("SubmitAnswer %d failed: %v", i, err)
		}
		wantVerdict := models.VerdictPass
		if i == 1 {
			wantVerdict = models.VerdictFail
		}
		if result.Verdict != wantVerdict {
			t.Errorf("step %d: expected %s, got %s", i, wantVerdict, result.Verdict)
		}

		refetched, _ := f.attempts.GetAttempt(ctx, "user-7", quizID, attempt.ID)
		if refetched.Score != wantScores[i] {
			t.Errorf("step %d: expected score %d, got %d", i, wantScores[i], refetched.Score)
		}

		advance, err := f.attempts.Advance(ctx, "user-7", quizID, attempt.ID)
		if err != nil {
			t.Fatalf("Advance %d failed: %v", i, err)
		}
		if i < 2 && advance.Completed {
			t.Fatalf("completed early at step %d", i)
		}
		if i == 2 && !advance.Completed {
			t.Fatal("expected completion after last question")
		}
	}

	// Every question has exactly one recorded answer.
	answers, err := f.answers.ListAnswers(ctx, "user-7", quizID, attempt.ID)
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("expected 3 answer records, got %d", len(answers))
	}
	ids := make([]string, 0, 3)
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
		if a.QuestionText == "" || a.CorrectAnswer == "" {
			t.Errorf("answer %s missing joined question fields", a.QuestionID)
		}
	}
	sort.Strings(ids)
	want := make([]string, 0, 3)
	for id := range byQuestion {
		want = append(want, id)
	}
	sort.Strings(want)
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("answer ids %v do not match question ids %v", ids, want)
			break
		}
	}
}
