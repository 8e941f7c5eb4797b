package table

import "testing"

func TestKeys(t *testing.T) {
	testCases := []struct {
		name string
		key  Key
		pk   string
		sk   string
	}{
		{"quiz", QuizKey("q1"), "QUIZ#q1", "METADATA"},
		{"question", QuestionKey("q1", "x"), "QUIZ#q1", "QUESTION#x"},
		{"user", UserKey("u1"), "USER#u1", "METADATA"},
		{"attempt", AttemptKey("u1", "q1", "a1"), "USER#u1#QUIZ#q1", "ATTEMPT#a1"},
		{"answer", AnswerKey("u1", "q1", "a1", "x"), "USER#u1#QUIZ#q1#ATTEMPT#a1", "QUESTION#x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.key.PK != tc.pk || tc.key.SK != tc.sk {
				t.Errorf("expected (%s, %s), got (%s, %s)", tc.pk, tc.sk, tc.key.PK, tc.key.SK)
			}
		})
	}
}

func TestIDFromSK(t *testing.T) {
	if got := IDFromSK("QUESTION#abc"); got != "abc" {
		t.Errorf("expected abc, got %s", got)
	}
	if got := IDFromSK("ATTEMPT#a-1"); got != "a-1" {
		t.Errorf("expected a-1, got %s", got)
	}
	if got := IDFromSK("METADATA"); got != "METADATA" {
		t.Errorf("expected METADATA passthrough, got %s", got)
	}
}
