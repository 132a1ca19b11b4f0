package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulecoach/shule_api/shared"
)

func boolPtr(b bool) *bool { return &b }

func TestScorePercent(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{3, 4, 75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScorePercent(tt.correct, tt.total), "ScorePercent(%d, %d)", tt.correct, tt.total)
	}
}

func TestRecalculateScore_RecountsWholeLog(t *testing.T) {
	s := &StudySession{}
	require.NoError(t, s.SetQuestionLog([]SessionQuestion{
		{Question: "q1", Answer: "a1", IsCorrect: boolPtr(true)},
		{Question: "q2", Answer: "a2", IsCorrect: boolPtr(false)},
		{Question: "q3", Answer: "a3"}, // ungraded
		{Question: "q4", Answer: "a4", IsCorrect: boolPtr(true)},
	}))

	assert.Equal(t, 4, s.TotalQuestions)
	assert.Equal(t, 2, s.CorrectAnswers)
	assert.Equal(t, 50, s.Score)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&StudySession{Status: shared.SessionActive}).IsTerminal())
	assert.True(t, (&StudySession{Status: shared.SessionCompleted}).IsTerminal())
	assert.True(t, (&StudySession{Status: shared.SessionAbandoned}).IsTerminal())
}

func TestQuestionLog_EmptyRawMessage(t *testing.T) {
	s := &StudySession{}
	log, err := s.QuestionLog()
	require.NoError(t, err)
	assert.Empty(t, log)
}
