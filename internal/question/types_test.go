package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerOption_Value(t *testing.T) {
	assert.Equal(t, 1, AnswerOption{}.Value())
	assert.Equal(t, 1, AnswerOption{Points: -4}.Value())
	assert.Equal(t, 5, AnswerOption{Points: 5}.Value())
}

func TestRecord_PointsDisagreeWithMultipleCorrect(t *testing.T) {
	r := Record{Answers: []AnswerOption{
		{Text: "best", Correct: true, Points: 3},
		{Text: "ok", Correct: true, Points: 1},
		{Text: "wrong", Points: 9},
	}}
	assert.Equal(t, 3, r.MaxPoints())
	assert.Equal(t, 4, r.CorrectPointsSum())
}

func TestRecord_MultipleCorrect(t *testing.T) {
	assert.False(t, Record{}.MultipleCorrect())
	assert.True(t, Record{MultipleCorrectFlag: true}.MultipleCorrect())
	assert.True(t, Record{Meta: Meta{MultipleCorrect: true}}.MultipleCorrect())
}

func TestRecord_Titles(t *testing.T) {
	r := Record{Question: "Which <b>storage</b> tier is **cheapest** for `cold` data?"}
	assert.Equal(t, "Which storage tier is...", r.DisplayTitle(21))
	assert.Equal(t, "Which storage tier is cheapest for cold data?", r.DisplayTitle(60))
	assert.Equal(t, "Question 3", r.BreakdownTitle(2))

	r.Title = "Storage tiers"
	assert.Equal(t, "Storage tiers", r.DisplayTitle(5))
	assert.Equal(t, "Storage tiers", r.BreakdownTitle(2))
}

func TestRecord_Ref(t *testing.T) {
	assert.Equal(t, "x", Record{ID: "x", Source: "a.yaml"}.Ref())
	assert.Equal(t, "a.yaml", Record{Source: "a.yaml", Title: "T"}.Ref())
	assert.Equal(t, "T", Record{Title: "T"}.Ref())
}

func TestRecord_LevelOrDefault(t *testing.T) {
	assert.Equal(t, DefaultLevel, Record{}.LevelOrDefault())
	assert.Equal(t, "beginner", Record{Level: "beginner"}.LevelOrDefault())
}
