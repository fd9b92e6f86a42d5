package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

func TestExamFromContentAndSubmit(t *testing.T) {
	gen := newStageGen(map[string]string{markQuiz: `{"questions":[
		{"question":"Powerhouse?","options":["Nucleus","Mitochondria"],"correct_answer":1,"explanation":"ATP"},
		{"question":"Bad","options":["a"],"correct_answer":3},
		{"question":"Control center?","options":["Nucleus","Ribosome"],"correct_answer":0,"explanation":"DNA"}
	]}`})
	env := newTestEnv(t, gen)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, testUser, ExamCreateInput{Title: "Cells", Difficulty: "HARD", Content: "Cells..."})
	require.NoError(t, err)
	require.Equal(t, "hard", exam.Difficulty)
	require.Len(t, exam.Questions, 2)
	require.Equal(t, model.ExamNotGraded, exam.Score)
	require.Contains(t, gen.lastPrompt(), "hard difficulty quiz with 10")

	_, err = env.exams.Submit(ctx, testUser, exam.ID, []int{1})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	result, err := env.exams.Submit(ctx, testUser, exam.ID, []int{1, 1})
	require.NoError(t, err)
	require.Equal(t, 50, result.Score)
	require.Equal(t, 1, result.Correct)
	require.Equal(t, 2, result.Total)
	require.True(t, result.Results[0].IsCorrect)
	require.False(t, result.Results[1].IsCorrect)

	stored, err := env.exams.Get(ctx, testUser, exam.ID)
	require.NoError(t, err)
	require.Equal(t, 50, stored.Score)
	require.Equal(t, []int{1, 1}, stored.Answers)
}

func TestExamCreateValidation(t *testing.T) {
	env := newTestEnv(t, newStageGen(nil))
	ctx := context.Background()

	_, err := env.exams.Create(ctx, testUser, ExamCreateInput{Title: "Empty"})
	require.ErrorIs(t, err, appErr.ErrContentUnavailable)
	_, err = env.exams.Create(ctx, testUser, ExamCreateInput{Title: "Bad", Questions: []model.QuizQuestion{{Question: "q", Options: []string{"a"}, CorrectAnswer: 1}}})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	exam, err := env.exams.Create(ctx, testUser, ExamCreateInput{Title: "Manual", Questions: []model.QuizQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}}})
	require.NoError(t, err)
	require.Equal(t, "medium", exam.Difficulty)

	fallback, err := env.exams.Create(ctx, testUser, ExamCreateInput{Title: "Offline", Content: "Cells"})
	require.NoError(t, err)
	require.NotNil(t, fallback.Questions)
	require.Empty(t, fallback.Questions)
}

func TestGradeRounding(t *testing.T) {
	questions := []model.QuizQuestion{
		{Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Options: []string{"a", "b"}, CorrectAnswer: 1},
	}
	require.Equal(t, 67, Grade(questions, []int{0, 0, 0}).Score)
	require.Equal(t, 100, Grade(questions, []int{0, 0, 1}).Score)
	require.Equal(t, 0, Grade(nil, nil).Score)
}

func TestExamUpdate(t *testing.T) {
	env := newTestEnv(t, newStageGen(nil))
	ctx := context.Background()

	_, err := env.exams.Update(ctx, testUser, "missing", ExamUpdateInput{})
	require.ErrorIs(t, err, appErr.ErrNotFound)

	exam, err := env.exams.Create(ctx, testUser, ExamCreateInput{
		Title:     "Manual",
		Subject:   "Biology",
		Questions: []model.QuizQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}},
	})
	require.NoError(t, err)
	_, err = env.exams.Submit(ctx, testUser, exam.ID, []int{0})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := env.exams.Update(ctx, testUser, exam.ID, ExamUpdateInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "Biology", updated.Subject)
	require.Equal(t, 100, updated.Score)

	_, err = env.exams.Update(ctx, "u2", exam.ID, ExamUpdateInput{Title: &title})
	require.ErrorIs(t, err, appErr.ErrNotFound)

	bad := []model.QuizQuestion{{Question: "q", Options: []string{"a"}, CorrectAnswer: 2}}
	_, err = env.exams.Update(ctx, testUser, exam.ID, ExamUpdateInput{Questions: &bad})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	missingFolder := "nope"
	_, err = env.exams.Update(ctx, testUser, exam.ID, ExamUpdateInput{FolderID: &missingFolder})
	require.ErrorIs(t, err, appErr.ErrNotFound)

	questions := []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: 0},
	}
	_, err = env.exams.Update(ctx, testUser, exam.ID, ExamUpdateInput{Questions: &questions})
	require.NoError(t, err)

	stored, err := env.exams.Get(ctx, testUser, exam.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", stored.Title)
	require.Len(t, stored.Questions, 2)
	require.Nil(t, stored.Answers)
	require.Equal(t, model.ExamNotGraded, stored.Score)
}
