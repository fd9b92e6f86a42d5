package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/timeutil"
	"github.com/xxxsen/afternote/internal/repo"
)

const defaultExamQuestionCount = 10

type ExamService struct {
	exams         *repo.ExamRepo
	folders       *repo.FolderRepo
	enricher      *enrich.Orchestrator
	maxInputChars int
}

func NewExamService(exams *repo.ExamRepo, folders *repo.FolderRepo, enricher *enrich.Orchestrator, maxInputChars int) *ExamService {
	return &ExamService{exams: exams, folders: folders, enricher: enricher, maxInputChars: maxInputChars}
}

// ExamCreateInput generates questions from Content unless Questions is set.
type ExamCreateInput struct {
	FolderID   string
	Title      string
	Subject    string
	Difficulty string
	Count      int
	Content    string
	Questions  []model.QuizQuestion
}

func (s *ExamService) Create(ctx context.Context, userID string, input ExamCreateInput) (*model.Exam, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	title, err := trimmedRequired(input.Title)
	if err != nil {
		return nil, err
	}
	if err := ensureFolder(ctx, s.folders, userID, input.FolderID); err != nil {
		return nil, err
	}
	difficulty := enrich.NormalizeDifficulty(input.Difficulty)
	questions := input.Questions
	switch {
	case questions != nil:
		if err := validateQuestions(questions); err != nil {
			return nil, err
		}
	case strings.TrimSpace(input.Content) == "":
		return nil, appErr.ErrContentUnavailable
	default:
		count := input.Count
		if count <= 0 {
			count = defaultExamQuestionCount
		}
		quiz := s.enricher.Executor().Quiz(ctx, limitInput(input.Content, s.maxInputChars), difficulty, count)
		questions = quiz.Value.Questions
	}
	now := timeutil.NowUnix()
	exam := &model.Exam{
		ID:         newID(),
		UserID:     userID,
		FolderID:   input.FolderID,
		Title:      title,
		Subject:    strings.TrimSpace(input.Subject),
		Difficulty: difficulty,
		Questions:  questions,
		Score:      model.ExamNotGraded,
		Ctime:      now,
		Mtime:      now,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// ExamUpdateInput is a partial update; nil fields are left untouched.
type ExamUpdateInput struct {
	FolderID   *string
	Title      *string
	Subject    *string
	Difficulty *string
	Questions  *[]model.QuizQuestion
}

// Update edits an exam in place. Replacing the questions discards the last
// submission, since its answers no longer line up.
func (s *ExamService) Update(ctx context.Context, userID, examID string, input ExamUpdateInput) (*model.Exam, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	exam, err := s.exams.GetByID(ctx, userID, examID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title, err := trimmedRequired(*input.Title)
		if err != nil {
			return nil, err
		}
		exam.Title = title
	}
	if input.Subject != nil {
		exam.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.Difficulty != nil {
		exam.Difficulty = enrich.NormalizeDifficulty(*input.Difficulty)
	}
	if input.FolderID != nil {
		if err := ensureFolder(ctx, s.folders, userID, *input.FolderID); err != nil {
			return nil, err
		}
		exam.FolderID = *input.FolderID
	}
	if input.Questions != nil {
		questions := *input.Questions
		if questions == nil {
			questions = []model.QuizQuestion{}
		}
		if err := validateQuestions(questions); err != nil {
			return nil, err
		}
		exam.Questions = questions
		exam.Answers = nil
		exam.Score = model.ExamNotGraded
	}
	exam.Mtime = timeutil.NowUnix()
	if err := s.exams.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func validateQuestions(questions []model.QuizQuestion) error {
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return appErr.ErrInvalid
		}
	}
	return nil
}

// Submit grades answers against the stored questions and records the result
// as the exam's latest attempt.
func (s *ExamService) Submit(ctx context.Context, userID, examID string, answers []int) (*model.ExamResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	exam, err := s.exams.GetByID(ctx, userID, examID)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(exam.Questions) {
		return nil, appErr.ErrInvalid
	}
	result := Grade(exam.Questions, answers)
	result.ExamID = exam.ID
	if err := s.exams.SaveSubmission(ctx, userID, examID, answers, result.Score, timeutil.NowUnix()); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("exam graded", zap.String("exam_id", examID), zap.Int("score", result.Score))
	return result, nil
}

// Grade scores answers as a rounded percentage. Answers must line up with
// questions by index.
func Grade(questions []model.QuizQuestion, answers []int) *model.ExamResult {
	result := &model.ExamResult{
		Total:   len(questions),
		Results: make([]model.ExamQuestionResult, 0, len(questions)),
	}
	for i, q := range questions {
		correct := answers[i] == q.CorrectAnswer
		if correct {
			result.Correct++
		}
		result.Results = append(result.Results, model.ExamQuestionResult{
			Index:         i,
			Selected:      answers[i],
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
	}
	if result.Total > 0 {
		result.Score = (result.Correct*100 + result.Total/2) / result.Total
	}
	return result
}

func (s *ExamService) Get(ctx context.Context, userID, examID string) (*model.Exam, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.exams.GetByID(ctx, userID, examID)
}

func (s *ExamService) List(ctx context.Context, userID, folderID string) ([]model.Exam, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.exams.List(ctx, userID, folderID)
}

func (s *ExamService) Delete(ctx context.Context, userID, examID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.exams.Delete(ctx, userID, examID)
}
