package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/dbutil"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

var examColumns = []string{"id", "user_id", "folder_id", "title", "subject", "difficulty", "questions", "answers", "score", "ctime", "mtime"}

type ExamRepo struct {
	base
}

func NewExamRepo(h *db.Handle) *ExamRepo {
	return &ExamRepo{base: newBase(h)}
}

func (r *ExamRepo) Create(ctx context.Context, exam *model.Exam) error {
	questions, err := json.Marshal(exam.Questions)
	if err != nil {
		return err
	}
	answers, err := dbutil.NullableJSON(exam.Answers)
	if err != nil {
		return err
	}
	return r.insert(ctx, "exams", map[string]interface{}{
		"id":         exam.ID,
		"user_id":    exam.UserID,
		"folder_id":  exam.FolderID,
		"title":      exam.Title,
		"subject":    exam.Subject,
		"difficulty": exam.Difficulty,
		"questions":  string(questions),
		"answers":    answers,
		"score":      exam.Score,
		"ctime":      exam.Ctime,
		"mtime":      exam.Mtime,
	})
}

// Update rewrites the editable fields and the grading state together, so a
// question change can clear a stale submission in the same statement.
func (r *ExamRepo) Update(ctx context.Context, exam *model.Exam) error {
	questions, err := json.Marshal(exam.Questions)
	if err != nil {
		return err
	}
	answers, err := dbutil.NullableJSON(exam.Answers)
	if err != nil {
		return err
	}
	return r.update(ctx, "exams", map[string]interface{}{
		"id":      exam.ID,
		"user_id": exam.UserID,
	}, map[string]interface{}{
		"folder_id":  exam.FolderID,
		"title":      exam.Title,
		"subject":    exam.Subject,
		"difficulty": exam.Difficulty,
		"questions":  string(questions),
		"answers":    answers,
		"score":      exam.Score,
		"mtime":      exam.Mtime,
	})
}

// SaveSubmission records the latest graded answers.
func (r *ExamRepo) SaveSubmission(ctx context.Context, userID, examID string, answers []int, score int, mtime int64) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	return r.update(ctx, "exams", map[string]interface{}{
		"id":      examID,
		"user_id": userID,
	}, map[string]interface{}{
		"answers": string(raw),
		"score":   score,
		"mtime":   mtime,
	})
}

func (r *ExamRepo) GetByID(ctx context.Context, userID, examID string) (*model.Exam, error) {
	items, err := r.selectExams(ctx, map[string]interface{}{
		"id":      examID,
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &items[0], nil
}

func (r *ExamRepo) List(ctx context.Context, userID, folderID string) ([]model.Exam, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	if folderID != "" {
		where["folder_id"] = folderID
	}
	return r.selectExams(ctx, where)
}

func (r *ExamRepo) Delete(ctx context.Context, userID, examID string) error {
	return r.delete(ctx, "exams", map[string]interface{}{
		"id":      examID,
		"user_id": userID,
	})
}

func (r *ExamRepo) DetachFolder(ctx context.Context, userID, folderID string, mtime int64) error {
	return r.detachFolder(ctx, "exams", "folder_id", userID, folderID, mtime)
}

func (r *ExamRepo) selectExams(ctx context.Context, where map[string]interface{}) ([]model.Exam, error) {
	sqlStr, args, err := builder.BuildSelect("exams", where, examColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Exam, 0)
	for rows.Next() {
		var exam model.Exam
		var questions, answers sql.NullString
		if err := rows.Scan(&exam.ID, &exam.UserID, &exam.FolderID, &exam.Title, &exam.Subject, &exam.Difficulty,
			&questions, &answers, &exam.Score, &exam.Ctime, &exam.Mtime); err != nil {
			return nil, err
		}
		exam.Questions = []model.QuizQuestion{}
		if err := dbutil.DecodeJSON(questions, &exam.Questions); err != nil {
			return nil, err
		}
		if err := dbutil.DecodeJSON(answers, &exam.Answers); err != nil {
			return nil, err
		}
		items = append(items, exam)
	}
	return items, rows.Err()
}
