package model

const ExamNotGraded = -1

type Exam struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	FolderID   string         `json:"folder_id"`
	Title      string         `json:"title"`
	Subject    string         `json:"subject"`
	Difficulty string         `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
	Answers    []int          `json:"answers"`
	Score      int            `json:"score"`
	Ctime      int64          `json:"ctime"`
	Mtime      int64          `json:"mtime"`
}

type ExamQuestionResult struct {
	Index         int    `json:"index"`
	Selected      int    `json:"selected"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

type ExamResult struct {
	ExamID  string               `json:"exam_id"`
	Score   int                  `json:"score"`
	Correct int                  `json:"correct"`
	Total   int                  `json:"total"`
	Results []ExamQuestionResult `json:"results"`
}
