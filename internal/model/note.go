package model

type Note struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FolderID string `json:"folder_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Enrichment
	Ctime int64 `json:"ctime"`
	Mtime int64 `json:"mtime"`
}
