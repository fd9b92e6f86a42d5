package model

type MindMap struct {
	ID       string      `json:"id"`
	UserID   string      `json:"user_id"`
	FolderID string      `json:"folder_id"`
	Title    string      `json:"title"`
	Data     MindMapData `json:"data"`
	Ctime    int64       `json:"ctime"`
	Mtime    int64       `json:"mtime"`
}
