package model

type Document struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	FolderID      string `json:"folder_id"`
	Title         string `json:"title"`
	MimeType      string `json:"mime_type"`
	StorageKey    string `json:"storage_key"`
	Size          int64  `json:"size"`
	ExtractedText string `json:"extracted_text"`
	Enrichment
	Ctime int64 `json:"ctime"`
	Mtime int64 `json:"mtime"`
}
