package model

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

type MindMapLeaf struct {
	Name string `json:"name"`
}

type MindMapBranch struct {
	Name     string        `json:"name"`
	Children []MindMapLeaf `json:"children"`
}

type MindMapData struct {
	CentralTopic string          `json:"central_topic"`
	Branches     []MindMapBranch `json:"branches"`
}
