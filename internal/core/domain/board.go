package domain

// Board groups posts. Some boards are restricted to admin authors.
type Board struct {
	BoardID int64  `json:"boardId"`
	Name    string `json:"name"`
	Timestamps
}

// DefaultBoards are seeded at startup when missing.
var DefaultBoards = []Board{
	{BoardID: 1, Name: "Notice"},
	{BoardID: 2, Name: "General"},
}
