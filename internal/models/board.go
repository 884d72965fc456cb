package models

// Board is a row of the boards table.
type Board struct {
	BoardID int64  `db:"board_id"`
	Name    string `db:"name"`
	Timestamps
}
