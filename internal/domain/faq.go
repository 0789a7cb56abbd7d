package domain

import "time"

// FAQ is an admin-authored question/answer pair. The chat assistant grounds
// its answers exclusively in the current FAQ set.
type FAQ struct {
	ID        string
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
