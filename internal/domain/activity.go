package domain

import "github.com/google/uuid"

// Activity - узел дерева видов деятельности.
//
// Children равен nil, если узел на границе глубины и не раскрыт, и пустому
// срезу, если дочерних узлов нет.
type Activity struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	ParentID *uuid.UUID `json:"parent_id" db:"parent_id"`
	Children []Activity `json:"children"`
}

// IsRoot reports whether the activity has no parent.
func (a *Activity) IsRoot() bool {
	return a.ParentID == nil
}
