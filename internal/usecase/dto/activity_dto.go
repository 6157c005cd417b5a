package dto

import "github.com/google/uuid"

type CreateActivityRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateActivityRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// DepthQuery - необязательная глубина раскрытия дерева
type DepthQuery struct {
	Depth *int `query:"depth" validate:"omitempty,min=0"`
}
