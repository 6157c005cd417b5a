package dto

type CreateBuildingRequest struct {
	Address   string   `json:"address" validate:"required,min=1,max=500"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type UpdateBuildingRequest = CreateBuildingRequest
