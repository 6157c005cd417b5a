package dto

type CreatePhoneNumberRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=1,max=32"`
}

type UpdatePhoneNumberRequest = CreatePhoneNumberRequest
