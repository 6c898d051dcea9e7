package dto

type RegisterTokenRequest struct {
	PmjNo      int64  `json:"pmj_no" validate:"required,gt=0"`
	Token      string `json:"token" validate:"required"`
	DeviceType string `json:"device_type" validate:"omitempty,oneof=web android ios"`
}
