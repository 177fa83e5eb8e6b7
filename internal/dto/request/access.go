package request

type RequestAccessCodeRequest struct {
	BookingRef string `json:"booking_ref" validate:"required"`
	Channel    string `json:"channel" validate:"required,oneof=email sms whatsapp"`
}

type VerifyAccessCodeRequest struct {
	BookingRef string `json:"booking_ref" validate:"required"`
	Code       string `json:"code" validate:"required,min=4,max=10"`
}
