package dto

type OTPSendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OTPVerifyRequest struct {
	Code string `json:"code"`
}

type OTPVerifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
