package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}
