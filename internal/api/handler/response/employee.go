package response

import "time"

type EmployeeResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponseDTO struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	Employee     EmployeeResponse `json:"employee"`
}
