package dto

type CreateMemberRequest struct {
	FullName   string  `json:"full_name" validate:"required"`
	NationalID *string `json:"national_id"`
	DOB        *string `json:"dob"`
	Phone      *string `json:"phone"`
	Allergies  *string `json:"allergies"` // JSON-encoded string array
	Disease    *string `json:"disease"`
}

type MemberResponse struct {
	MemberID    string   `json:"member_id"`
	FullName    string   `json:"full_name"`
	NationalID  *string  `json:"national_id"`
	DOB         *string  `json:"dob"`
	Phone       *string  `json:"phone"`
	Allergies   []string `json:"allergies"`
	Disease     *string  `json:"disease"`
	DateCreated string   `json:"date_created"`
}

type CreateStaffRequest struct {
	FullName      string  `json:"full_name" validate:"required"`
	LicenseNumber *string `json:"license_number"`
	Position      *string `json:"position"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

type StaffResponse struct {
	StaffID       string  `json:"staff_id"`
	FullName      string  `json:"full_name"`
	LicenseNumber *string `json:"license_number"`
	Position      *string `json:"position"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	DateCreated   string  `json:"date_created"`
}
