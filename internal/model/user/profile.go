package user

// Profile is what the last registration step submits. Phone is not part of
// the request body; the server fills it from the verified registration.
type Profile struct {
	NationalID string `json:"nationalId" validate:"required,len=10,digits"`
	Phone      string `json:"-" validate:"omitempty,len=11,digits,startswith=09"`
	FirstName  string `json:"firstName" validate:"notblank,max=100"`
	LastName   string `json:"lastName" validate:"notblank,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Role       string `json:"role" validate:"role"`
	SchoolID   string `json:"schoolId" validate:"notblank,max=64"`
}
