package legendsauth

import "fmt"

// RegisterRequest carries the fields of a registration submission.
//
// RegisterRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

func (p *Provider) validateLogin(identifier, password string) *ValidationError {
	var fields []FieldError

	if len(identifier) < p.config.Validation.MinUsernameLength {
		fields = append(fields, FieldError{
			Field:   "username",
			Message: fmt.Sprintf("username must be at least %d characters", p.config.Validation.MinUsernameLength),
		})
	}
	if len(password) < p.config.Validation.MinPasswordLength {
		fields = append(fields, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", p.config.Validation.MinPasswordLength),
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (p *Provider) validateRegister(req RegisterRequest) *ValidationError {
	var fields []FieldError

	if len(req.Username) < p.config.Validation.MinUsernameLength {
		fields = append(fields, FieldError{
			Field:   "username",
			Message: fmt.Sprintf("username must be at least %d characters", p.config.Validation.MinUsernameLength),
		})
	}
	if req.Email == "" {
		fields = append(fields, FieldError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if len(req.Password) < p.config.Validation.MinPasswordLength {
		fields = append(fields, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", p.config.Validation.MinPasswordLength),
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
