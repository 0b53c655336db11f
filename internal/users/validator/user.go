package validator

import (
	"househunt/pkg/model"
	"househunt/pkg/validation"
)

type UserValidator struct {
	v *validation.Validator
}

func NewUserValidator() *UserValidator {
	return &UserValidator{v: validation.New()}
}

func (v *UserValidator) ValidateRegister(req *model.RegisterRequest) error {
	return v.v.Struct(req)
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.v.Struct(req)
}

func (v *UserValidator) ValidateToken(req *model.TokenRequest) error {
	return v.v.Struct(req)
}
