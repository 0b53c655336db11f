package validator

import (
	"househunt/pkg/model"
	"househunt/pkg/validation"
)

type BookingValidator struct {
	v *validation.Validator
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{v: validation.New()}
}

func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest) error {
	return v.v.Struct(req)
}
