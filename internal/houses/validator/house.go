package validator

import (
	"househunt/pkg/model"
	"househunt/pkg/validation"
)

type HouseValidator struct {
	v *validation.Validator
}

func NewHouseValidator() *HouseValidator {
	return &HouseValidator{v: validation.New()}
}

func (v *HouseValidator) ValidateCreate(req *model.CreateHouseRequest) error {
	return v.v.Struct(req)
}

// ValidateUpdate checks the supplied fields and rejects an update that changes nothing.
func (v *HouseValidator) ValidateUpdate(update *model.HouseUpdate) error {
	if err := v.v.Struct(update); err != nil {
		return err
	}
	if isEmptyUpdate(update) {
		return validation.ValidationError{Field: "body", Message: "at least one updatable field is required"}
	}
	return nil
}

func isEmptyUpdate(u *model.HouseUpdate) bool {
	return u.OwnerName == nil && u.Name == nil && u.Address == nil && u.City == nil &&
		u.Bedrooms == nil && u.Bathrooms == nil && u.RoomSize == nil && u.RentPerMonth == nil &&
		u.Date == nil && u.Picture == nil && u.PhoneNumber == nil && u.Description == nil
}
