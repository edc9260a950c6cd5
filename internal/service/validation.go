package service

import (
	"errors"

	"catalog-service/internal/model"

	"github.com/go-playground/validator/v10"
)

// createRules is the shape an item must have to be created. Pointers make
// presence explicit, so a price of 0 or inStock of false still counts.
type createRules struct {
	Name     *string  `validate:"required,min=1"`
	Category *string  `validate:"required,min=1"`
	Price    *float64 `validate:"required,gte=0"`
	InStock  *bool    `validate:"required"`
}

// updateRules constrains the fields an update may carry.
type updateRules struct {
	Price *float64 `validate:"omitempty,gte=0"`
}

// itemValidator checks item payloads before they reach storage.
type itemValidator struct {
	validate *validator.Validate
}

func newItemValidator() *itemValidator {
	return &itemValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateCreate reports model.ErrMissingField before model.ErrInvalidPrice.
func (v *itemValidator) ValidateCreate(req *model.ItemRequest) error {
	if req == nil {
		return model.ErrMissingField
	}

	err := v.validate.Struct(createRules{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		InStock:  req.InStock,
	})
	return mapValidationError(err)
}

// ValidateUpdate requires at least one field and a non-negative price.
func (v *itemValidator) ValidateUpdate(req *model.ItemRequest) error {
	if req == nil || req.Patch().IsEmpty() {
		return model.ErrNoFields
	}

	err := v.validate.Struct(updateRules{Price: req.Price})
	return mapValidationError(err)
}

func mapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	invalidPrice := false
	for _, fe := range fieldErrs {
		if fe.Field() == "Price" && fe.Tag() == "gte" {
			invalidPrice = true
			continue
		}
		return model.ErrMissingField
	}

	if invalidPrice {
		return model.ErrInvalidPrice
	}
	return nil
}
