package models

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// decimal hours are compared as numbers by the gte/lte tags
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			d, ok := v.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			return d.InexactFloat64()
		}, decimal.Decimal{})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			r, ok := v.Interface().(Role)
			if !ok {
				return nil
			}
			return r.Code()
		}, Role(0))
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			c, ok := v.Interface().(PlaneClass)
			if !ok {
				return nil
			}
			return string(c)
		}, PlaneClass(""))
	})
	return validate
}

// Validate checks the struct tags of a record before it is persisted.
// Storage implementations call it from every Create method, so the
// statistics code can rely on non-negative hours and landings.
func Validate(record any) error {
	if err := validatorInstance().Struct(record); err != nil {
		return fmt.Errorf("invalid %T: %w", record, err)
	}
	return nil
}
