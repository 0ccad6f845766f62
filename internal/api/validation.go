package api

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MikeMC777/storex/internal/money"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by request payloads.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if a, ok := field.Interface().(money.Amount); ok {
				if !a.IsPrice() {
					return "invalid"
				}
				return a.String()
			}
			return nil
		}, money.Amount{})
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("money", validMoney)
	})
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validMoney accepts non-negative amounts with at most two decimals that fit a price column.
func validMoney(fl validator.FieldLevel) bool {
	a, err := money.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return a.IsPrice()
}
