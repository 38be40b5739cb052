package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding validators on gin's engine
// and reports fields by their JSON names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool {
			return services.IsKnownPropertyType(fl.Field().String())
		})
	})
}
