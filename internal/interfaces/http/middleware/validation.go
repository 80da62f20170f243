package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
)

// SetupValidator configures the binding validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// br_phone accepts any formatting as long as enough digits remain
	// after normalization to identify a client
	_ = v.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		normalized := partner.NormalizePhone(fl.Field().String())
		return len(normalized) >= partner.MinComparablePhoneDigits
	})
}
