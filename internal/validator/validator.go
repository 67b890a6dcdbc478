// Package validator wires go-playground/validator into Gin's binding
// engine with translated, JSON-tag-keyed error messages.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var trans ut.Translator

// Setup registers translations on Gin's binding engine. Call once during
// application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Report field names by their JSON tag, matching the wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	trans, _ = ut.New(locale, locale).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a field → message map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g. JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}
