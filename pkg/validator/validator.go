package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"carsu-site-backend/pkg/lang"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy

	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func Init() {
	validate = validator.New()

	sanitizer = bluemonday.UGCPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("locale", validateLocale)
	v.RegisterValidation("hexcolor_optional", validateOptionalHexColor)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SanitizeHTML cleans user or CMS supplied markup with the shared UGC policy.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

// SanitizeString strips all markup, leaving plain text.
func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

// Sanitizer exposes the shared policy for injection into the render pipeline.
func Sanitizer() *bluemonday.Policy {
	if sanitizer == nil {
		Init()
	}
	return sanitizer
}

func ValidateSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

func validateLocale(fl validator.FieldLevel) bool {
	_, err := lang.Normalize(fl.Field().String())
	return err == nil
}

func validateOptionalHexColor(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return hexColorRegex.MatchString(value)
}
