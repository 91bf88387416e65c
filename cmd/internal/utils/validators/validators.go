package validators

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// TitleLengthTag is the alias used by note requests for the configured title bound.
const TitleLengthTag = "titlelen"

// New builds the validator shared by all services.
//
// titleMaxLength is bound at construction time through the TitleLengthTag alias,
// so request structs never hard-code it.
func New(titleMaxLength int) *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if titleMaxLength <= 0 {
		log.Warnf("invalid title max length %d, falling back to 1", titleMaxLength)
		titleMaxLength = 1
	}
	validate.RegisterAlias(TitleLengthTag, "max="+strconv.Itoa(titleMaxLength))
	return validate
}

// jsonFieldName reports fields by their JSON name, so problems match the request body.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(field.Name)
	}
	return name
}
