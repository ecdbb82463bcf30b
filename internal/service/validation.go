package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// fieldMessages maps field and failing tag to the message shown to the user.
var fieldMessages = map[string]map[string]string{
	"name":        {"notblank": "Name is required"},
	"phone":       {"notblank": "Phone number is required", "phone10": "Invalid phone number"},
	"address":     {"notblank": "Address is required"},
	"city":        {"notblank": "City is required"},
	"state":       {"notblank": "State is required"},
	"pincode":     {"pincode6": "Invalid pincode"},
	"dob":         {"notblank": "Date of birth is required"},
	"phoneNumber": {"notblank": "Phone number is required"},
	"concern":     {"notblank": "Concern is required"},
	"message":     {"notblank": "Message is required"},
	"courseTitle": {"notblank": "Course title is required"},
	"meetLink":    {"required": "Meet link is required", "url": "Meet link must be a valid URL"},
	"userId":      {"notblank": "User ID is required"},
	"password":    {"required": "Password is required"},
}

// NewValidator returns a validator with the portal's custom tags registered.
// Field names in errors are the JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode6", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})
	return v
}

// firstViolation validates payload and converts the first failing rule into a field error.
func firstViolation(v *validator.Validate, payload interface{}) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	first := verrs[0]
	msg := first.Field() + " is invalid"
	if byTag, ok := fieldMessages[first.Field()]; ok {
		if m, ok := byTag[first.Tag()]; ok {
			msg = m
		}
	}
	return appErrors.Field(first.Field(), msg)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
