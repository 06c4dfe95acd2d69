package services

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
)

// datePattern is a syntactic check only: "2024-13-99" passes.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var fieldMessages = map[string]string{
	"Description": "description cannot be empty",
	"DueDate":     "invalid date format, expected YYYY-MM-DD",
	"Role":        "role must be Admin or Member",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "Admin" || s == "Member"
	})
	return v
}

// validationError converts validator output into a single ValidationError.
// The first failing field supplies the message; all fields are listed in
// the details.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation(err.Error())
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		details[fe.Field()] = msg
	}
	return apperrors.ValidationWithDetails(details[verrs[0].Field()], details)
}
