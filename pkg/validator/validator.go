package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

// Validator provides validation functions for request data
type Validator interface {
	// Validate validates a struct or field based on validation tags
	Validate(i interface{}) error
}

// FieldError is one failed constraint, named by the field's JSON key.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// ValidationErrors lists every constraint a value failed.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	lines := make([]string, len(v))
	for i, fe := range v {
		lines[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(lines, "; ")
}

// New creates a new validator. Besides the stock tags it understands
// "date" (YYYY-MM-DD) and "month" (YYYY-MM or YYYY-MM-DD).
func New() Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("month", func(fl playground.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) == len("2006-01") {
			_, err := time.Parse("2006-01", s)
			return err == nil
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
	return &structValidator{v: v}
}

type structValidator struct {
	v *playground.Validate
}

func (s *structValidator) Validate(i interface{}) error {
	err := s.v.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldPath drops the root struct name from a namespace like
// "args.splits[1].amount".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s item(s)", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "date":
		return "must be a date in YYYY-MM-DD format"
	case "month":
		return "must be a month in YYYY-MM format"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}
