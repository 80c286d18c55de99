package validation

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/fedutinova/careerchat/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const DefaultMaxMessageLength = 4000

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Messages flattens the errors for the HTTP error body.
func (e ValidationErrors) Messages() []string {
	out := make([]string, len(e))
	for i, err := range e {
		out[i] = err.Error()
	}
	return out
}

type Validator struct {
	validate         *validator.Validate
	maxMessageLength int
}

func New(maxMessageLength int) *Validator {
	if maxMessageLength <= 0 {
		maxMessageLength = DefaultMaxMessageLength
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// report json field names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("jsonarray", isJSONArray); err != nil {
		panic(fmt.Sprintf("register jsonarray validation: %v", err))
	}

	return &Validator{validate: v, maxMessageLength: maxMessageLength}
}

func (v *Validator) ValidateChatRequest(req *models.ChatRequest) ValidationErrors {
	var errs ValidationErrors

	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return ValidationErrors{{Field: "request", Message: err.Error()}}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: messageForTag(fe.Tag()),
			})
		}
	}

	if n := utf8.RuneCountInString(req.Message); n > v.maxMessageLength {
		errs = append(errs, ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("message exceeds maximum length of %d characters", v.maxMessageLength),
		})
	}

	return errs
}

func messageForTag(tag string) string {
	switch tag {
	case "notblank", "required":
		return "is required"
	case "jsonarray":
		return "must be a JSON array"
	default:
		return fmt.Sprintf("failed %q validation", tag)
	}
}

func isJSONArray(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	raw := bytes.TrimSpace(field.Bytes())
	return len(raw) > 0 && raw[0] == '['
}
