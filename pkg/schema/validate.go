package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError identifies the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Response converts the error into the 400 body of contact.submit.
func (e *ValidationError) Response() ErrorResponse {
	return ErrorResponse{Message: e.Message, Field: e.Field}
}

// messageInputFields is the declaration order used to pick the first
// failing field.
var messageInputFields = []string{"name", "email", "subject", "message"}

// messageInputMessages maps field -> validator tag -> human readable reason.
var messageInputMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Invalid email address",
	},
	"message": {
		"required": "Message is required",
		"min":      "Message must be at least 10 characters",
		"max":      "Message must be at most 500 characters",
	},
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// ValidateMessageInput checks in against the Message creation rules and
// returns the normalised input. An empty subject is normalised to nil. On
// failure the error is a *ValidationError for the first failing field in
// the order name, email, subject, message.
func ValidateMessageInput(in MessageInput) (MessageInput, error) {
	in = normalizeMessageInput(in)
	errs := messageInputErrors(in)
	if err, ok := errs[""]; ok {
		return MessageInput{}, err
	}
	for _, field := range messageInputFields {
		if err, ok := errs[field]; ok {
			return MessageInput{}, err
		}
	}
	return in, nil
}

func normalizeMessageInput(in MessageInput) MessageInput {
	if in.Subject != nil && *in.Subject == "" {
		in.Subject = nil
	}
	return in
}

// messageInputErrors returns the first rule violation of every failing field.
func messageInputErrors(in MessageInput) map[string]*ValidationError {
	out := make(map[string]*ValidationError)
	err := validatorInstance().Struct(in)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = &ValidationError{Message: err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := fieldPath(fe)
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messageInputMessages[field][fe.Tag()]
		if !ok {
			msg = genericMessage(fe)
		}
		out[field] = &ValidationError{Field: field, Message: msg}
	}
	return out
}

// ValidateMessage checks the shape of a Message response body.
func ValidateMessage(m Message) error { return validateStruct(m) }

// ValidateStory checks the shape of a Story response body.
func ValidateStory(s Story) error { return validateStruct(s) }

// ValidateErrorResponse checks the shape of a 400 response body.
func ValidateErrorResponse(e ErrorResponse) error { return validateStruct(e) }

// ValidateProgram checks the shape of a Program response body, including
// every gallery item.
func ValidateProgram(p Program) error {
	if err := validateStruct(p); err != nil {
		return err
	}
	for i, item := range p.Gallery {
		field := "gallery." + strconv.Itoa(i)
		switch it := item.(type) {
		case ImageItem:
			if it.Src == "" {
				return &ValidationError{Field: field + ".src", Message: "Image source is required"}
			}
		case VideoItem:
			if it.Src == "" {
				return &ValidationError{Field: field + ".src", Message: "Video source is required"}
			}
		default:
			return &ValidationError{Field: field + ".type", Message: fmt.Sprintf("Unsupported gallery item %T", item)}
		}
	}
	return nil
}

func validateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: fieldPath(verrs[0]), Message: genericMessage(verrs[0])}
	}
	return err
}

// fieldPath drops the root struct name from the validator namespace,
// "Program.gallery" -> "gallery".
func fieldPath(fe validator.FieldError) string {
	_, rest, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return rest
}

func genericMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Invalid email address"
	}
	return fmt.Sprintf("Failed %q rule", fe.Tag())
}
