package schema

import (
	"encoding/json"
	"fmt"
)

// ParseMessageInput decodes a contact.submit request body and validates it.
// Wrong JSON types and rule violations are reported together, first failing
// field wins in declaration order. Unknown keys are dropped.
func ParseMessageInput(raw []byte) (MessageInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return MessageInput{}, &ValidationError{Message: "Invalid JSON body"}
	}

	var in MessageInput
	typeErrs := make(map[string]*ValidationError)
	targets := map[string]func(string){
		"name":    func(s string) { in.Name = s },
		"email":   func(s string) { in.Email = s },
		"subject": func(s string) { in.Subject = &s },
		"message": func(s string) { in.Message = s },
	}
	for _, field := range messageInputFields {
		value, ok := fields[field]
		if !ok || string(value) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			typeErrs[field] = &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Expected string, received %s", jsonKind(value)),
			}
			continue
		}
		targets[field](s)
	}

	in = normalizeMessageInput(in)
	ruleErrs := messageInputErrors(in)
	if err, ok := ruleErrs[""]; ok {
		return MessageInput{}, err
	}
	for _, field := range messageInputFields {
		if err, ok := typeErrs[field]; ok {
			return MessageInput{}, err
		}
		if err, ok := ruleErrs[field]; ok {
			return MessageInput{}, err
		}
	}
	return in, nil
}

// ParseMessage decodes and validates a 201 contact.submit body.
func ParseMessage(raw []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("schema: decode message: %w", err)
	}
	if err := ValidateMessage(m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// ParseErrorResponse decodes and validates a 400 contact.submit body.
func ParseErrorResponse(raw []byte) (ErrorResponse, error) {
	var e ErrorResponse
	if err := json.Unmarshal(raw, &e); err != nil {
		return ErrorResponse{}, fmt.Errorf("schema: decode error response: %w", err)
	}
	if err := ValidateErrorResponse(e); err != nil {
		return ErrorResponse{}, err
	}
	return e, nil
}

// ParsePrograms decodes and validates a programs.list body.
func ParsePrograms(raw []byte) ([]Program, error) {
	var programs []Program
	if err := json.Unmarshal(raw, &programs); err != nil {
		return nil, fmt.Errorf("schema: decode programs: %w", err)
	}
	for i, p := range programs {
		if err := ValidateProgram(p); err != nil {
			return nil, fmt.Errorf("schema: program %d: %w", i, err)
		}
	}
	if programs == nil {
		programs = []Program{}
	}
	return programs, nil
}

// ParseStories decodes and validates a stories.list body.
func ParseStories(raw []byte) ([]Story, error) {
	var stories []Story
	if err := json.Unmarshal(raw, &stories); err != nil {
		return nil, fmt.Errorf("schema: decode stories: %w", err)
	}
	for i, s := range stories {
		if err := ValidateStory(s); err != nil {
			return nil, fmt.Errorf("schema: story %d: %w", i, err)
		}
	}
	if stories == nil {
		stories = []Story{}
	}
	return stories, nil
}

// jsonKind names the JSON type of a raw value for error messages.
func jsonKind(raw json.RawMessage) string {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return "object"
		case '[':
			return "array"
		case '"':
			return "string"
		case 't', 'f':
			return "boolean"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "undefined"
}
