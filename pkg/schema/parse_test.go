package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageInput_Valid(t *testing.T) {
	raw := `{"name":"Jane Doe","email":"jane@example.com","subject":"Hello","message":"This is a test message.","extra":true}`

	in, err := ParseMessageInput([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, validInput(), in)
}

func TestParseMessageInput_SubjectOptional(t *testing.T) {
	for _, raw := range []string{
		`{"name":"Jane","email":"jane@example.com","message":"This is a test message."}`,
		`{"name":"Jane","email":"jane@example.com","subject":null,"message":"This is a test message."}`,
		`{"name":"Jane","email":"jane@example.com","subject":"","message":"This is a test message."}`,
	} {
		in, err := ParseMessageInput([]byte(raw))
		require.NoError(t, err, raw)
		assert.Nil(t, in.Subject, raw)
	}
}

func TestParseMessageInput_InvalidBody(t *testing.T) {
	for _, raw := range []string{``, `{bad json`, `[]`, `null`, `"text"`} {
		_, err := ParseMessageInput([]byte(raw))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, raw)
		assert.Equal(t, "", verr.Field)
		assert.Equal(t, "Invalid JSON body", verr.Message)
	}
}

func TestParseMessageInput_WrongTypes(t *testing.T) {
	tests := []struct {
		raw       string
		wantField string
		wantMsg   string
	}{
		{`{"name":42,"email":"jane@example.com","message":"This is a test message."}`, "name", "Expected string, received number"},
		{`{"name":"Jane","email":["a"],"message":"This is a test message."}`, "email", "Expected string, received array"},
		{`{"name":"Jane","email":"jane@example.com","subject":false,"message":"This is a test message."}`, "subject", "Expected string, received boolean"},
		{`{"name":"Jane","email":"jane@example.com","message":{}}`, "message", "Expected string, received object"},
	}
	for _, tt := range tests {
		_, err := ParseMessageInput([]byte(tt.raw))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, tt.raw)
		assert.Equal(t, tt.wantField, verr.Field)
		assert.Equal(t, tt.wantMsg, verr.Message)
	}
}

func TestParseMessageInput_TypeAndRuleErrorsKeepDeclarationOrder(t *testing.T) {
	// message has the wrong type but name fails first
	raw := `{"message":7,"name":"J","email":"jane@example.com"}`
	_, err := ParseMessageInput([]byte(raw))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	// subject type error comes before the message rule error
	raw = `{"name":"Jane","email":"jane@example.com","subject":1,"message":"short"}`
	_, err = ParseMessageInput([]byte(raw))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "subject", verr.Field)
}

func TestParseMessageInput_MatchesValidateMessageInput(t *testing.T) {
	corpus := []MessageInput{
		validInput(),
		{Name: "J", Email: "not-an-email", Message: "short"},
		{Name: "Jo", Email: "jo@example.org", Message: "0123456789"},
		{Name: "Jo", Email: "jo@", Message: "0123456789"},
		{Name: "Jo", Email: "jo@example.org", Message: "012345678"},
		{Name: "", Email: "", Message: ""},
	}
	for _, in := range corpus {
		raw, err := json.Marshal(in)
		require.NoError(t, err)

		want, wantErr := ValidateMessageInput(in)
		got, gotErr := ParseMessageInput(raw)
		assert.Equal(t, wantErr, gotErr)
		assert.Equal(t, want, got)
	}
}

func TestParseMessage_RoundTrip(t *testing.T) {
	orig := Message{
		ID:        7,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Subject:   Ptr("Hello"),
		Message:   "This is a test message.",
		CreatedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	got, err := ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, orig, got)

	orig.Subject = nil
	raw, err = json.Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subject":null`)
	got, err = ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestParseMessage_RejectsIncompleteBody(t *testing.T) {
	_, err := ParseMessage([]byte(`{"id":1,"name":"Jane"}`))
	assert.Error(t, err)

	_, err = ParseMessage([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}

func TestParseErrorResponse(t *testing.T) {
	got, err := ParseErrorResponse([]byte(`{"message":"Name is required","field":"name"}`))
	require.NoError(t, err)
	assert.Equal(t, ErrorResponse{Message: "Name is required", Field: "name"}, got)

	_, err = ParseErrorResponse([]byte(`{"field":"name"}`))
	assert.Error(t, err)
}

func TestParsePrograms(t *testing.T) {
	raw := `[{"id":1,"title":"Inclusion Training","description":"Workshops","category":"training","imageUrl":null,
	          "gallery":[{"type":"video","src":"/v.mp4"},{"type":"image","src":"/i.png"}]},
	         {"id":2,"title":"Community Empowerment","description":"Grassroots","category":"community","imageUrl":"/c.png"}]`

	programs, err := ParsePrograms([]byte(raw))
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, Gallery{VideoItem{Src: "/v.mp4"}, ImageItem{Src: "/i.png"}}, programs[0].Gallery)
	assert.Nil(t, programs[0].ImageURL)
	assert.Nil(t, programs[1].Gallery)
	assert.Equal(t, "/c.png", *programs[1].ImageURL)

	empty, err := ParsePrograms([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, empty)

	_, err = ParsePrograms([]byte(`[{"id":1,"title":"","description":"d","category":"c"}]`))
	assert.Error(t, err)
}

func TestParseStories(t *testing.T) {
	raw := `[{"id":1,"title":"Finding My Voice","content":"...","beneficiaryName":"Sarah M.","imageUrl":null}]`

	stories, err := ParseStories([]byte(raw))
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Sarah M.", stories[0].BeneficiaryName)

	_, err = ParseStories([]byte(`{}`))
	assert.Error(t, err)
}
