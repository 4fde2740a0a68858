package utils

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	CollectionID *int64     `json:"collectionId" validate:"required,min=0"`
	Content      *string    `json:"content" validate:"required"`
	Done         *bool      `json:"done" validate:"omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt" validate:"omitempty"`
	Name         string     `json:"name" validate:"omitempty,min=4,max=20"`
	Color        string     `json:"color" validate:"omitempty,oneof=sunset poppy rosebud"`
}

func decodeSample(t *testing.T, body string) (*sampleRequest, error) {
	t.Helper()
	var req sampleRequest
	err := json.Unmarshal([]byte(body), &req)
	return &req, err
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{
			name:   "valid with zero values",
			body:   `{"collectionId":0,"content":""}`,
			fields: nil,
		},
		{
			name: "missing fields",
			body: `{}`,
			fields: map[string]string{
				"collectionId": "is required",
				"content":      "is required",
			},
		},
		{
			name:   "negative collection id",
			body:   `{"collectionId":-1,"content":"x"}`,
			fields: map[string]string{"collectionId": "must be greater than or equal to 0"},
		},
		{
			name: "name and color",
			body: `{"collectionId":1,"content":"x","name":"abc","color":"teal"}`,
			fields: map[string]string{
				"name":  "must be at least 4 characters",
				"color": "must be one of: sunset, poppy, rosebud",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := decodeSample(t, tt.body)
			require.NoError(t, err)

			err = ValidateStruct(req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, GetValidationErrors(err))
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{"valid", `{"collectionId":1,"content":"x","done":true,"expiresAt":"2024-05-01T12:00:00Z"}`, nil},
		{"case insensitive keys", `{"CollectionID":1,"Content":"x"}`, nil},
		{"content not a string", `{"collectionId":1,"content":5}`, map[string]string{"content": "must be of type string"}},
		{"collection id not a number", `{"collectionId":"one","content":"x"}`, map[string]string{"collectionId": "must be of type number"}},
		{"done not a boolean", `{"collectionId":1,"content":"x","done":"yes"}`, map[string]string{"done": "must be of type boolean"}},
		{"bad date string", `{"collectionId":1,"content":"x","expiresAt":"tomorrow"}`, map[string]string{"expiresAt": "must be an RFC 3339 date"}},
		{"date not a string", `{"collectionId":1,"content":"x","expiresAt":12}`, map[string]string{"expiresAt": "must be an RFC 3339 date"}},
		{"not json", `{"content":`, map[string]string{"body": "must be a valid JSON object"}},
		{"array body", `[1,2]`, map[string]string{"body": "must be a valid JSON object"}},
		{
			name: "empty body",
			body: ``,
			fields: map[string]string{
				"collectionId": "is required",
				"content":      "is required",
			},
		},
		{
			name: "type error and rule error together",
			body: `{"collectionId":-1,"content":5}`,
			fields: map[string]string{
				"collectionId": "must be greater than or equal to 0",
				"content":      "must be of type string",
			},
		},
		{
			name: "type errors on every field",
			body: `{"collectionId":"x","content":false,"expiresAt":"soon","color":"teal"}`,
			fields: map[string]string{
				"collectionId": "must be of type number",
				"content":      "must be of type string",
				"expiresAt":    "must be an RFC 3339 date",
				"color":        "must be one of: sunset, poppy, rosebud",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req sampleRequest
			assert.Equal(t, tt.fields, DecodeAndValidate([]byte(tt.body), &req))
		})
	}
}

func TestGetValidationErrorsNonValidatorError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
	assert.Equal(t, map[string]string{"_": "boom"}, GetValidationErrors(errors.New("boom")))
}
