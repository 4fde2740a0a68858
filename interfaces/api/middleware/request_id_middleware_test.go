package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKeep bool
	}{
		{name: "generated when missing", header: "", wantKeep: false},
		{name: "client id kept", header: "req-123_abc.def", wantKeep: true},
		{name: "too long replaced", header: strings.Repeat("a", maxRequestIDLength+1), wantKeep: false},
		{name: "unsafe characters replaced", header: "abc<script>", wantKeep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(RequestIDMiddleware())
			app.Get("/", func(c *fiber.Ctx) error {
				return c.SendString(GetRequestIDFromContext(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			got := resp.Header.Get(RequestIDHeader)
			if tt.wantKeep {
				assert.Equal(t, tt.header, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "expected generated uuid, got %q", got)
			}
		})
	}
}
