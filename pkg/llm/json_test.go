package llm

import (
	"errors"
	"testing"
)

func TestUnmarshalModelJSON(t *testing.T) {
	type payload struct {
		Summary string `json:"summary"`
	}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json",
			raw:  `{"summary": "ok"}`,
			want: "ok",
		},
		{
			name: "json fence",
			raw:  "```json\n{\"summary\": \"ok\"}\n```",
			want: "ok",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"summary\": \"ok\"}\n```",
			want: "ok",
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{\"summary\": \"ok\"}\n```\n  ",
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out payload
			if err := UnmarshalModelJSON(tt.raw, &out); err != nil {
				t.Fatalf("UnmarshalModelJSON() error = %v", err)
			}
			if out.Summary != tt.want {
				t.Errorf("summary = %q, want %q", out.Summary, tt.want)
			}
		})
	}
}

func TestUnmarshalModelJSONInvalid(t *testing.T) {
	var out struct{}
	err := UnmarshalModelJSON("the model wrote prose instead", &out)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	var aiErr *AIError
	if !errors.As(err, &aiErr) {
		t.Fatalf("error is %T, want *AIError", err)
	}
	if aiErr.Kind != KindParseError {
		t.Errorf("kind = %s, want %s", aiErr.Kind, KindParseError)
	}
}
