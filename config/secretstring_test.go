package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		input    SecretString
		wantJSON string
		wantYAML any
	}{
		{name: "empty", input: "", wantJSON: "null", wantYAML: nil},
		{name: "short", input: "x", wantJSON: `"` + SecretStringValue + `"`, wantYAML: SecretStringValue},
		{name: "bearer token", input: "Bearer abcdef0123456789", wantJSON: `"` + SecretStringValue + `"`, wantYAML: SecretStringValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.wantJSON)
			}

			y, err := tt.input.MarshalYAML()
			if err != nil {
				t.Fatalf("MarshalYAML() error = %v", err)
			}
			if y != tt.wantYAML {
				t.Errorf("MarshalYAML() = %v, want %v", y, tt.wantYAML)
			}
		})
	}
}

func TestSecretString_ImagesConfigDump(t *testing.T) {
	cfg := ImagesConfig{UserAgent: "hview", Authorization: "Bearer very-secret"}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "very-secret") {
		t.Errorf("yaml output leaks secret: %s", data)
	}
	if !strings.Contains(string(data), "authorization: "+SecretStringValue) {
		t.Errorf("yaml output has no redacted authorization: %s", data)
	}

	data, err = json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "very-secret") {
		t.Errorf("json output leaks secret: %s", data)
	}
}

func TestSecretString_StringAndReveal(t *testing.T) {
	s := SecretString("token")
	if got := fmt.Sprintf("%v", s); got != SecretStringValue {
		t.Errorf("formatted = %q, want %q", got, SecretStringValue)
	}
	if got := s.Reveal(); got != "token" {
		t.Errorf("Reveal() = %q, want token", got)
	}
	if got := SecretString("").String(); got != "" {
		t.Errorf("empty String() = %q, want empty", got)
	}
}
