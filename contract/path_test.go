package contract

import (
	"reflect"
	"testing"
)

func TestPathParams(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
	}{
		{"/users", []string{}},
		{"/users/{id}", []string{"id"}},
		{"/orgs/{org_id}/users/{id}", []string{"org_id", "id"}},
		{"/users/{id}/posts", []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := PathParams(tt.path)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"root", "/", false},
		{"plain", "/users", false},
		{"single param", "/users/{id}", false},
		{"two params", "/orgs/{org}/users/{id}", false},
		{"empty", "", true},
		{"no leading slash", "users", true},
		{"partial placeholder", "/users/{id", true},
		{"embedded placeholder", "/users/x{id}", true},
		{"empty placeholder", "/users/{}", true},
		{"bad name", "/users/{user-id}", true},
		{"duplicate placeholder", "/users/{id}/friends/{id}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		base     string
		suffix   string
		expected string
	}{
		{"", "/", "/"},
		{"", "/users", "/users"},
		{"/api", "", "/api"},
		{"/api/", "/users", "/api/users"},
		{"/api", "users", "/api/users"},
		{"/api", "/{id}", "/api/{id}"},
	}

	for _, tt := range tests {
		if got := JoinPath(tt.base, tt.suffix); got != tt.expected {
			t.Errorf("JoinPath(%q, %q): expected %q, got %q", tt.base, tt.suffix, tt.expected, got)
		}
	}
}
