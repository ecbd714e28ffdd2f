package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/restmapper/errors"
)

func TestScopeChecks(t *testing.T) {
	tests := []struct {
		name  string
		check func(s *Scope)
		field string
		msg   string
	}{
		{"required", func(s *Scope) { s.Required("append", "  ") }, "get[video].append", "is required"},
		{"method", func(s *Scope) { s.Method("method", "patch") }, "get[video].method", "must be an upper-case HTTP method"},
		{"applies to one", func(s *Scope) { s.AppliesTo(false, "data", "assoc") }, "get[video].data", "only applies to assoc"},
		{"applies to two", func(s *Scope) { s.AppliesTo(false, "query", "get", "list") }, "get[video].query", "only applies to get and list"},
		{"applies to three", func(s *Scope) { s.AppliesTo(false, "append", "update", "delete", "get") }, "get[video].append", "only applies to update, delete and get"},
		{"check", func(s *Scope) { s.Check(false, "x", "custom error") }, "get[video].x", "custom error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			tc.check(v.Scope("get[video]"))
			errs := v.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Field != tc.field || errs[0].Message != tc.msg {
				t.Errorf("got %+v, want %s: %s", errs[0], tc.field, tc.msg)
			}
		})
	}
}

func TestScopePasses(t *testing.T) {
	v := New()
	s := v.Scope("")
	result := s.Required("name", "video").
		Method("method", "").
		Method("method", "PROPFIND").
		AppliesTo(true, "insert", "get").
		Check(true, "x", "y")
	if result != s {
		t.Error("expected chaining to return the same scope")
	}
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}
	if got := s.Path("name"); got != "name" {
		t.Errorf("Path() = %q", got)
	}
}

func TestScopeEach(t *testing.T) {
	v := New()
	v.Scope("list[video]").Each("query", []string{"limit", "", "page"}, func(s *Scope, field, value string) {
		s.Required(field, value)
	})
	errs := v.Errors()
	if len(errs) != 1 || errs[0].Field != "list[video].query[1]" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestValidatorValidate(t *testing.T) {
	if appErr := New().Validate(); appErr != nil {
		t.Errorf("expected nil for no errors, got %v", appErr)
	}

	v := New()
	v.Scope("insert[b]").Required("data", "")
	v.Scope("insert[a]").Required("data", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", appErr.Code)
	}
	if want := "insert[a].data: is required; insert[b].data: is required"; appErr.Message != want {
		t.Errorf("message = %q, want %q", appErr.Message, want)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("unexpected details %v", appErr.Details)
	}
}

func TestStructValidateValid(t *testing.T) {
	type Client struct {
		BaseURL string `json:"base_url" validate:"required,url"`
		Method  string `json:"method" validate:"omitempty,httpmethod"`
	}

	err := Validate(Client{BaseURL: "http://foo.sub.com/rest/v1", Method: "HEAD"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type Client struct {
		BaseURL string `json:"base_url" validate:"required,url"`
		Method  string `json:"method" validate:"omitempty,httpmethod"`
	}

	err := Validate(Client{BaseURL: "", Method: "get"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "base_url") {
		t.Errorf("expected error to mention 'base_url', got %q", errStr)
	}
	if !strings.Contains(errStr, "HTTP method") {
		t.Errorf("expected error to mention the method rule, got %q", errStr)
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestStructValidateOneOf(t *testing.T) {
	type Input struct {
		Codec string `json:"codec" validate:"omitempty,oneof=json msgpack"`
	}

	if err := Validate(Input{Codec: "msgpack"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	if err := Validate(Input{Codec: "xml"}); err == nil {
		t.Error("expected error for unknown codec")
	}
}

func TestIsHTTPMethod(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"GET", true},
		{"HEAD", true},
		{"PROPFIND", true},
		{"get", false},
		{"", false},
		{"PO ST", false},
	}
	for _, tc := range tests {
		if got := IsHTTPMethod(tc.in); got != tc.want {
			t.Errorf("IsHTTPMethod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
