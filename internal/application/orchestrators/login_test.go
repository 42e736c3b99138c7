package orchestrators

import (
	"context"
	"errors"
	"testing"

	"fitfront/internal/adapters/upstream"
)

func TestExecuteLoginEmptyCredentials(t *testing.T) {
	tests := []struct {
		name  string
		input LoginInput
	}{
		{"no email", LoginInput{Password: "secret123"}},
		{"no password", LoginInput{Email: "jo@example.com"}},
		{"neither", LoginInput{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteLogin(context.Background(), tt.input, LoginDeps{Auth: &fakeAuth{}})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestExecuteLoginRejectedUpstream(t *testing.T) {
	deps := LoginDeps{Auth: &fakeAuth{err: upstream.ErrUnauthorized}}
	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "jo@example.com", Password: "wrong"}, deps)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestExecuteLoginTransportErrorPassesThrough(t *testing.T) {
	deps := LoginDeps{Auth: &fakeAuth{err: errUpstreamDown}}
	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "jo@example.com", Password: "secret123"}, deps)
	if !errors.Is(err, errUpstreamDown) {
		t.Errorf("err = %v, want transport error unchanged", err)
	}
}

func TestExecuteLoginSuccess(t *testing.T) {
	deps := LoginDeps{Auth: &fakeAuth{result: upstream.LoginResult{
		Token: "bearer-abc",
		Name:  "Jo",
		Email: "jo@example.com",
		Role:  "user",
	}}}
	result, err := ExecuteLogin(context.Background(), LoginInput{Email: "jo@example.com", Password: "secret123"}, deps)
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if result.Token != "bearer-abc" || result.Name != "Jo" || result.Role != "user" {
		t.Errorf("result = %+v", result)
	}
}
