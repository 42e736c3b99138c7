package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, time.Second), srv
}

// TestFetchListEnvelopeVariants verifies that a bare array and every wrapped
// variant decode identically.
func TestFetchListEnvelopeVariants(t *testing.T) {
	bodies := map[string]string{
		"bare array":      `[{"id": 1}, {"id": 2}]`,
		"data envelope":   `{"data": [{"id": 1}, {"id": 2}]}`,
		"orders envelope": `{"orders": [{"id": 1}, {"id": 2}]}`,
		"users envelope":  `{"users": [{"id": 1}, {"id": 2}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			})
			defer srv.Close()

			records, err := client.FetchList(context.Background(), "tok", srv.URL+"/things")
			if err != nil {
				t.Fatalf("FetchList: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("got %d records, want 2", len(records))
			}
		})
	}
}

func TestFetchListNonObjectElementsDropped(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1}, "stray", 7, {"id": 2}]`))
	})
	defer srv.Close()

	records, err := client.FetchList(context.Background(), "", srv.URL+"/things")
	if err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestFetchSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	if _, err := client.FetchList(context.Background(), "secret-token", srv.URL+"/things"); err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want Bearer secret-token", gotAuth)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})
		_, err := client.FetchList(context.Background(), "", srv.URL+"/things")
		srv.Close()
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: err = %v, want ErrUnauthorized", code, err)
		}
	}
}

// TestMutateEmptyBodyIsImplicitSuccess covers the upstream's habit of
// answering mutations with no body at all.
func TestMutateEmptyBodyIsImplicitSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	result, err := client.Mutate(context.Background(), "tok", http.MethodPost, srv.URL+"/things/add", map[string]string{"name": "x"})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q, want success", result.Status)
	}
}

func TestMutateDecodesStatusEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "message": "created"}`))
	})
	defer srv.Close()

	result, err := client.Mutate(context.Background(), "tok", http.MethodPost, srv.URL+"/things/add", nil)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if result.Message != "created" {
		t.Errorf("Message = %q, want created", result.Message)
	}
}

// TestMutateTruncatedBodyIsAnError covers a response cut off mid-body: the
// read failure must surface instead of passing as implicit success.
func TestMutateTruncatedBodyIsAnError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte(`{"status":`))
	})
	defer srv.Close()

	if _, err := client.Mutate(context.Background(), "tok", http.MethodPost, srv.URL+"/things/add", nil); err == nil {
		t.Fatal("expected an error for a truncated response body")
	}
}

func TestLoginTokenFieldVariants(t *testing.T) {
	bodies := []string{
		`{"token": "t1", "role": "admin"}`,
		`{"access_token": "t1", "role": "admin"}`,
		`{"data": {"jwt": "t1", "role": "admin"}}`,
	}
	for _, body := range bodies {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		result, err := client.Login(context.Background(), "a@b.com", "pw")
		srv.Close()
		if err != nil {
			t.Fatalf("Login with %s: %v", body, err)
		}
		if result.Token != "t1" {
			t.Errorf("Token = %q, want t1 (body %s)", result.Token, body)
		}
		if result.Role != "admin" {
			t.Errorf("Role = %q, want admin (body %s)", result.Role, body)
		}
		if result.Email != "a@b.com" {
			t.Errorf("Email = %q, want fallback to input", result.Email)
		}
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "welcome"}`))
	})
	defer srv.Close()

	if _, err := client.Login(context.Background(), "a@b.com", "pw"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Login without token = %v, want ErrUnauthorized", err)
	}
}

// TestCancelCourseRequestFallsBackThroughPaths verifies the compatibility
// shim walks the historical paths until one answers.
func TestCancelCourseRequestFallsBackThroughPaths(t *testing.T) {
	var paths []string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "canecl") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	if err := client.CancelCourseRequest(context.Background(), "tok", "cr-9"); err != nil {
		t.Fatalf("CancelCourseRequest: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("tried %d paths, want 2: %v", len(paths), paths)
	}
	if !strings.HasSuffix(paths[1], "/canecl/cr-9") {
		t.Errorf("second path = %q, want the misspelled fallback", paths[1])
	}
}

// TestCancelCourseRequestEnvelopeFailureIsTerminal covers an upstream that
// answers 200 but refuses the cancellation in the status envelope: the shim
// must report the failure, not try the next path or claim success.
func TestCancelCourseRequestEnvelopeFailureIsTerminal(t *testing.T) {
	var calls int
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "error", "message": "cannot cancel"}`))
	})
	defer srv.Close()

	err := client.CancelCourseRequest(context.Background(), "tok", "cr-9")
	if err == nil || err.Error() != "cannot cancel" {
		t.Fatalf("err = %v, want the envelope message", err)
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1 (envelope failure is terminal)", calls)
	}
}

func TestCancelCourseRequestStopsOnRealError(t *testing.T) {
	var calls int
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := client.CancelCourseRequest(context.Background(), "tok", "cr-9")
	if err == nil {
		t.Fatal("expected error")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("err = %v, want StatusError 500", err)
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1 (no fallback on non-404)", calls)
	}
}

func TestUploadSendsMixedMultipartFields(t *testing.T) {
	var gotURL, gotFile string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotURL = r.FormValue("image_url")
		if file, _, err := r.FormFile("image"); err == nil {
			buf := make([]byte, 16)
			n, _ := file.Read(buf)
			gotFile = string(buf[:n])
			file.Close()
		}
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	_, err := client.Upload(context.Background(), "tok", srv.URL+"/products/upload", "https://cdn/img.png", strings.NewReader("binarydata"), "img.png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotURL != "https://cdn/img.png" {
		t.Errorf("image_url = %q", gotURL)
	}
	if gotFile != "binarydata" {
		t.Errorf("file content = %q", gotFile)
	}
}
