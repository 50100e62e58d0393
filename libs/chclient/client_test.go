package chclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("unexpected method %v", r.Method)
		}
		fmt.Fprint(w, `{"uid":"abc123","initialSeed":-2023406815}`)
	}))
	defer srv.Close()
	cl := NewClient(srv.URL, "chclient-test")
	ch, err := cl.GetChallenge()
	if err != nil {
		t.Fatal(err)
	}
	if string(ch.UID) != `"abc123"` {
		t.Fatalf("uid not preserved verbatim: %v", string(ch.UID))
	}
	if ch.InitialSeed != -2023406815 {
		t.Fatalf("bad seed %v", ch.InitialSeed)
	}
}

func TestSubmitSequencePayload(t *testing.T) {
	seq := make([]int32, SequenceLen)
	for i := range seq {
		seq[i] = int32(i) - 64
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("unexpected method %v", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %v", ct)
		}
		var sub struct {
			UID       json.RawMessage `json:"uid"`
			Generated []int32         `json:"generated"`
		}
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Errorf("cannot decode submission: %v", err)
		}
		if string(sub.UID) != `"abc123"` {
			t.Errorf("uid not echoed: %v", string(sub.UID))
		}
		if len(sub.Generated) != SequenceLen {
			t.Errorf("submitted %v values, want %v", len(sub.Generated), SequenceLen)
		}
		for i := range sub.Generated {
			if sub.Generated[i] != seq[i] {
				t.Errorf("order broken at %v", i)
				break
			}
		}
		fmt.Fprint(w, `{"correct":true}`)
	}))
	defer srv.Close()
	cl := NewClient(srv.URL, "chclient-test")
	body, err := cl.SubmitSequence(json.RawMessage(`"abc123"`), seq)
	if err != nil {
		t.Fatal(err)
	}
	if body != `{"correct":true}` {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestBadStatusCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintln(w, "no challenge for you")
	}))
	defer srv.Close()
	cl := NewClient(srv.URL, "chclient-test")
	_, err := cl.GetChallenge()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "no challenge for you") {
		t.Fatalf("error missing status or body: %v", err)
	}
	_, err = cl.SubmitSequence(json.RawMessage(`1`), make([]int32, SequenceLen))
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("submit error missing status: %v", err)
	}
}

func TestGetChallengeParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not json</html>")
	}))
	defer srv.Close()
	cl := NewClient(srv.URL, "chclient-test")
	if _, err := cl.GetChallenge(); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestVerificationRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{"verificationCode":"deadbeef"}`)
		case "POST":
			var v struct {
				VerificationCode json.RawMessage `json:"verificationCode"`
			}
			if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
				t.Errorf("cannot decode: %v", err)
			}
			if string(v.VerificationCode) != `"deadbeef"` {
				t.Errorf("code not echoed: %v", string(v.VerificationCode))
			}
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, "ok")
		}
	}))
	defer srv.Close()
	cl := NewClient(srv.URL, "chclient-test")
	code, err := cl.GetVerificationCode()
	if err != nil {
		t.Fatal(err)
	}
	body, ctype, err := cl.SubmitVerificationCode(code)
	if err != nil {
		t.Fatal(err)
	}
	if body != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
	if !strings.HasPrefix(ctype, "text/plain") {
		t.Fatalf("unexpected content type %v", ctype)
	}
}
