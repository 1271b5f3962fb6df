package crypt

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEncryptJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewSealer("console-secret", "salt-v1")
	payload := map[string]any{"question": "What is Shaktishree?", "isActive": true}

	sealed, err := s.EncryptJSON(payload)
	if err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}
	if sealed == "" {
		t.Fatalf("sealed payload empty")
	}

	plain, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(plain, &got); err != nil {
		t.Fatalf("unmarshal opened payload: %v", err)
	}
	if got["question"] != "What is Shaktishree?" || got["isActive"] != true {
		t.Fatalf("round trip mismatch: %v", got)
	}
}

func TestEncryptJSON_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s := NewSealer("secret", "salt")
	payload := map[string]any{"a": "1", "nested": map[string]any{"b": "2"}}
	want := map[string]any{"a": "1", "nested": map[string]any{"b": "2"}}

	if _, err := s.EncryptJSON(payload); err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}
	if !reflect.DeepEqual(payload, want) {
		t.Fatalf("input mutated: %v", payload)
	}
}

func TestEncryptString_WrongKeyFails(t *testing.T) {
	t.Parallel()

	a := NewSealer("secret-a", "salt")
	b := NewSealer("secret-b", "salt")

	sealed, err := a.EncryptString("FAQ-0007")
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}

	plain, err := a.Open(sealed)
	if err != nil {
		t.Fatalf("Open with right key: %v", err)
	}
	if string(plain) != "FAQ-0007" {
		t.Fatalf("got %q, want FAQ-0007", plain)
	}

	if _, err := b.Open(sealed); err == nil {
		t.Fatalf("Open with wrong key must fail")
	}
}

func TestSealer_SameConfigSameKey(t *testing.T) {
	t.Parallel()

	a := NewSealer("secret", "salt")
	b := NewSealer("secret", "salt")

	sealed, err := a.EncryptString("EVT-1")
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}
	// A second sealer built from the same config must be able to open it.
	plain, err := b.Open(sealed)
	if err != nil {
		t.Fatalf("Open across sealers: %v", err)
	}
	if string(plain) != "EVT-1" {
		t.Fatalf("got %q", plain)
	}
}

func TestOpen_Garbage(t *testing.T) {
	t.Parallel()

	s := NewSealer("secret", "salt")
	if _, err := s.Open("not-base64!!"); err == nil {
		t.Fatalf("Open must reject non-base64 input")
	}
	if _, err := s.Open("YWJj"); err == nil { // "abc", far too short
		t.Fatalf("Open must reject too-short ciphertext")
	}
}
