package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsVerified(t *testing.T) {
	for status, want := range map[string]bool{
		DomainStatusPending:  false,
		DomainStatusVerified: true,
		DomainStatusFailed:   false,
	} {
		d := WorkspaceDomain{Status: status}
		if d.IsVerified() != want {
			t.Errorf("IsVerified with status %q = %v, want %v", status, d.IsVerified(), want)
		}
	}
}

func TestVerificationTokenNeverSerialized(t *testing.T) {
	d := WorkspaceDomain{
		ID:                "d1",
		WorkspaceID:       "ws1",
		Domain:            "forms.acme.com",
		VerificationToken: "supersecret",
		Status:            DomainStatusPending,
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "supersecret") {
		t.Fatalf("verification token leaked into JSON: %s", b)
	}
}
