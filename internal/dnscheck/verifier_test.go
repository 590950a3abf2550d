package dnscheck

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeResolver returns canned answers so tests never touch real DNS.
type fakeResolver struct {
	cname    string
	cnameErr error
	txt      map[string][]string
	txtErr   error
}

func (f fakeResolver) LookupCNAME(_ context.Context, _ string) (string, error) {
	return f.cname, f.cnameErr
}

func (f fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if f.txtErr != nil {
		return nil, f.txtErr
	}
	return f.txt[name], nil
}

func newTestChecker(r Resolver) *Checker {
	return NewWithResolver(r, "cname.formloom.app", "_formloom", time.Second)
}

func TestVerify_TXTMatch_GatesOwnership(t *testing.T) {
	c := newTestChecker(fakeResolver{
		cname: "elsewhere.example.net.",
		txt:   map[string][]string{"_formloom.forms.acme.com": {"tok123"}},
	})

	res := c.Verify(context.Background(), "forms.acme.com", "tok123")
	if !res.TXTValid {
		t.Fatalf("expected TXTValid with matching record")
	}
	// CNAME points somewhere unrelated: informational only, must not matter.
	if res.CNAMEValid {
		t.Fatalf("unrelated CNAME target should not be valid")
	}
	if res.TXTRecordName != "_formloom.forms.acme.com" {
		t.Fatalf("unexpected TXT record name: %s", res.TXTRecordName)
	}
	if res.ExpectedCNAME != "cname.formloom.app" {
		t.Fatalf("unexpected expected CNAME: %s", res.ExpectedCNAME)
	}
}

func TestVerify_TXTValueTrimmed(t *testing.T) {
	c := newTestChecker(fakeResolver{
		txt: map[string][]string{"_formloom.forms.acme.com": {"  tok123  ", "other"}},
	})
	res := c.Verify(context.Background(), "forms.acme.com", "tok123")
	if !res.TXTValid {
		t.Fatalf("expected padded TXT value to match after trimming")
	}
}

func TestVerify_TXTWrongValue(t *testing.T) {
	c := newTestChecker(fakeResolver{
		txt: map[string][]string{"_formloom.forms.acme.com": {"tok999"}},
	})
	res := c.Verify(context.Background(), "forms.acme.com", "tok123")
	if res.TXTValid {
		t.Fatalf("wrong TXT value must not verify")
	}
}

func TestVerify_LookupFailuresAreNotErrors(t *testing.T) {
	c := newTestChecker(fakeResolver{
		cnameErr: errors.New("no such host"),
		txtErr:   errors.New("i/o timeout"),
	})
	// Must not panic or surface an error: both checks degrade to false.
	res := c.Verify(context.Background(), "forms.acme.com", "tok123")
	if res.CNAMEValid || res.TXTValid {
		t.Fatalf("lookup failures must yield negative results, got %+v", res)
	}
}

func TestVerify_CNAMETargetAndSubdomain(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"exact", "cname.formloom.app.", true},
		{"subdomain", "edge-7.cname.formloom.app.", true},
		{"case insensitive", "CNAME.Formloom.App.", true},
		{"suffix without dot boundary", "evilcname.formloom.app.", false},
		{"unrelated", "pages.example.dev.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChecker(fakeResolver{cname: tt.target})
			res := c.Verify(context.Background(), "forms.acme.com", "tok123")
			if res.CNAMEValid != tt.want {
				t.Fatalf("target %q: CNAMEValid = %v, want %v", tt.target, res.CNAMEValid, tt.want)
			}
		})
	}
}

func TestVerify_EmptyToken_NeverMatches(t *testing.T) {
	c := newTestChecker(fakeResolver{
		txt: map[string][]string{"_formloom.forms.acme.com": {""}},
	})
	res := c.Verify(context.Background(), "forms.acme.com", "")
	if res.TXTValid {
		t.Fatalf("empty token must never verify")
	}
}
