package utils

import "testing"

func TestPermissionSetID(t *testing.T) {
	cases := map[string]string{
		"arn:aws:sso:::permissionSet/ssoins-1234567890abcdef/ps-abc123def456": "ps-abc123def456",
		"ps-already-bare": "ps-already-bare",
		"":                "",
	}
	for in, want := range cases {
		if got := PermissionSetID(in); got != want {
			t.Errorf("PermissionSetID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInstanceID(t *testing.T) {
	cases := map[string]string{
		"arn:aws:sso:::permissionSet/ssoins-1234567890abcdef/ps-abc123def456": "ssoins-1234567890abcdef",
		"arn:aws:sso:::instance/ssoins-1234567890abcdef":                      "ssoins-1234567890abcdef",
		"arn:aws:iam::123456789012:role/some-role":                            "arn:aws:iam::123456789012:role/some-role",
		"": "",
	}
	for in, want := range cases {
		if got := InstanceID(in); got != want {
			t.Errorf("InstanceID(%q) = %q, want %q", in, got, want)
		}
	}
}
