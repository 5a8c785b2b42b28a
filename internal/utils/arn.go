package utils

import "strings"

// PermissionSetID returns the ps-* identifier from a permission set ARN,
// the segment after the final "/". Input without a "/" comes back unchanged.
func PermissionSetID(arn string) string {
	if i := strings.LastIndexByte(arn, '/'); i >= 0 {
		return arn[i+1:]
	}
	return arn
}

// InstanceID returns the ssoins-* identifier embedded in an SSO ARN. Both
// ARN shapes carry one: instance ARNs as the final segment, permission set
// ARNs as the segment before the ps-* id. Input with no ssoins segment comes
// back unchanged.
func InstanceID(arn string) string {
	for _, seg := range strings.Split(arn, "/") {
		if strings.HasPrefix(seg, "ssoins-") {
			return seg
		}
	}
	return arn
}
