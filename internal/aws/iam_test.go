package aws

import "testing"

func TestRoleNameFromArn(t *testing.T) {
	tests := []struct {
		name     string
		roleArn  string
		expected string
	}{
		{
			name:     "plain role ARN",
			roleArn:  "arn:aws:iam::123456789012:role/GatewayExecutionRole",
			expected: "GatewayExecutionRole",
		},
		{
			name:     "role ARN with path",
			roleArn:  "arn:aws:iam::123456789012:role/service/agentcore/GatewayRole",
			expected: "GatewayRole",
		},
		{
			name:     "bare role name",
			roleArn:  "GatewayRole",
			expected: "GatewayRole",
		},
		{
			name:     "trailing slash",
			roleArn:  "arn:aws:iam::123456789012:role/",
			expected: "arn:aws:iam::123456789012:role/",
		},
		{
			name:     "empty string",
			roleArn:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleNameFromArn(tt.roleArn); got != tt.expected {
				t.Errorf("RoleNameFromArn(%q) = %q, want %q", tt.roleArn, got, tt.expected)
			}
		})
	}
}
