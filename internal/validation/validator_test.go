package validation

import (
	"testing"

	"github.com/zxkane/aws-skills/internal/errors"
)

func TestValidator_ValidateGatewayIdentifier(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		identifier string
		wantErr    bool
		errType    errors.ErrorType
	}{
		{
			name:       "valid gateway identifier",
			identifier: "my-gateway-abc123xyz",
			wantErr:    false,
		},
		{
			name:       "empty gateway identifier",
			identifier: "",
			wantErr:    true,
			errType:    errors.ErrorTypeValidation,
		},
		{
			name:       "gateway identifier with spaces",
			identifier: "my gateway",
			wantErr:    true,
			errType:    errors.ErrorTypeValidation,
		},
		{
			name:       "gateway identifier with slash",
			identifier: "my/gateway",
			wantErr:    true,
			errType:    errors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateGatewayIdentifier(tt.identifier)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGatewayIdentifier() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.wantErr {
				if !errors.IsType(err, tt.errType) {
					t.Errorf("ValidateGatewayIdentifier() error type = %T, want %v", err, tt.errType)
				}
			}
		})
	}
}

func TestValidator_ValidateStackName(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		stackName string
		wantErr   bool
	}{
		{
			name:      "valid stack name",
			stackName: "agentcore-gateway-prod",
			wantErr:   false,
		},
		{
			name:      "empty stack name",
			stackName: "",
			wantErr:   true,
		},
		{
			name:      "stack name starting with digit",
			stackName: "1-gateway",
			wantErr:   true,
		},
		{
			name:      "stack name with underscore",
			stackName: "gateway_stack",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStackName(tt.stackName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStackName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateRegion(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		region  string
		wantErr bool
	}{
		{
			name:    "valid region us-east-1",
			region:  "us-east-1",
			wantErr: false,
		},
		{
			name:    "valid region ap-southeast-2",
			region:  "ap-southeast-2",
			wantErr: false,
		},
		{
			name:    "empty region",
			region:  "",
			wantErr: true,
		},
		{
			name:    "invalid region",
			region:  "useast1",
			wantErr: true,
		},
		{
			name:    "region with uppercase",
			region:  "US-EAST-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRegion(tt.region)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateAccountID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		accountID string
		wantErr   bool
	}{
		{
			name:      "valid account ID",
			accountID: "123456789012",
			wantErr:   false,
		},
		{
			name:      "empty account ID",
			accountID: "",
			wantErr:   true,
		},
		{
			name:      "account ID too short",
			accountID: "12345678901",
			wantErr:   true,
		},
		{
			name:      "account ID too long",
			accountID: "1234567890123",
			wantErr:   true,
		},
		{
			name:      "account ID with non-digits",
			accountID: "12345678901a",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateAccountID(tt.accountID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccountID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateSkillName(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		skillName string
		wantErr   bool
	}{
		{
			name:      "valid skill name",
			skillName: "aws-cdk",
			wantErr:   false,
		},
		{
			name:      "valid single word",
			skillName: "bedrock",
			wantErr:   false,
		},
		{
			name:      "empty skill name",
			skillName: "",
			wantErr:   true,
		},
		{
			name:      "uppercase skill name",
			skillName: "AWS-CDK",
			wantErr:   true,
		},
		{
			name:      "skill name with underscore",
			skillName: "aws_cdk",
			wantErr:   true,
		},
		{
			name:      "skill name with trailing hyphen",
			skillName: "aws-cdk-",
			wantErr:   true,
		},
		{
			name:      "skill name too long",
			skillName: "a-very-long-skill-name-that-goes-well-past-the-sixty-four-character-limit",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSkillName(tt.skillName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSkillName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateOutputFormat(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{
			name:    "valid format table",
			format:  "table",
			wantErr: false,
		},
		{
			name:    "valid format json",
			format:  "json",
			wantErr: false,
		},
		{
			name:    "valid format csv",
			format:  "csv",
			wantErr: false,
		},
		{
			name:    "empty format (optional)",
			format:  "",
			wantErr: false,
		},
		{
			name:    "invalid format",
			format:  "yaml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateRequiredString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		value     string
		fieldName string
		wantErr   bool
	}{
		{
			name:      "valid required string",
			value:     "test-value",
			fieldName: "test-field",
			wantErr:   false,
		},
		{
			name:      "empty required string",
			value:     "",
			fieldName: "test-field",
			wantErr:   true,
		},
		{
			name:      "whitespace only string",
			value:     "   ",
			fieldName: "test-field",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRequiredString(tt.value, tt.fieldName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequiredString() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateStringInSlice(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		value       string
		validValues []string
		fieldName   string
		wantErr     bool
	}{
		{
			name:        "valid value in slice",
			value:       "option1",
			validValues: []string{"option1", "option2", "option3"},
			fieldName:   "test-field",
			wantErr:     false,
		},
		{
			name:        "empty value (optional)",
			value:       "",
			validValues: []string{"option1", "option2", "option3"},
			fieldName:   "test-field",
			wantErr:     false,
		},
		{
			name:        "invalid value not in slice",
			value:       "invalid-option",
			validValues: []string{"option1", "option2", "option3"},
			fieldName:   "test-field",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStringInSlice(tt.value, tt.validValues, tt.fieldName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStringInSlice() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
