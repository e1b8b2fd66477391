package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zxkane/aws-skills/internal/errors"
)

var (
	gatewayIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{1,100}$`)
	stackNamePattern         = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{0,127}$`)
	regionPattern            = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	skillNamePattern         = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Validator provides validation functions for various inputs
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGatewayIdentifier validates an AgentCore gateway identifier
func (v *Validator) ValidateGatewayIdentifier(identifier string) error {
	if identifier == "" {
		return errors.NewValidationError("gateway identifier is required", nil)
	}

	if !gatewayIdentifierPattern.MatchString(identifier) {
		return errors.NewValidationError(
			"invalid gateway identifier format. Expected letters, digits and hyphens, up to 100 characters",
			nil,
		)
	}

	return nil
}

// ValidateStackName validates CloudFormation stack name format
func (v *Validator) ValidateStackName(stackName string) error {
	if stackName == "" {
		return errors.NewValidationError("stack name cannot be empty", nil)
	}

	if !stackNamePattern.MatchString(stackName) {
		return errors.NewValidationError(
			"invalid stack name format. Must start with a letter and contain only letters, digits and hyphens (max 128 characters)",
			nil,
		)
	}

	return nil
}

// ValidateRegion validates AWS region format
func (v *Validator) ValidateRegion(region string) error {
	if region == "" {
		return errors.NewValidationError("region is required", nil)
	}

	if !regionPattern.MatchString(region) {
		return errors.NewValidationError(
			fmt.Sprintf("invalid region '%s'. Expected format: us-east-1", region),
			nil,
		)
	}

	return nil
}

// ValidateAccountID validates AWS account ID format
func (v *Validator) ValidateAccountID(accountID string) error {
	if accountID == "" {
		return errors.NewValidationError("account ID cannot be empty", nil)
	}

	if len(accountID) != 12 {
		return errors.NewValidationError("account ID must be 12 digits", nil)
	}

	for _, char := range accountID {
		if char < '0' || char > '9' {
			return errors.NewValidationError("account ID must contain only digits", nil)
		}
	}

	return nil
}

// ValidateSkillName validates a skill name from SKILL.md frontmatter
func (v *Validator) ValidateSkillName(name string) error {
	if name == "" {
		return errors.NewValidationError("skill name is required", nil)
	}

	if len(name) > 64 {
		return errors.NewValidationError("skill name must be 64 characters or fewer", nil)
	}

	if !skillNamePattern.MatchString(name) {
		return errors.NewValidationError(
			"invalid skill name format. Expected lowercase letters, digits and hyphens (kebab-case)",
			nil,
		)
	}

	return nil
}

// ValidateOutputFormat validates the output format option
func (v *Validator) ValidateOutputFormat(format string) error {
	return v.ValidateStringInSlice(format, []string{"table", "json", "csv"}, "output format")
}

// ValidateRequiredString validates that a string is not empty
func (v *Validator) ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(fmt.Sprintf("%s is required", fieldName), nil)
	}
	return nil
}

// ValidateStringInSlice validates that a string is in a given slice
func (v *Validator) ValidateStringInSlice(value string, validValues []string, fieldName string) error {
	if value == "" {
		return nil // Allow empty values for optional fields
	}

	for _, validValue := range validValues {
		if value == validValue {
			return nil
		}
	}

	return errors.NewValidationError(
		fmt.Sprintf("invalid %s '%s'. Valid options: %v", fieldName, value, validValues),
		nil,
	)
}
