package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// IsNotFound reports whether the error is a resource-not-found response
// from an AWS API. The AgentCore and IAM services use typed not-found
// exceptions, CloudFormation reports missing stacks as a ValidationError.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "ResourceNotFoundException", "NoSuchEntity", "NoSuchEntityException":
		return true
	case "ValidationError":
		return strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}

	return false
}

// IsAccessDenied reports whether the error is an authorization failure
func IsAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation":
		return true
	}

	return false
}
