package hcloud

import (
	"context"
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/mkserver/internal/provisioning"
)

// isResourceLocked checks if an error indicates a resource is locked.
// Locked resources occur while another action runs on them. These errors are retryable.
func isResourceLocked(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeLocked,   // Item is locked (action running)
		hcloud.ErrorCodeConflict, // Resource changed during request
		hcloud.ErrorCodeResourceLocked,
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeNotFound)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeRateLimitExceeded)
}

// waitStatus maps an error returned while waiting to a wait status.
func waitStatus(err error) provisioning.WaitStatus {
	var actionErr hcloud.ActionError
	switch {
	case err == nil:
		return provisioning.WaitReady
	case errors.As(err, &actionErr):
		return provisioning.WaitResourceFailure
	case errors.Is(err, context.DeadlineExceeded):
		return provisioning.WaitTimeout
	default:
		return provisioning.WaitTransportError
	}
}
