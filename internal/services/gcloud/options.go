package gcloud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"audiocourse/internal/services"
)

// ClientOptions builds the option set shared by every Google client: the
// service account key file and the project billed for quota.
func ClientOptions(credentialsFile, projectID string) []option.ClientOption {
	var opts []option.ClientOption
	if creds := strings.TrimSpace(credentialsFile); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	if project := strings.TrimSpace(projectID); project != "" {
		opts = append(opts, option.WithQuotaProject(project))
	}
	return opts
}

// wrapAPIError classifies a Google API failure. Rate limits and server errors
// are transient; everything else is an external tool failure.
func wrapAPIError(component, operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("%s returned HTTP %d", component, apiErr.Code)
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return services.Wrap(services.ErrTransient, component, operation, msg, err)
		}
		return services.Wrap(services.ErrExternalTool, component, operation, msg, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, component, operation, "request timed out", err)
	}
	return services.Wrap(services.ErrExternalTool, component, operation, "request failed", err)
}
