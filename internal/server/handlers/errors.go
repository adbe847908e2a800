// Maps upstream Notion API failures to API errors.

package handlers

import (
	"errors"

	"github.com/notionctx/notionctx/internal/notion"
	"github.com/notionctx/notionctx/internal/server/dto"
)

// upstreamError converts an error from the Notion client into an APIError.
// Token rejections become 502 so callers can tell a bad deployment from a
// Notion outage; everything else, including network failures and upstream
// 5xx, becomes 503.
func upstreamError(err error) error {
	var apiErr *dto.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var nerr *notion.Error
	if errors.As(err, &nerr) {
		switch nerr.Status {
		case 401, 403:
			return dto.UpstreamDenied(err)
		}
	}
	return dto.UpstreamUnavailable(err)
}

// notFoundOr maps an upstream 404 to a NotFound for the named resource,
// deferring to upstreamError otherwise.
func notFoundOr(resource string, err error) error {
	var nerr *notion.Error
	if errors.As(err, &nerr) && nerr.Status == 404 {
		return dto.NotFound(resource)
	}
	return upstreamError(err)
}
