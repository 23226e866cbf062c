// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wepoYJ/wepo-server/posts/models"
)

const maxContentLength = 10000

// ValidateCreatePostRequest validates the create post request
func ValidateCreatePostRequest(req *models.CreatePostRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content is required")
	}

	if len(req.Content) > maxContentLength {
		return fmt.Errorf("content must be less than %d characters", maxContentLength)
	}

	return nil
}

// ValidateCommentRequest validates a comment request and returns the parsed
// parent post id.
func ValidateCommentRequest(req *models.CommentRequest) (int64, error) {
	if req == nil {
		return 0, fmt.Errorf("request is required")
	}

	if strings.TrimSpace(req.Content) == "" {
		return 0, fmt.Errorf("content is required")
	}

	if len(req.Content) > maxContentLength {
		return 0, fmt.Errorf("content must be less than %d characters", maxContentLength)
	}

	originID, err := strconv.ParseInt(req.OriginID, 10, 64)
	if err != nil || originID <= 0 {
		return 0, fmt.Errorf("originId must be a valid post id")
	}

	return originID, nil
}
