package service

import (
	"context"
	"strings"

	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/repo"
	"github.com/xxxsen/afternote/internal/textutil"
)

// requireUser rejects calls without a caller identity; the core never makes
// one up.
func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return appErr.ErrUnauthorized
	}
	return nil
}

// ensureFolder verifies that a non-empty folder reference resolves for the
// caller.
func ensureFolder(ctx context.Context, folders *repo.FolderRepo, userID, folderID string) error {
	if folderID == "" {
		return nil
	}
	_, err := folders.GetByID(ctx, userID, folderID)
	return err
}

func limitInput(text string, maxInputChars int) string {
	return textutil.Truncate(text, maxInputChars)
}

func trimmedRequired(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", appErr.ErrInvalid
	}
	return v, nil
}
