package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

var folderColumns = []string{"id", "user_id", "parent_id", "name", "description", "ctime", "mtime"}

type FolderRepo struct {
	base
}

func NewFolderRepo(h *db.Handle) *FolderRepo {
	return &FolderRepo{base: newBase(h)}
}

func (r *FolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	return r.insert(ctx, "folders", map[string]interface{}{
		"id":          folder.ID,
		"user_id":     folder.UserID,
		"parent_id":   folder.ParentID,
		"name":        folder.Name,
		"description": folder.Description,
		"ctime":       folder.Ctime,
		"mtime":       folder.Mtime,
	})
}

func (r *FolderRepo) Update(ctx context.Context, folder *model.Folder) error {
	return r.update(ctx, "folders", map[string]interface{}{
		"id":      folder.ID,
		"user_id": folder.UserID,
	}, map[string]interface{}{
		"parent_id":   folder.ParentID,
		"name":        folder.Name,
		"description": folder.Description,
		"mtime":       folder.Mtime,
	})
}

func (r *FolderRepo) GetByID(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	folders, err := r.selectFolders(ctx, map[string]interface{}{
		"id":      folderID,
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &folders[0], nil
}

// List returns the caller's folders. An empty parentID lists every folder.
func (r *FolderRepo) List(ctx context.Context, userID, parentID string) ([]model.Folder, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "name asc",
	}
	if parentID != "" {
		where["parent_id"] = parentID
	}
	return r.selectFolders(ctx, where)
}

func (r *FolderRepo) Delete(ctx context.Context, userID, folderID string) error {
	return r.delete(ctx, "folders", map[string]interface{}{
		"id":      folderID,
		"user_id": userID,
	})
}

// DetachChildren lifts sub-folders of folderID to the top level.
func (r *FolderRepo) DetachChildren(ctx context.Context, userID, folderID string, mtime int64) error {
	return r.detachFolder(ctx, "folders", "parent_id", userID, folderID, mtime)
}

func (r *FolderRepo) selectFolders(ctx context.Context, where map[string]interface{}) ([]model.Folder, error) {
	sqlStr, args, err := builder.BuildSelect("folders", where, folderColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	folders := make([]model.Folder, 0)
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Description, &f.Ctime, &f.Mtime); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}
