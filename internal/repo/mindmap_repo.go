package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/afternote/internal/db"
	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/dbutil"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
)

var mindMapColumns = []string{"id", "user_id", "folder_id", "title", "data", "ctime", "mtime"}

type MindMapRepo struct {
	base
}

func NewMindMapRepo(h *db.Handle) *MindMapRepo {
	return &MindMapRepo{base: newBase(h)}
}

func (r *MindMapRepo) Create(ctx context.Context, mm *model.MindMap) error {
	data, err := json.Marshal(mm.Data)
	if err != nil {
		return err
	}
	return r.insert(ctx, "mindmaps", map[string]interface{}{
		"id":        mm.ID,
		"user_id":   mm.UserID,
		"folder_id": mm.FolderID,
		"title":     mm.Title,
		"data":      string(data),
		"ctime":     mm.Ctime,
		"mtime":     mm.Mtime,
	})
}

func (r *MindMapRepo) Update(ctx context.Context, mm *model.MindMap) error {
	data, err := json.Marshal(mm.Data)
	if err != nil {
		return err
	}
	return r.update(ctx, "mindmaps", map[string]interface{}{
		"id":      mm.ID,
		"user_id": mm.UserID,
	}, map[string]interface{}{
		"folder_id": mm.FolderID,
		"title":     mm.Title,
		"data":      string(data),
		"mtime":     mm.Mtime,
	})
}

func (r *MindMapRepo) GetByID(ctx context.Context, userID, id string) (*model.MindMap, error) {
	items, err := r.selectMindMaps(ctx, map[string]interface{}{
		"id":      id,
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &items[0], nil
}

func (r *MindMapRepo) List(ctx context.Context, userID, folderID string) ([]model.MindMap, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "mtime desc",
	}
	if folderID != "" {
		where["folder_id"] = folderID
	}
	return r.selectMindMaps(ctx, where)
}

func (r *MindMapRepo) Delete(ctx context.Context, userID, id string) error {
	return r.delete(ctx, "mindmaps", map[string]interface{}{
		"id":      id,
		"user_id": userID,
	})
}

func (r *MindMapRepo) DetachFolder(ctx context.Context, userID, folderID string, mtime int64) error {
	return r.detachFolder(ctx, "mindmaps", "folder_id", userID, folderID, mtime)
}

func (r *MindMapRepo) selectMindMaps(ctx context.Context, where map[string]interface{}) ([]model.MindMap, error) {
	sqlStr, args, err := builder.BuildSelect("mindmaps", where, mindMapColumns)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, sqlStr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.MindMap, 0)
	for rows.Next() {
		var mm model.MindMap
		var data sql.NullString
		if err := rows.Scan(&mm.ID, &mm.UserID, &mm.FolderID, &mm.Title, &data, &mm.Ctime, &mm.Mtime); err != nil {
			return nil, err
		}
		if err := dbutil.DecodeJSON(data, &mm.Data); err != nil {
			return nil, err
		}
		if mm.Data.Branches == nil {
			mm.Data.Branches = []model.MindMapBranch{}
		}
		items = append(items, mm)
	}
	return items, rows.Err()
}
