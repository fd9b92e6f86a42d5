package service

import (
	"context"
	"strings"

	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/timeutil"
	"github.com/xxxsen/afternote/internal/repo"
)

type FolderService struct {
	folders  *repo.FolderRepo
	notes    *repo.NoteRepo
	docs     *repo.DocumentRepo
	mindmaps *repo.MindMapRepo
	exams    *repo.ExamRepo
}

func NewFolderService(folders *repo.FolderRepo, notes *repo.NoteRepo, docs *repo.DocumentRepo, mindmaps *repo.MindMapRepo, exams *repo.ExamRepo) *FolderService {
	return &FolderService{folders: folders, notes: notes, docs: docs, mindmaps: mindmaps, exams: exams}
}

type FolderCreateInput struct {
	ParentID    string
	Name        string
	Description string
}

type FolderUpdateInput struct {
	ParentID    *string
	Name        *string
	Description *string
}

func (s *FolderService) Create(ctx context.Context, userID string, input FolderCreateInput) (*model.Folder, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	name, err := trimmedRequired(input.Name)
	if err != nil {
		return nil, err
	}
	if err := ensureFolder(ctx, s.folders, userID, input.ParentID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	folder := &model.Folder{
		ID:          newID(),
		UserID:      userID,
		ParentID:    input.ParentID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Update(ctx context.Context, userID, folderID string, input FolderUpdateInput) (*model.Folder, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	folder, err := s.folders.GetByID(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name, err := trimmedRequired(*input.Name)
		if err != nil {
			return nil, err
		}
		folder.Name = name
	}
	if input.Description != nil {
		folder.Description = strings.TrimSpace(*input.Description)
	}
	if input.ParentID != nil {
		if err := s.checkParent(ctx, userID, folderID, *input.ParentID); err != nil {
			return nil, err
		}
		folder.ParentID = *input.ParentID
	}
	folder.Mtime = timeutil.NowUnix()
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// checkParent rejects a parent that is the folder itself or one of its
// descendants.
func (s *FolderService) checkParent(ctx context.Context, userID, folderID, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == folderID || seen[cur] {
			return appErr.ErrInvalid
		}
		seen[cur] = true
		parent, err := s.folders.GetByID(ctx, userID, cur)
		if err != nil {
			return err
		}
		cur = parent.ParentID
	}
	return nil
}

func (s *FolderService) Get(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.folders.GetByID(ctx, userID, folderID)
}

func (s *FolderService) List(ctx context.Context, userID, parentID string) ([]model.Folder, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.folders.List(ctx, userID, parentID)
}

// Delete removes the folder and detaches everything that pointed at it.
func (s *FolderService) Delete(ctx context.Context, userID, folderID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.folders.Delete(ctx, userID, folderID); err != nil {
		return err
	}
	now := timeutil.NowUnix()
	detachers := []func(context.Context, string, string, int64) error{
		s.folders.DetachChildren,
		s.notes.DetachFolder,
		s.docs.DetachFolder,
		s.mindmaps.DetachFolder,
		s.exams.DetachFolder,
	}
	for _, detach := range detachers {
		if err := detach(ctx, userID, folderID, now); err != nil {
			return err
		}
	}
	return nil
}
