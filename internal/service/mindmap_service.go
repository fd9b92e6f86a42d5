package service

import (
	"context"
	"strings"

	"github.com/xxxsen/afternote/internal/enrich"
	"github.com/xxxsen/afternote/internal/model"
	appErr "github.com/xxxsen/afternote/internal/pkg/errors"
	"github.com/xxxsen/afternote/internal/pkg/timeutil"
	"github.com/xxxsen/afternote/internal/repo"
)

type MindMapService struct {
	mindmaps      *repo.MindMapRepo
	folders       *repo.FolderRepo
	enricher      *enrich.Orchestrator
	maxInputChars int
}

func NewMindMapService(mindmaps *repo.MindMapRepo, folders *repo.FolderRepo, enricher *enrich.Orchestrator, maxInputChars int) *MindMapService {
	return &MindMapService{mindmaps: mindmaps, folders: folders, enricher: enricher, maxInputChars: maxInputChars}
}

// MindMapCreateInput builds the map from Content unless Data is given.
type MindMapCreateInput struct {
	FolderID string
	Title    string
	Content  string
	Data     *model.MindMapData
}

type MindMapUpdateInput struct {
	FolderID *string
	Title    *string
	Content  *string
	Data     *model.MindMapData
}

// Generate runs the mind map stage without persisting anything.
func (s *MindMapService) Generate(ctx context.Context, userID, content string) (model.MindMapData, error) {
	if err := requireUser(userID); err != nil {
		return model.MindMapData{}, err
	}
	if strings.TrimSpace(content) == "" {
		return model.MindMapData{}, appErr.ErrContentUnavailable
	}
	return s.enricher.Executor().MindMap(ctx, limitInput(content, s.maxInputChars)).Value, nil
}

func (s *MindMapService) resolveData(ctx context.Context, title, content string, data *model.MindMapData) model.MindMapData {
	if data != nil {
		return normalizeMindMap(*data, title)
	}
	if strings.TrimSpace(content) != "" {
		return s.enricher.Executor().MindMap(ctx, limitInput(content, s.maxInputChars)).Value
	}
	return normalizeMindMap(model.MindMapData{}, title)
}

func normalizeMindMap(data model.MindMapData, title string) model.MindMapData {
	data.CentralTopic = strings.TrimSpace(data.CentralTopic)
	if data.CentralTopic == "" {
		data.CentralTopic = title
	}
	if data.Branches == nil {
		data.Branches = []model.MindMapBranch{}
	}
	for i := range data.Branches {
		if data.Branches[i].Children == nil {
			data.Branches[i].Children = []model.MindMapLeaf{}
		}
	}
	return data
}

func (s *MindMapService) Create(ctx context.Context, userID string, input MindMapCreateInput) (*model.MindMap, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	title, err := trimmedRequired(input.Title)
	if err != nil {
		return nil, err
	}
	if err := ensureFolder(ctx, s.folders, userID, input.FolderID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	mm := &model.MindMap{
		ID:       newID(),
		UserID:   userID,
		FolderID: input.FolderID,
		Title:    title,
		Data:     s.resolveData(ctx, title, input.Content, input.Data),
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.mindmaps.Create(ctx, mm); err != nil {
		return nil, err
	}
	return mm, nil
}

func (s *MindMapService) Update(ctx context.Context, userID, id string, input MindMapUpdateInput) (*model.MindMap, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	mm, err := s.mindmaps.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title, err := trimmedRequired(*input.Title)
		if err != nil {
			return nil, err
		}
		mm.Title = title
	}
	if input.FolderID != nil {
		if err := ensureFolder(ctx, s.folders, userID, *input.FolderID); err != nil {
			return nil, err
		}
		mm.FolderID = *input.FolderID
	}
	switch {
	case input.Data != nil:
		mm.Data = normalizeMindMap(*input.Data, mm.Title)
	case input.Content != nil:
		mm.Data = s.resolveData(ctx, mm.Title, *input.Content, nil)
	}
	mm.Mtime = timeutil.NowUnix()
	if err := s.mindmaps.Update(ctx, mm); err != nil {
		return nil, err
	}
	return mm, nil
}

func (s *MindMapService) Get(ctx context.Context, userID, id string) (*model.MindMap, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.mindmaps.GetByID(ctx, userID, id)
}

func (s *MindMapService) List(ctx context.Context, userID, folderID string) ([]model.MindMap, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.mindmaps.List(ctx, userID, folderID)
}

func (s *MindMapService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.mindmaps.Delete(ctx, userID, id)
}
