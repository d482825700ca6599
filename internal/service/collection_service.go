package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrCollectionNotFound   = errors.New("合集不存在")
	ErrCollectionNameExists = errors.New("合集名称已存在")
	ErrCollectionInUse      = errors.New("合集下还有文章，不能删除")
)

type CollectionService struct {
	collectionRepo *repository.CollectionRepository
	articleRepo    *repository.ArticleRepository
}

func NewCollectionService(
	collectionRepo *repository.CollectionRepository,
	articleRepo *repository.ArticleRepository,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		articleRepo:    articleRepo,
	}
}

// CreateCollection 创建合集。不指定排序值时追加到末尾。
func (s *CollectionService) CreateCollection(userID int64, req *dto.CollectionRequest) (*dto.CollectionItem, error) {
	exists, err := s.collectionRepo.ExistsByName(userID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCollectionNameExists
	}

	sortOrder := req.SortOrder
	if sortOrder == 0 {
		maxOrder, err := s.collectionRepo.MaxSortOrder(userID)
		if err != nil {
			return nil, err
		}
		sortOrder = maxOrder + 1
	}

	color := req.Color
	if color == "" {
		color = model.DefaultCollectionColor
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	collection := &model.Collection{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		Icon:        req.Icon,
		SortOrder:   sortOrder,
		IsEnabled:   enabled,
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}
	return toCollectionItem(collection, 0), nil
}

// UpdateCollection 更新合集，改名时校验新名称不与其他合集重复
func (s *CollectionService) UpdateCollection(userID int64, id string, req *dto.CollectionRequest) (*dto.CollectionItem, error) {
	collection, err := s.getOwnedCollection(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != collection.Name {
		exists, err := s.collectionRepo.ExistsByName(userID, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCollectionNameExists
		}
	}

	collection.Name = req.Name
	collection.Description = req.Description
	if req.Color != "" {
		collection.Color = req.Color
	}
	collection.Icon = req.Icon
	collection.SortOrder = req.SortOrder
	if req.IsEnabled != nil {
		collection.IsEnabled = *req.IsEnabled
	}

	if err := s.collectionRepo.Save(collection); err != nil {
		return nil, err
	}
	count, err := s.articleRepo.CountByCollectionID(id)
	if err != nil {
		return nil, err
	}
	return toCollectionItem(collection, count), nil
}

// GetCollection 获取合集详情，带文章数
func (s *CollectionService) GetCollection(userID int64, id string) (*dto.CollectionItem, error) {
	collection, err := s.getOwnedCollection(userID, id)
	if err != nil {
		return nil, err
	}
	count, err := s.articleRepo.CountByCollectionID(id)
	if err != nil {
		return nil, err
	}
	return toCollectionItem(collection, count), nil
}

// ListCollections 获取用户合集列表，enabledOnly 为 true 时只返回启用中的
func (s *CollectionService) ListCollections(userID int64, enabledOnly bool) ([]*dto.CollectionItem, error) {
	var (
		collections []*model.Collection
		err         error
	)
	if enabledOnly {
		collections, err = s.collectionRepo.ListEnabledByUserID(userID)
	} else {
		collections, err = s.collectionRepo.ListByUserID(userID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CollectionItem, 0, len(collections))
	for _, c := range collections {
		items = append(items, toCollectionItem(c, 0))
	}
	return items, nil
}

// GetCollectionStats 启用中的合集及各自的文章数
func (s *CollectionService) GetCollectionStats(userID int64) ([]*dto.CollectionItem, error) {
	collections, err := s.collectionRepo.ListEnabledByUserID(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CollectionItem, 0, len(collections))
	for _, c := range collections {
		count, err := s.articleRepo.CountByCollectionID(c.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, toCollectionItem(c, count))
	}
	return items, nil
}

// DeleteCollection 删除合集，仍有文章挂在合集下时拒绝
func (s *CollectionService) DeleteCollection(userID int64, id string) error {
	if _, err := s.getOwnedCollection(userID, id); err != nil {
		return err
	}

	count, err := s.articleRepo.CountByCollectionID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCollectionInUse
	}

	return s.collectionRepo.Delete(id)
}

// ToggleStatus 启用/禁用合集
func (s *CollectionService) ToggleStatus(userID int64, id string, enabled bool) (*dto.CollectionItem, error) {
	collection, err := s.getOwnedCollection(userID, id)
	if err != nil {
		return nil, err
	}

	collection.IsEnabled = enabled
	if err := s.collectionRepo.Save(collection); err != nil {
		return nil, err
	}
	return toCollectionItem(collection, 0), nil
}

// UpdateSortOrder 调整合集排序
func (s *CollectionService) UpdateSortOrder(userID int64, id string, sortOrder int) (*dto.CollectionItem, error) {
	collection, err := s.getOwnedCollection(userID, id)
	if err != nil {
		return nil, err
	}

	collection.SortOrder = sortOrder
	if err := s.collectionRepo.Save(collection); err != nil {
		return nil, err
	}
	return toCollectionItem(collection, 0), nil
}

// CheckName 检查名称是否已被占用
func (s *CollectionService) CheckName(userID int64, name, excludeID string) (bool, error) {
	return s.collectionRepo.ExistsByName(userID, name, excludeID)
}

func (s *CollectionService) getOwnedCollection(userID int64, id string) (*model.Collection, error) {
	collection, err := s.collectionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	if collection.UserID != userID {
		return nil, ErrNoPermission
	}
	return collection, nil
}

func toCollectionItem(collection *model.Collection, articleCount int64) *dto.CollectionItem {
	return &dto.CollectionItem{
		ID:           collection.ID,
		Name:         collection.Name,
		Description:  collection.Description,
		Color:        collection.Color,
		Icon:         collection.Icon,
		SortOrder:    collection.SortOrder,
		IsEnabled:    collection.IsEnabled,
		ArticleCount: articleCount,
		CreatedAt:    collection.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    collection.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
