package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrShortcutNotFound   = errors.New("快捷指令不存在")
	ErrShortcutNameExists = errors.New("快捷指令名称已存在")
)

// 新用户首次拉取时写入的内置指令
var defaultShortcuts = []model.AIShortcut{
	{
		Name:        "润色文章",
		Prompt:      "请帮我润色这篇文章，使其更加流畅、专业和易读。请保持原文的核心观点和结构，主要优化语言表达和逻辑连贯性。",
		Description: "优化文章语言表达",
	},
	{
		Name:        "生成标题",
		Prompt:      "请根据文章内容生成5个吸引人的标题，要求简洁有力，能够准确概括文章主题，并具有一定的吸引力。",
		Description: "为文章生成标题",
	},
	{
		Name:        "写作建议",
		Prompt:      "请分析这篇文章的结构和内容，提供具体的改进建议，包括但不限于：逻辑结构、论证方式、语言表达、内容完整性等方面。",
		Description: "获取写作改进建议",
	},
	{
		Name:        "生成摘要",
		Prompt:      "请为这篇文章生成一个简洁的摘要，控制在200字以内，要求能够准确概括文章的主要内容和核心观点。",
		Description: "生成文章摘要",
	},
	{
		Name:        "检查语法",
		Prompt:      "请检查这篇文章的语法错误、错别字和标点符号使用问题，并提供修改建议。",
		Description: "检查语法和错别字",
	},
}

type AIShortcutService struct {
	shortcutRepo *repository.AIShortcutRepository
}

func NewAIShortcutService(shortcutRepo *repository.AIShortcutRepository) *AIShortcutService {
	return &AIShortcutService{shortcutRepo: shortcutRepo}
}

// ListActive 获取启用中的快捷指令。
// 用户还没有任何指令时先写入内置指令再返回。
func (s *AIShortcutService) ListActive(userID int64) ([]*model.AIShortcut, error) {
	count, err := s.shortcutRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.InitializeDefaults(userID); err != nil {
			return nil, err
		}
	}
	return s.shortcutRepo.ListActiveByUserID(userID)
}

// GetShortcut 获取指令详情
func (s *AIShortcutService) GetShortcut(userID, id int64) (*model.AIShortcut, error) {
	return s.getOwnedShortcut(userID, id)
}

// CreateShortcut 新建指令，名称不能重复，不指定排序值时追加到末尾
func (s *AIShortcutService) CreateShortcut(userID int64, req *dto.AIShortcutRequest) (*model.AIShortcut, error) {
	exists, err := s.shortcutRepo.ExistsByName(userID, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrShortcutNameExists
	}

	sortOrder := req.SortOrder
	if sortOrder == 0 {
		maxOrder, err := s.shortcutRepo.MaxSortOrder(userID)
		if err != nil {
			return nil, err
		}
		sortOrder = maxOrder + 1
	}

	shortcut := &model.AIShortcut{
		UserID:      userID,
		Name:        req.Name,
		Prompt:      req.Prompt,
		Description: req.Description,
		SortOrder:   sortOrder,
		IsActive:    true,
	}
	if err := s.shortcutRepo.Create(shortcut); err != nil {
		return nil, err
	}
	return shortcut, nil
}

// UpdateShortcut 更新指令，改名时校验新名称不与其他指令重复
func (s *AIShortcutService) UpdateShortcut(userID, id int64, req *dto.AIShortcutRequest) (*model.AIShortcut, error) {
	shortcut, err := s.getOwnedShortcut(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != shortcut.Name {
		exists, err := s.shortcutRepo.ExistsByName(userID, req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrShortcutNameExists
		}
	}

	shortcut.Name = req.Name
	shortcut.Prompt = req.Prompt
	shortcut.Description = req.Description
	if req.SortOrder > 0 {
		shortcut.SortOrder = req.SortOrder
	}

	if err := s.shortcutRepo.Save(shortcut); err != nil {
		return nil, err
	}
	return shortcut, nil
}

// DeleteShortcut 删除指令
func (s *AIShortcutService) DeleteShortcut(userID, id int64) error {
	if _, err := s.getOwnedShortcut(userID, id); err != nil {
		return err
	}
	return s.shortcutRepo.Delete(id)
}

// BatchDelete 批量删除，只删用户自己的指令，返回删除条数
func (s *AIShortcutService) BatchDelete(userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.shortcutRepo.BatchDelete(userID, ids)
}

// Search 按名称搜索指令
func (s *AIShortcutService) Search(userID int64, name string) ([]*model.AIShortcut, error) {
	return s.shortcutRepo.SearchByName(userID, name)
}

// UpdateSortOrder 调整指令排序
func (s *AIShortcutService) UpdateSortOrder(userID, id int64, sortOrder int) (*model.AIShortcut, error) {
	shortcut, err := s.getOwnedShortcut(userID, id)
	if err != nil {
		return nil, err
	}

	shortcut.SortOrder = sortOrder
	if err := s.shortcutRepo.Save(shortcut); err != nil {
		return nil, err
	}
	return shortcut, nil
}

// ToggleActive 切换启用状态
func (s *AIShortcutService) ToggleActive(userID, id int64) (*model.AIShortcut, error) {
	shortcut, err := s.getOwnedShortcut(userID, id)
	if err != nil {
		return nil, err
	}

	shortcut.IsActive = !shortcut.IsActive
	if err := s.shortcutRepo.Save(shortcut); err != nil {
		return nil, err
	}
	return shortcut, nil
}

// InitializeDefaults 写入内置指令
func (s *AIShortcutService) InitializeDefaults(userID int64) error {
	for i, preset := range defaultShortcuts {
		shortcut := preset
		shortcut.UserID = userID
		shortcut.SortOrder = i + 1
		shortcut.IsActive = true
		if err := s.shortcutRepo.Create(&shortcut); err != nil {
			return err
		}
	}
	return nil
}

func (s *AIShortcutService) getOwnedShortcut(userID, id int64) (*model.AIShortcut, error) {
	shortcut, err := s.shortcutRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShortcutNotFound
		}
		return nil, err
	}
	if shortcut.UserID != userID {
		return nil, ErrShortcutNotFound
	}
	return shortcut, nil
}
