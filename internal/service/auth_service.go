package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chengzhang/writing_go_server/config"
	"github.com/chengzhang/writing_go_server/internal/model"
	"github.com/chengzhang/writing_go_server/internal/model/dto"
	"github.com/chengzhang/writing_go_server/internal/pkg/jwt"
	"github.com/chengzhang/writing_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUsernameExists     = errors.New("用户名已被占用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	db                  *gorm.DB
	userRepo            *repository.UserRepository
	accountRepo         *repository.PointAccountRepository
	subscriptionService *SubscriptionService
	cfg                 *config.Config
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	accountRepo *repository.PointAccountRepository,
	subscriptionService *SubscriptionService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:                  db,
		userRepo:            userRepo,
		accountRepo:         accountRepo,
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

// Register 注册新用户，同时初始化零余额积分账户
func (s *AuthService) Register(req *dto.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Nickname:     nickname,
		Status:       1,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		// 注册即建户，余额从0开始
		account := &model.PointAccount{
			UserID: user.ID,
			Level:  1,
		}
		return s.accountRepo.WithTx(tx).Create(account)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login 校验密码并签发 Token，返回用户信息、会员状态和积分摘要
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != 1 {
		return nil, ErrUserDisabled
	}

	expireHours := s.cfg.JWT.ExpireHours
	if req.Remember {
		expireHours *= 7
	}
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, expireHours)
	if err != nil {
		return nil, err
	}

	info, err := s.buildUserInfo(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  info,
	}, nil
}

// GetUserInfo 获取当前用户信息（个人中心）
func (s *AuthService) GetUserInfo(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildUserInfo(user)
}

func (s *AuthService) buildUserInfo(user *model.User) (*dto.UserInfo, error) {
	membership, err := s.subscriptionService.GetMembershipInfo(user.ID)
	if err != nil {
		return nil, err
	}

	points := &dto.PointInfo{Level: 1}
	account, err := s.accountRepo.GetByUserID(user.ID)
	if err == nil {
		points = &dto.PointInfo{
			Balance:     account.Balance,
			TotalEarned: account.TotalEarned,
			TotalSpent:  account.TotalSpent,
			Level:       account.Level,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &dto.UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Nickname:   user.Nickname,
		Avatar:     user.Avatar,
		Status:     user.Status,
		Membership: membership,
		Points:     points,
	}, nil
}
