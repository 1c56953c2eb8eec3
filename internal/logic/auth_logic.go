package logic

import (
	"errors"
	"strings"
	"time"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthLogic 注册认证业务逻辑
type AuthLogic struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

// NewAuthLogic 创建注册认证业务逻辑
func NewAuthLogic(db *gorm.DB, cfg config.AuthConfig) *AuthLogic {
	ttl := cfg.TokenTTLMinutes
	if ttl <= 0 {
		ttl = 60 * 24 * 7
	}
	return &AuthLogic{
		db:       db,
		tokenTTL: time.Duration(ttl) * time.Minute,
	}
}

// TokenTTLMinutes 令牌有效期（分钟），响应里的 expires_in
func (a *AuthLogic) TokenTTLMinutes() int {
	return int(a.tokenTTL / time.Minute)
}

// RegisterInput 注册参数，字段级校验在 handler 的 binding 完成
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// Register 注册用户并创建对应角色档案
func (a *AuthLogic) Register(input RegisterInput) (*model.User, string, error) {
	role := model.UserRole(input.Role)
	if role != model.UserRoleFarmer && role != model.UserRoleInvestor {
		return nil, "", ErrValidation("The selected role is invalid.")
	}

	// 邮箱唯一性
	var count int64
	if err := a.db.Model(&model.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrValidation("The email has already been taken.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	var user model.User
	var token string

	// 档案、用户、令牌在同一事务内创建
	err = a.db.Transaction(func(tx *gorm.DB) error {
		var userableId int64

		if role == model.UserRoleFarmer {
			// 注册只采集一个 name，姓和名都存它（沿袭线上行为）
			farmer := model.Farmer{
				FirstName: input.Name,
				LastName:  input.Name,
				Contact:   input.Phone,
			}
			if err := tx.Create(&farmer).Error; err != nil {
				return err
			}
			userableId = farmer.Id
		} else {
			investor := model.Investor{
				Name:        input.Name,
				Contact:     input.Phone,
				BudgetRange: "0-0",
				Type:        "individual",
			}
			if err := tx.Create(&investor).Error; err != nil {
				return err
			}
			userableId = investor.Id
		}

		user = model.User{
			Name:       input.Name,
			Email:      input.Email,
			Password:   string(hashed),
			Phone:      input.Phone,
			Role:       role,
			UserableId: userableId,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		token, err = a.issueToken(tx, user.Id)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Login 校验凭证，撤销旧令牌后签发新令牌（单活跃会话）
func (a *AuthLogic) Login(email, password string) (*model.User, string, error) {
	var user model.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials()
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials()
	}

	var token string
	err := a.db.Transaction(func(tx *gorm.DB) error {
		// 撤销该用户全部已签发令牌
		if err := tx.Where("user_id = ?", user.Id).Delete(&model.AccessToken{}).Error; err != nil {
			return err
		}
		var err error
		token, err = a.issueToken(tx, user.Id)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Logout 只撤销当前请求携带的令牌
func (a *AuthLogic) Logout(token *model.AccessToken) error {
	return a.db.Delete(&model.AccessToken{}, token.Id).Error
}

// Authenticate 按令牌字符串定位用户，中间件使用
// 令牌不存在（已撤销）或已过期均视为未认证。
func (a *AuthLogic) Authenticate(token string) (*model.User, *model.AccessToken, error) {
	var record model.AccessToken
	if err := a.db.Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, gorm.ErrRecordNotFound
		}
		return nil, nil, err
	}

	if record.Expired(time.Now()) {
		return nil, nil, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := a.db.First(&user, record.UserId).Error; err != nil {
		return nil, nil, err
	}

	return &user, &record, nil
}

// issueToken 签发不透明令牌
func (a *AuthLogic) issueToken(tx *gorm.DB, userId int64) (string, error) {
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	record := model.AccessToken{
		UserId:    userId,
		Token:     token,
		ExpiresAt: time.Now().Add(a.tokenTTL),
	}
	if err := tx.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}
