package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/google/uuid"
)

const (
	tokenKeyPrefix  = "Token:"
	tokensSetPrefix = "Tokens:"
)

// AdminUser is a back-office login. Sessions are opaque uuid tokens
// held in redis; the per-user token set allows revoking all of them.
type AdminUser struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	Username   string    `gorm:"size:100;not null;uniqueIndex" json:"username" binding:"required"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	FullName   string    `gorm:"size:200" json:"full_name"`
	Email      string    `gorm:"size:100" json:"email"`
	Role       UserRole  `gorm:"size:1;default:'M'" json:"role"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj AdminUser) GetPropertyId() string {
	return obj.PropertyId
}

type NewAdminUser struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}

func CreateAdminUser(ctx context.Context, input *NewAdminUser) (*AdminUser, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}
	role := input.Role
	if role == "" {
		role = UserRoleManager
	}
	if !role.IsValid() {
		return nil, errors.New("invalid role")
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&AdminUser{}).
		Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("username is taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := AdminUser{
		PropertyId: propertyId,
		Username:   input.Username,
		Password:   string(hashed),
		FullName:   input.FullName,
		Email:      input.Email,
		Role:       role,
		IsActive:   utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and issues an opaque session token.
func Login(ctx context.Context, username, password string) (string, *AdminUser, error) {
	db := config.GetDB()
	var user AdminUser
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if user.IsActive != nil && !*user.IsActive {
		return "", nil, errors.New("user is disabled")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token := uuid.NewString()
	lifespan := utils.GetSessionLifespan()
	if err := config.SetRedisValue(tokenKeyPrefix+token, user.Username, lifespan); err != nil {
		return "", nil, err
	}
	if err := config.AddRedisSet(tokensSetPrefix+user.Username, token); err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ResolveToken maps a session token back to its user.
func ResolveToken(ctx context.Context, token string) (*AdminUser, error) {
	username, found, err := config.GetRedisValue(tokenKeyPrefix + token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("invalid session")
	}

	db := config.GetDB()
	var user AdminUser
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, errors.New("invalid session")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("user is disabled")
	}
	return &user, nil
}

// IssueServiceToken mints a signed token for unattended callers
// (cron jobs, integrations). Unlike sessions it cannot be revoked
// through redis; it simply expires.
func IssueServiceToken(ctx context.Context, userId int) (string, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return "", errors.New("property id is required")
	}
	user, err := utils.FetchModel[AdminUser](ctx, propertyId, userId)
	if err != nil {
		return "", err
	}
	if user.IsActive != nil && !*user.IsActive {
		return "", errors.New("user is disabled")
	}
	return utils.JwtGenerate(user.ID, string(user.Role))
}

// ResolveServiceToken validates a signed service token and loads its user.
func ResolveServiceToken(ctx context.Context, token string) (*AdminUser, error) {
	parsed, err := utils.JwtValidate(token)
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid service token")
	}
	claims, ok := parsed.Claims.(*utils.JwtCustomClaim)
	if !ok {
		return nil, errors.New("invalid service token")
	}

	db := config.GetDB()
	var user AdminUser
	if err := db.WithContext(ctx).Where("id = ?", claims.ID).First(&user).Error; err != nil {
		return nil, errors.New("invalid service token")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("user is disabled")
	}
	return &user, nil
}

// Logout destroys one session.
func Logout(ctx context.Context, token string) error {
	username, found, err := config.GetRedisValue(tokenKeyPrefix + token)
	if err != nil {
		return err
	}
	if !found {
		return errors.New("invalid session")
	}
	if err := config.RemoveRedisKey(tokenKeyPrefix + token); err != nil {
		return err
	}
	return config.RemoveRedisSetMember(tokensSetPrefix+username, token)
}

// DestroyAllSessions revokes every live token of a user.
func DestroyAllSessions(ctx context.Context, username string) error {
	tokens, err := config.GetRedisSetMembers(tokensSetPrefix + username)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := config.RemoveRedisKey(tokenKeyPrefix + token); err != nil {
			return err
		}
	}
	return config.RemoveRedisKey(tokensSetPrefix + username)
}

// ChangePassword verifies the current password, stores the new hash and
// kills all existing sessions.
func ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	db := config.GetDB()
	var user AdminUser
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return errors.New("user not found")
	}
	if err := utils.ComparePassword(user.Password, current); err != nil {
		return errors.New("current password is wrong")
	}

	hashed, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Model(&user).UpdateColumn("Password", string(hashed)).Error; err != nil {
		return err
	}
	return DestroyAllSessions(ctx, username)
}

// ToggleActiveAdminUser enables/disables a login; disabling revokes
// its sessions.
func ToggleActiveAdminUser(ctx context.Context, id int, isActive bool) (*AdminUser, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	user, err := utils.FetchModel[AdminUser](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(user).UpdateColumn("IsActive", isActive).Error; err != nil {
		return nil, err
	}
	if !isActive {
		if err := DestroyAllSessions(ctx, user.Username); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func ListAdminUsers(ctx context.Context) ([]*AdminUser, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	return utils.FetchAllModels[AdminUser](ctx, propertyId)
}
