package cache

import (
	"context"
	"fmt"
	"time"
)

const authStateCacheTTL = 10 * time.Minute

// AuthState 令牌校验快照，避免每个请求都查库
type AuthState struct {
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super,omitempty"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

// GetUserAuthState 读取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*AuthState, bool, error) {
	var state AuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, userID uint, state AuthState) error {
	return SetJSON(ctx, userAuthStateKey(userID), state, authStateCacheTTL)
}

// GetAdminAuthState 读取员工鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AuthState, bool, error) {
	var state AuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入员工鉴权快照
func SetAdminAuthState(ctx context.Context, adminID uint, state AuthState) error {
	return SetJSON(ctx, adminAuthStateKey(adminID), state, authStateCacheTTL)
}
