package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 用户模块集成测试:注册、登录、资料维护

func TestUserRegister(t *testing.T) {
	RequireServer(t)

	t.Run("正常注册", func(t *testing.T) {
		user, token := RegisterTestUser(t, "reg")

		assert.NotZero(t, user.ID)
		assert.Equal(t, "user", user.Role, "新注册用户角色应为user")
		assert.NotEmpty(t, token)
	})

	t.Run("邮箱重复注册失败", func(t *testing.T) {
		suffix := time.Now().UnixNano() % 1e9
		req := map[string]interface{}{
			"username": fmt.Sprintf("dup_%d", suffix),
			"email":    fmt.Sprintf("dup_%d@test.local", suffix),
			"contact":  fmt.Sprintf("018%08d", suffix%1e8),
			"password": "passw0rd123",
		}

		first := PostJSON(t, BaseURL+"/register", req, "")
		require.Equal(t, 0, first.Code, "首次注册应成功: %s", first.Message)

		// 换用户名和电话,只保留重复邮箱
		req["username"] = fmt.Sprintf("dup2_%d", suffix)
		req["contact"] = fmt.Sprintf("017%08d", suffix%1e8)
		second := PostJSON(t, BaseURL+"/register", req, "")

		assert.NotEqual(t, 0, second.Code, "重复邮箱应被拒绝")
		assert.Equal(t, "error", second.Status)
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		suffix := time.Now().UnixNano() % 1e9
		resp := PostJSON(t, BaseURL+"/register", map[string]interface{}{
			"username": fmt.Sprintf("weak_%d", suffix),
			"email":    fmt.Sprintf("weak_%d@test.local", suffix),
			"contact":  fmt.Sprintf("016%08d", suffix%1e8),
			"password": "12345678", // 纯数字
		}, "")

		assert.NotEqual(t, 0, resp.Code, "纯数字密码应被拒绝")
	})
}

func TestUserLogin(t *testing.T) {
	RequireServer(t)

	t.Run("错误密码登录失败", func(t *testing.T) {
		user, _ := RegisterTestUser(t, "login")

		resp := PostJSON(t, BaseURL+"/login", map[string]string{
			"email":    user.Email,
			"password": "wrongpass1",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "错误密码应登录失败")
	})

	t.Run("未登录访问资料被拒绝", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", "")
		assert.NotEqual(t, 0, resp.Code)
	})
}

func TestUserProfile(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "profile")

	t.Run("更新收货地址", func(t *testing.T) {
		resp := PutJSON(t, BaseURL+"/update-address", map[string]string{
			"address": "Gulshan, Dhaka",
		}, token)
		require.Equal(t, 0, resp.Code, "更新地址失败: %s", resp.Message)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, "Gulshan, Dhaka", user.Address)
	})

	t.Run("查询资料", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/profile", token)
		require.Equal(t, 0, resp.Code)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, "Gulshan, Dhaka", user.Address)
	})
}
