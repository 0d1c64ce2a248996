package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试针对一个已经启动的服务实例运行(含MySQL/Redis),
// 服务不可达时整组跳过,避免在纯单元测试环境下误报
//
// 启动方式:
//
//	go run ./cmd/api
//	go test ./test/integration/...
//
// 管理员相关用例需要通过环境变量提供一个管理员账号:
//
//	DEENOASIS_TEST_ADMIN_EMAIL / DEENOASIS_TEST_ADMIN_PASSWORD

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData 注册/资料响应数据
type UserData struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Language string `json:"language"`
}

// CartData 购物车响应数据
type CartData struct {
	Items []struct {
		BookID   uint  `json:"book_id"`
		Quantity int   `json:"quantity"`
		Subtotal int64 `json:"subtotal"`
	} `json:"items"`
	Total int64 `json:"total"`
}

// OrderData 下单响应数据
type OrderData struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	Total   int64  `json:"total"`
	Status  string `json:"status"`
}

// OrderListData 订单列表响应数据
type OrderListData struct {
	List []struct {
		ID       uint   `json:"id"`
		OrderNo  string `json:"order_no"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Status   string `json:"status"`
		Total    int64  `json:"total"`
		Items   []struct {
			BookID   uint `json:"book_id"`
			Quantity int  `json:"quantity"`
		} `json:"items"`
	} `json:"list"`
	Total int64 `json:"total"`
}

// SearchData 搜索响应数据
type SearchData struct {
	Query string `json:"query"`
	Total int    `json:"total"`
	List  []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	} `json:"list"`
}

// RequireServer 检查服务是否可达,不可达时跳过整组测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务不可达(%v),跳过集成测试", err)
	}
	resp.Body.Close()
}

// doJSON 发送HTTP请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// RegisterTestUser 注册并登录一个测试用户,返回用户数据和Access Token
// 用户名/邮箱/电话带时间戳后缀,保证多次运行不会唯一索引冲突
func RegisterTestUser(t *testing.T, prefix string) (*UserData, string) {
	t.Helper()

	suffix := time.Now().UnixNano() % 1e9
	email := fmt.Sprintf("%s_%d@test.local", prefix, suffix)
	password := "passw0rd123"

	registerReq := map[string]interface{}{
		"username": fmt.Sprintf("%s_%d", prefix, suffix),
		"email":    email,
		"contact":  fmt.Sprintf("019%08d", suffix%1e8),
		"password": password,
		"address":  "Dhanmondi, Dhaka",
	}

	resp := PostJSON(t, BaseURL+"/register", registerReq, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	var user UserData
	require.NoError(t, json.Unmarshal(resp.Data, &user))

	return &user, Login(t, email, password)
}

// Login 登录并返回Access Token
func Login(t *testing.T, email, password string) string {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

	var data LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	return data.AccessToken
}

// LoginAdmin 登录管理员账号,未配置时跳过测试
func LoginAdmin(t *testing.T) string {
	t.Helper()

	email := os.Getenv("DEENOASIS_TEST_ADMIN_EMAIL")
	password := os.Getenv("DEENOASIS_TEST_ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("未配置管理员测试账号,跳过")
	}

	return Login(t, email, password)
}

// PublishTestBook 上架一本测试图书(管理员操作),返回图书ID
func PublishTestBook(t *testing.T, adminToken, title string, price int64, stock int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    title,
		"author":   "Rabindranath Tagore",
		"price":    price,
		"stock":    stock,
		"language": "Bengali",
	}, adminToken)
	require.Equal(t, 0, resp.Code, "上架图书失败: %s", resp.Message)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	require.NotZero(t, book.ID)

	return book.ID
}
