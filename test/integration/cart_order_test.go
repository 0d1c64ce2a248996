package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 购物车与订单模块集成测试
//
// 覆盖的核心链路:
// 1. 合并加购(同一本书两次加购数量累加)
// 2. 幂等移除(移除不在购物车的图书是no-op)
// 3. 下单Saga:订单落库、库存扣减、购物车清空
// 4. 订单状态机:只允许前向流转,非管理员被拒绝

func addToCart(t *testing.T, token string, bookID uint, quantity int) *Response {
	t.Helper()
	return PutJSON(t, BaseURL+"/add-to-cart", map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
	}, token)
}

func getCart(t *testing.T, token string) *CartData {
	t.Helper()
	resp := GetJSON(t, BaseURL+"/get-user-cart", token)
	require.Equal(t, 0, resp.Code, "查询购物车失败: %s", resp.Message)

	var cart CartData
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	return &cart
}

func TestCartMerge(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	_, token := RegisterTestUser(t, "cart_merge")
	bookID := PublishTestBook(t, adminToken, "Gora", 15000, 20)

	// 同一本书加购2再加购3,应合并为一条数量5的记录
	require.Equal(t, 0, addToCart(t, token, bookID, 2).Code)
	require.Equal(t, 0, addToCart(t, token, bookID, 3).Code)

	cart := getCart(t, token)
	require.Len(t, cart.Items, 1, "合并加购后应只有一条记录")
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(75000), cart.Total)
}

func TestCartDefaultQuantity(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	_, token := RegisterTestUser(t, "cart_default")
	bookID := PublishTestBook(t, adminToken, "Noukadubi", 11000, 10)

	// 省略quantity时默认加购1本
	resp := PutJSON(t, BaseURL+"/add-to-cart", map[string]interface{}{
		"book_id": bookID,
	}, token)
	require.Equal(t, 0, resp.Code, "省略quantity的加购应成功: %s", resp.Message)

	cart := getCart(t, token)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	_, token := RegisterTestUser(t, "cart_remove")
	bookID := PublishTestBook(t, adminToken, "Chokher Bali", 12000, 10)

	require.Equal(t, 0, addToCart(t, token, bookID, 1).Code)

	t.Run("移除不存在的图书是no-op", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/remove-from-cart/%d", BaseURL, 999999), nil, token)
		assert.Equal(t, 0, resp.Code, "移除不存在的条目不应报错")

		cart := getCart(t, token)
		assert.Len(t, cart.Items, 1, "原条目应保持不变")
	})

	t.Run("移除已有条目", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/remove-from-cart/%d", BaseURL, bookID), nil, token)
		require.Equal(t, 0, resp.Code)

		cart := getCart(t, token)
		assert.Empty(t, cart.Items)
	})
}

func TestPlaceOrder(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	t.Run("空购物车下单失败", func(t *testing.T) {
		_, token := RegisterTestUser(t, "order_empty")

		resp := PostJSON(t, BaseURL+"/place-order", map[string]interface{}{
			"delivery":        "inside",
			"rental_duration": 7,
		}, token)

		assert.NotEqual(t, 0, resp.Code, "空购物车不允许下单")
	})

	t.Run("非法租期下单失败", func(t *testing.T) {
		_, token := RegisterTestUser(t, "order_rental")
		bookID := PublishTestBook(t, adminToken, "Ghare Baire", 18000, 10)
		require.Equal(t, 0, addToCart(t, token, bookID, 1).Code)

		resp := PostJSON(t, BaseURL+"/place-order", map[string]interface{}{
			"delivery":        "inside",
			"rental_duration": 15, // 只允许7/10/20
		}, token)

		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("正常下单:订单落库且购物车清空", func(t *testing.T) {
		_, token := RegisterTestUser(t, "order_ok")
		bookID := PublishTestBook(t, adminToken, "Gitanjali", 25000, 10)

		require.Equal(t, 0, addToCart(t, token, bookID, 2).Code)

		resp := PostJSON(t, BaseURL+"/place-order", map[string]interface{}{
			"delivery":        "inside",
			"rental_duration": 7,
		}, token)
		require.Equal(t, 0, resp.Code, "下单失败: %s", resp.Message)

		var order OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &order))
		assert.NotZero(t, order.OrderID)
		assert.NotEmpty(t, order.OrderNo)
		assert.Equal(t, int64(50000), order.Total, "总价应为数据库价格*数量")
		assert.Equal(t, "Order Placed", order.Status)

		// 下单成功后购物车被清空
		cart := getCart(t, token)
		assert.Empty(t, cart.Items)

		// 订单历史最新一条即刚创建的订单
		history := GetJSON(t, BaseURL+"/get-order-history", token)
		require.Equal(t, 0, history.Code)

		var list OrderListData
		require.NoError(t, json.Unmarshal(history.Data, &list))
		require.NotEmpty(t, list.List)
		assert.Equal(t, order.OrderNo, list.List[0].OrderNo)
	})

	t.Run("库存不足下单失败", func(t *testing.T) {
		_, token := RegisterTestUser(t, "order_stock")
		bookID := PublishTestBook(t, adminToken, "Shesher Kobita", 20000, 1)

		require.Equal(t, 0, addToCart(t, token, bookID, 5).Code)

		resp := PostJSON(t, BaseURL+"/place-order", map[string]interface{}{
			"delivery":        "outside",
			"rental_duration": 10,
		}, token)

		assert.NotEqual(t, 0, resp.Code, "库存不足应下单失败")

		// 下单失败时购物车保持不变
		cart := getCart(t, token)
		assert.Len(t, cart.Items, 1)
	})
}

func TestOrderStatus(t *testing.T) {
	RequireServer(t)
	adminToken := LoginAdmin(t)

	// 准备一个已下单的订单
	buyer, token := RegisterTestUser(t, "status")
	bookID := PublishTestBook(t, adminToken, "Kabuliwala", 8000, 10)
	require.Equal(t, 0, addToCart(t, token, bookID, 1).Code)

	resp := PostJSON(t, BaseURL+"/place-order", map[string]interface{}{
		"delivery":        "inside",
		"rental_duration": 7,
	}, token)
	require.Equal(t, 0, resp.Code)

	var order OrderData
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	statusURL := fmt.Sprintf("%s/update-status/%d", BaseURL, order.OrderID)

	t.Run("非管理员更新状态被拒绝", func(t *testing.T) {
		result := PutJSON(t, statusURL, map[string]string{
			"status": "Out for Delivery",
		}, token)
		assert.NotEqual(t, 0, result.Code, "普通用户不能更新订单状态")
	})

	t.Run("非管理员查询全部订单被拒绝", func(t *testing.T) {
		result := GetJSON(t, BaseURL+"/get-all-orders", token)
		assert.NotEqual(t, 0, result.Code)
	})

	t.Run("管理员订单视图附带下单用户数据", func(t *testing.T) {
		result := GetJSON(t, BaseURL+"/get-all-orders", adminToken)
		require.Equal(t, 0, result.Code, "管理员查询全部订单失败: %s", result.Message)

		var list OrderListData
		require.NoError(t, json.Unmarshal(result.Data, &list))
		require.NotEmpty(t, list.List)

		found := false
		for _, o := range list.List {
			if o.OrderNo == order.OrderNo {
				found = true
				assert.Equal(t, buyer.Username, o.Username, "订单应附带下单用户名")
				assert.Equal(t, buyer.Email, o.Email)
			}
		}
		assert.True(t, found, "最新订单应出现在管理员视图第一页")
	})

	t.Run("跳级流转被拒绝", func(t *testing.T) {
		// Order Placed → Delivered 不允许
		result := PutJSON(t, statusURL, map[string]string{
			"status": "Delivered",
		}, adminToken)
		assert.NotEqual(t, 0, result.Code, "跳级流转应被状态机拒绝")
	})

	t.Run("前向流转", func(t *testing.T) {
		result := PutJSON(t, statusURL, map[string]string{
			"status": "Out for Delivery",
		}, adminToken)
		require.Equal(t, 0, result.Code, "前向流转失败: %s", result.Message)

		result = PutJSON(t, statusURL, map[string]string{
			"status": "Delivered",
		}, adminToken)
		require.Equal(t, 0, result.Code)
	})

	t.Run("终态不可变更", func(t *testing.T) {
		result := PutJSON(t, statusURL, map[string]string{
			"status": "Canceled",
		}, adminToken)
		assert.NotEqual(t, 0, result.Code, "Delivered是终态")
	})
}
