package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const adminPassword = "admin-secret-123"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			TokenTTLMinutes: 60,
			AdminName:       "Administrator",
			AdminEmail:      "admin@agrifund.local",
			AdminPassword:   adminPassword,
		},
	}
	require.NoError(t, database.EnsureAdmin(db, cfg.Auth))

	return Setup(db, cfg)
}

// doRequest 发送JSON请求并解析统一响应
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w.Code, parsed
}

func register(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()
	code, resp := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"phone":    "0711000000",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Bearer", data["token_type"])
	return data["token"].(string)
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	code, resp := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)
	return resp["data"].(map[string]interface{})["token"].(string)
}

func TestCampaignFundingFlow(t *testing.T) {
	r := newTestServer(t)

	farmerToken := register(t, r, "Alice", "alice@farm.test", "farmer")
	adminToken := login(t, r, "admin@agrifund.local", adminPassword)
	investorToken := register(t, r, "Bob", "bob@invest.test", "investor")

	// 农户发起活动
	code, resp := doRequest(t, r, http.MethodPost, "/api/v1/campaigns", farmerToken, gin.H{
		"project_name":        "Maize Expansion",
		"project_description": "Expand maize acreage",
		"project_capital":     1000,
		"project_duration":    1,
		"project_location":    "Nakuru",
		"project_benefits":    "Higher yield",
		"project_risks":       "Drought",
	})
	require.Equal(t, http.StatusCreated, code)
	campaign := resp["data"].(map[string]interface{})["campaign"].(map[string]interface{})
	assert.Equal(t, "pending", campaign["status"])
	campaignId := int64(campaign["id"].(float64))

	// pending 状态不能投
	code, _ = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/campaigns/%d/fund", campaignId), investorToken, gin.H{"amount": 600})
	assert.Equal(t, http.StatusForbidden, code)

	// 管理员审核通过
	code, resp = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/campaigns/%d/approve", campaignId), adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	campaign = resp["data"].(map[string]interface{})["campaign"].(map[string]interface{})
	assert.Equal(t, "active", campaign["status"])

	// 重复审核 -> 400
	code, _ = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/campaigns/%d/approve", campaignId), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// 投资 600，进度 60%，剩余 400
	code, _ = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/campaigns/%d/fund", campaignId), investorToken, gin.H{"amount": 600})
	require.Equal(t, http.StatusOK, code)

	code, resp = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/campaigns/%d", campaignId), "", nil)
	require.Equal(t, http.StatusOK, code)
	campaign = resp["data"].(map[string]interface{})["campaign"].(map[string]interface{})
	assert.Equal(t, float64(60), campaign["funding_progress"])
	assert.Equal(t, float64(400), campaign["remaining_amount"])

	// 再投 500，超筹到 110%，剩余钳到 0
	code, _ = doRequest(t, r, http.MethodPost,
		fmt.Sprintf("/api/v1/campaigns/%d/fund", campaignId), investorToken, gin.H{"amount": 500})
	require.Equal(t, http.StatusOK, code)

	code, resp = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/campaigns/%d", campaignId), "", nil)
	require.Equal(t, http.StatusOK, code)
	campaign = resp["data"].(map[string]interface{})["campaign"].(map[string]interface{})
	assert.Equal(t, float64(110), campaign["funding_progress"])
	assert.Equal(t, float64(0), campaign["remaining_amount"])

	// 各角色看板
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/reports/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/reports/farmer/dashboard", farmerToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, resp = doRequest(t, r, http.MethodGet, "/api/v1/reports/investor/dashboard", investorToken, nil)
	require.Equal(t, http.StatusOK, code)
	investorData := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), investorData["total_investments"])
	assert.Equal(t, float64(1100), investorData["total_amount_invested"])
}

func TestRoleEnforcement(t *testing.T) {
	r := newTestServer(t)

	farmerToken := register(t, r, "Alice", "alice@farm.test", "farmer")
	investorToken := register(t, r, "Bob", "bob@invest.test", "investor")

	// 投资人不能发起活动
	code, resp := doRequest(t, r, http.MethodPost, "/api/v1/campaigns", investorToken, gin.H{
		"project_name":        "Nope",
		"project_description": "Nope",
		"project_capital":     100,
		"project_duration":    1,
		"project_location":    "Nowhere",
		"project_benefits":    "None",
		"project_risks":       "All",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only farmers can create campaigns.", resp["error"])

	// 农户不能审核
	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/campaigns/1/approve", farmerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// 农户不能投资
	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/campaigns/1/fund", farmerToken, gin.H{"amount": 10})
	assert.Equal(t, http.StatusForbidden, code)

	// 管理员报表对农户关门
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/reports/admin/dashboard", farmerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// 未登录访问报表
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/reports/farmer/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestServer(t)

	// 密码太短
	code, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@farm.test",
		"password": "short",
		"phone":    "0711000000",
		"role":     "farmer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// 角色不合法
	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Mallory",
		"email":    "mallory@test.test",
		"password": "password123",
		"phone":    "0711000000",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// 邮箱重复
	register(t, r, "Alice", "alice@farm.test", "farmer")
	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Alice Again",
		"email":    "alice@farm.test",
		"password": "password123",
		"phone":    "0711000000",
		"role":     "farmer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestLogoutRevokesOnlyCurrentSession(t *testing.T) {
	r := newTestServer(t)

	token := register(t, r, "Alice", "alice@farm.test", "farmer")

	code, resp := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	user := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice@farm.test", user["email"])

	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	// 已撤销的令牌在中间件被拦下
	code, _ = doRequest(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestShowUnknownCampaign(t *testing.T) {
	r := newTestServer(t)

	code, resp := doRequest(t, r, http.MethodGet, "/api/v1/campaigns/42", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Campaign not found", resp["message"])
}
