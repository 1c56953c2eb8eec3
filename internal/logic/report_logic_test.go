package logic

import (
	"testing"
	"time"

	"github.com/blues/afs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundingProgress(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		target float64
		want   float64
	}{
		{"zero of target", 0, 1000, 0},
		{"half of target", 500, 1000, 50},
		{"exactly target", 1000, 1000, 100},
		{"double target", 2000, 1000, 200},
		{"zero target", 500, 0, 0},
		{"rounds to two decimals", 333.333, 1000, 33.33},
		{"rounds up", 666.666, 1000, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FundingProgress(tt.total, tt.target))
		})
	}
}

func TestRemainingAmount(t *testing.T) {
	assert.Equal(t, float64(400), RemainingAmount(600, 1000))
	assert.Equal(t, float64(0), RemainingAmount(1000, 1000))
	// 超筹时不出现负数
	assert.Equal(t, float64(0), RemainingAmount(1100, 1000))
}

func TestUserStatistics(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuthLogic(db)
	campaigns := NewCampaignLogic(db)
	reports := NewReportLogic(db)

	farmer, _ := registerUser(t, auth, "Alice", "alice@farm.test", "farmer")
	investor, _ := registerUser(t, auth, "Bob", "bob@invest.test", "investor")

	campaign, err := campaigns.CreateCampaign(farmer, storeInput(1000, 1))
	require.NoError(t, err)
	_, err = campaigns.Approve(campaign.Id)
	require.NoError(t, err)
	_, _, err = campaigns.Fund(investor, campaign.Id, 600)
	require.NoError(t, err)

	users, err := reports.UserStatistics()
	require.NoError(t, err)
	require.Len(t, users, 2)

	byEmail := make(map[string]UserReport, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	assert.Equal(t, int64(1), byEmail["alice@farm.test"].TotalCampaigns)
	assert.Equal(t, float64(0), byEmail["alice@farm.test"].TotalInvestments)
	assert.Equal(t, int64(0), byEmail["bob@invest.test"].TotalCampaigns)
	assert.Equal(t, float64(600), byEmail["bob@invest.test"].TotalInvestments)
}

func TestCampaignReportsAndFundsByStatus(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuthLogic(db)
	campaigns := NewCampaignLogic(db)
	reports := NewReportLogic(db)

	farmer, _ := registerUser(t, auth, "Alice", "alice@farm.test", "farmer")
	investor, _ := registerUser(t, auth, "Bob", "bob@invest.test", "investor")

	// 一个 active 有投资，一个 pending 没有
	funded, err := campaigns.CreateCampaign(farmer, storeInput(1000, 1))
	require.NoError(t, err)
	_, err = campaigns.Approve(funded.Id)
	require.NoError(t, err)
	_, _, err = campaigns.Fund(investor, funded.Id, 600)
	require.NoError(t, err)

	_, err = campaigns.CreateCampaign(farmer, storeInput(2000, 2))
	require.NoError(t, err)

	all, err := reports.CampaignReports(0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	first := all[0]
	assert.Equal(t, "Maize Expansion", first.ProjectName)
	assert.Equal(t, "Alice", first.FarmerName)
	assert.Equal(t, float64(600), first.FundingDetails.TotalFunds)
	assert.Equal(t, 1, first.FundingDetails.InvestorCount)
	assert.Equal(t, float64(60), first.FundingDetails.FundingProgress)
	assert.Equal(t, float64(400), first.FundingDetails.RemainingAmount)
	require.Len(t, first.Investments, 1)
	assert.Equal(t, "Bob", first.Investments[0].InvestorName)

	total, err := reports.TotalFunds()
	require.NoError(t, err)
	assert.Equal(t, float64(600), total)

	byStatus, err := reports.FundsByStatus()
	require.NoError(t, err)
	assert.Equal(t, float64(600), byStatus["active"])
	assert.Equal(t, float64(0), byStatus["pending"])
}

func TestFarmerReportsAreScopedToFarmer(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuthLogic(db)
	campaigns := NewCampaignLogic(db)
	reports := NewReportLogic(db)

	alice, _ := registerUser(t, auth, "Alice", "alice@farm.test", "farmer")
	carol, _ := registerUser(t, auth, "Carol", "carol@farm.test", "farmer")
	investor, _ := registerUser(t, auth, "Bob", "bob@invest.test", "investor")

	aliceCampaign, err := campaigns.CreateCampaign(alice, storeInput(1000, 1))
	require.NoError(t, err)
	_, err = campaigns.Approve(aliceCampaign.Id)
	require.NoError(t, err)
	_, _, err = campaigns.Fund(investor, aliceCampaign.Id, 250)
	require.NoError(t, err)

	_, err = campaigns.CreateCampaign(carol, storeInput(5000, 6))
	require.NoError(t, err)

	dashboard, err := reports.GetFarmerDashboard(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.TotalCampaigns)
	assert.Equal(t, float64(250), dashboard.TotalInvestments)
	require.Len(t, dashboard.Campaigns, 1)
	assert.Equal(t, aliceCampaign.Id, dashboard.Campaigns[0].Id)

	report, err := reports.GetFarmerCampaignsReport(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalCampaigns)
	assert.Equal(t, float64(250), report.TotalFundsReceived)

	// 别人的活动查不到
	_, _, err = reports.GetFarmerCampaignReport(carol, aliceCampaign.Id)
	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	// 自己的能查到，投资明细齐全
	single, details, err := reports.GetFarmerCampaignReport(alice, aliceCampaign.Id)
	require.NoError(t, err)
	assert.Equal(t, aliceCampaign.Id, single.Id)
	require.Len(t, details, 1)
	assert.Equal(t, "Bob", details[0].InvestorName)
	assert.Equal(t, float64(250), details[0].Amount)
}

func TestInvestorDashboardNewestFirst(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuthLogic(db)
	campaigns := NewCampaignLogic(db)
	reports := NewReportLogic(db)

	farmer, _ := registerUser(t, auth, "Alice", "alice@farm.test", "farmer")
	investor, _ := registerUser(t, auth, "Bob", "bob@invest.test", "investor")

	campaign, err := campaigns.CreateCampaign(farmer, storeInput(1000, 1))
	require.NoError(t, err)
	_, err = campaigns.Approve(campaign.Id)
	require.NoError(t, err)

	// 两笔投资，时间错开以保证排序确定
	old := model.Investment{
		CampaignId: campaign.Id,
		InvestorId: investor.UserableId,
		Amount:     100,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&old).Error)
	recent := model.Investment{
		CampaignId: campaign.Id,
		InvestorId: investor.UserableId,
		Amount:     200,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.Create(&recent).Error)

	dashboard, err := reports.GetInvestorDashboard(investor)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalInvestments)
	assert.Equal(t, float64(300), dashboard.TotalAmountInvested)
	require.Len(t, dashboard.Investments, 2)
	assert.Equal(t, float64(200), dashboard.Investments[0].Amount)
	assert.Equal(t, float64(100), dashboard.Investments[1].Amount)

	snapshot := dashboard.Investments[0].Campaign
	assert.Equal(t, campaign.Id, snapshot.Id)
	assert.Equal(t, "Maize Expansion", snapshot.ProjectName)
	assert.Equal(t, "Alice", snapshot.FarmerName)
	assert.Equal(t, float64(30), snapshot.FundingProgress)
	assert.Equal(t, model.CampaignStatusActive, snapshot.Status)
}
