// Package integration 提供 API 集成测试
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paigang/paigang/internal/handler"
	"github.com/paigang/paigang/pkg/mip"
	"github.com/paigang/paigang/pkg/model"
)

// stubSolver 确定性桩求解器：对每个覆盖行把第一个变量抬到需求人数
type stubSolver struct{}

func (stubSolver) Name() string { return "stub" }

func (stubSolver) Solve(_ context.Context, m *mip.Model) (*mip.Solution, error) {
	values := make(map[string]float64)
	for _, c := range m.Constraints {
		if strings.HasPrefix(c.Name, "cov_") && len(c.Terms) > 0 {
			v := c.Terms[0].Var
			if values[v] < c.RHS {
				values[v] = c.RHS
			}
		}
	}
	return &mip.Solution{Status: mip.StatusOptimal, Values: values}, nil
}

func newHandler() *handler.RosterHandler {
	return handler.NewRosterHandler(stubSolver{}, nil)
}

func zeroMatrix() [][]int {
	rows := make([][]int, 7)
	for d := range rows {
		rows[d] = make([]int, 24)
	}
	return rows
}

func postJSON(t *testing.T, fn http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

// TestSolveAPI 排班求解接口
func TestSolveAPI(t *testing.T) {
	h := newHandler()

	oph := zeroMatrix()
	oph[0][10] = 12

	rec := postJSON(t, h.Solve, "/api/v1/roster/solve", map[string]interface{}{
		"oph": oph,
		"config": map[string]interface{}{
			"productivityRate":   12,
			"partTimerCapPct":    30,
			"weekenderCapPct":    30,
			"allowWeekendDayOff": false,
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码期望 200, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status       string          `json:"status"`
		TotalWorkers int             `json:"totalWorkers"`
		Workers      []*model.Worker `json:"workers"`
		Coverage     [][]int         `json:"coverage"`
		Required     [][]int         `json:"required"`
		SolveTimeMs  int64           `json:"solveTimeMs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	if resp.Status != "optimal" {
		t.Errorf("状态期望 optimal, 实际 %s", resp.Status)
	}
	if resp.TotalWorkers < 1 {
		t.Errorf("总人数期望 >= 1, 实际 %d", resp.TotalWorkers)
	}
	if len(resp.Coverage) != 7 || len(resp.Required) != 7 {
		t.Error("响应矩阵必须为 7×24")
	}
	if resp.Required[0][10] != 1 {
		t.Errorf("R[0][10] 期望 1, 实际 %d", resp.Required[0][10])
	}
}

// TestSolveAPIBadMatrix 非法需求矩阵
func TestSolveAPIBadMatrix(t *testing.T) {
	h := newHandler()

	rec := postJSON(t, h.Solve, "/api/v1/roster/solve", map[string]interface{}{
		"oph": [][]int{{1, 2, 3}}, // 非 7×24
		"config": map[string]interface{}{
			"productivityRate": 12,
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码期望 400, 实际 %d", rec.Code)
	}
}

// TestSolveAPIBadConfig 非法配置
func TestSolveAPIBadConfig(t *testing.T) {
	h := newHandler()

	rec := postJSON(t, h.Solve, "/api/v1/roster/solve", map[string]interface{}{
		"oph": zeroMatrix(),
		"config": map[string]interface{}{
			"productivityRate": 0, // 非法生产率
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码期望 400, 实际 %d", rec.Code)
	}
}

// TestSolveAPIMethodNotAllowed 方法校验
func TestSolveAPIMethodNotAllowed(t *testing.T) {
	h := newHandler()

	req := httptest.NewRequest("GET", "/api/v1/roster/solve", nil)
	rec := httptest.NewRecorder()
	h.Solve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("GET 请求状态码期望 400, 实际 %d", rec.Code)
	}
}

// TestValidateAPI 排班验证接口
func TestValidateAPI(t *testing.T) {
	h := newHandler()

	oph := zeroMatrix()
	oph[0][10] = 12

	dayOff := 4
	result := &model.Result{
		Status:       model.StatusOptimal,
		TotalWorkers: 1,
		PTCount:      1,
		Workers: []*model.Worker{
			{ID: 1, Type: model.WorkerPT, ShiftStart: 8, ShiftEnd: 12,
				DayOff: &dayOff, ProductiveHours: []int{8, 9, 10, 11}},
		},
	}
	// 覆盖矩阵与花名册一致
	for d := 0; d < 7; d++ {
		if d == dayOff {
			continue
		}
		for h := 8; h <= 11; h++ {
			result.Coverage[d][h] = 1
		}
	}
	result.Required[0][10] = 1

	rec := postJSON(t, h.Validate, "/api/v1/roster/validate", map[string]interface{}{
		"oph": oph,
		"config": map[string]interface{}{
			"productivityRate": 12,
			"partTimerCapPct":  100,
			"weekenderCapPct":  30,
		},
		"result": result,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码期望 200, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Valid      bool              `json:"valid"`
		Violations []json.RawMessage `json:"violations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.Valid {
		t.Errorf("合规结果验证应通过: %s", rec.Body.String())
	}
}

// TestValidateAPIDetectsViolation 验证接口检出违规
func TestValidateAPIDetectsViolation(t *testing.T) {
	h := newHandler()

	oph := zeroMatrix()
	oph[0][10] = 24 // 需要 2 人，但结果只有 1 人覆盖

	dayOff := 4
	result := &model.Result{
		Status:       model.StatusOptimal,
		TotalWorkers: 1,
		PTCount:      1,
		Workers: []*model.Worker{
			{ID: 1, Type: model.WorkerPT, ShiftStart: 8, ShiftEnd: 12,
				DayOff: &dayOff, ProductiveHours: []int{8, 9, 10, 11}},
		},
	}
	for d := 0; d < 7; d++ {
		if d == dayOff {
			continue
		}
		for h := 8; h <= 11; h++ {
			result.Coverage[d][h] = 1
		}
	}

	rec := postJSON(t, h.Validate, "/api/v1/roster/validate", map[string]interface{}{
		"oph": oph,
		"config": map[string]interface{}{
			"productivityRate": 12,
			"partTimerCapPct":  100,
			"weekenderCapPct":  30,
		},
		"result": result,
	})

	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Valid {
		t.Error("覆盖不足应被检出")
	}
}

// TestWorkforceStatsAPI 人力结构分析接口
func TestWorkforceStatsAPI(t *testing.T) {
	oph := zeroMatrix()
	oph[0][10] = 12

	dayOff := 4
	result := &model.Result{
		Status:       model.StatusOptimal,
		TotalWorkers: 2,
		FTCount:      1,
		PTCount:      1,
		Workers: []*model.Worker{
			{ID: 1, Type: model.WorkerFT, ShiftStart: 9, ShiftEnd: 18,
				DayOff: &dayOff, ProductiveHours: []int{9, 10, 11, 12, 14, 15, 16, 17}},
			{ID: 2, Type: model.WorkerPT, ShiftStart: 8, ShiftEnd: 12,
				DayOff: &dayOff, ProductiveHours: []int{8, 9, 10, 11}},
		},
	}

	rec := postJSON(t, handler.GetWorkforceStatsHandler, "/api/v1/stats/workforce", map[string]interface{}{
		"oph": oph,
		"config": map[string]interface{}{
			"productivityRate": 12,
			"partTimerCapPct":  50,
			"weekenderCapPct":  30,
		},
		"result":     result,
		"hourlyRate": 25,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码期望 200, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TotalWorkers          int     `json:"total_workers"`
		PartTimeSharePct      float64 `json:"part_time_share_pct"`
		WeeklyProductiveHours int     `json:"weekly_productive_hours"`
		WeeklyCost            float64 `json:"weekly_cost"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	if resp.TotalWorkers != 2 {
		t.Errorf("总人数期望 2, 实际 %d", resp.TotalWorkers)
	}
	if resp.PartTimeSharePct != 50 {
		t.Errorf("兼职占比期望 50, 实际 %v", resp.PartTimeSharePct)
	}
	// FT 48 + PT 24 = 72 周工时，成本 72×25
	if resp.WeeklyCost != 1800 {
		t.Errorf("周成本期望 1800, 实际 %v", resp.WeeklyCost)
	}
}
