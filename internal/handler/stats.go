package handler

import (
	"encoding/json"
	"net/http"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/stats"
)

// WorkforceStatsRequest 人力结构分析请求
type WorkforceStatsRequest struct {
	OPH    [][]int       `json:"oph"`
	Config ConfigInput   `json:"config"`
	Result *model.Result `json:"result"`

	// HourlyRate 小时工资，用于推导周成本（可选）
	HourlyRate float64 `json:"hourlyRate,omitempty"`
}

// WorkforceStatsResponse 人力结构分析响应
type WorkforceStatsResponse struct {
	*stats.WorkforceMetrics
	WeeklyCost float64 `json:"weekly_cost,omitempty"`
}

// GetWorkforceStatsHandler 人力结构分析
func GetWorkforceStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req WorkforceStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Result == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少排班结果"))
		return
	}

	demand, cfg, appErr := parseSolveInput(&SolveRequest{OPH: req.OPH, Config: req.Config})
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	analyzer := stats.NewWorkforceAnalyzer()
	metrics := analyzer.Analyze(req.Result, &demand, cfg)

	resp := WorkforceStatsResponse{WorkforceMetrics: metrics}
	if req.HourlyRate > 0 {
		resp.WeeklyCost = metrics.WeeklyCost(req.HourlyRate)
	}

	respondJSON(w, http.StatusOK, resp)
}
