package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/paigang/paigang/internal/metrics"
	"github.com/paigang/paigang/internal/repository"
	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/logger"
	"github.com/paigang/paigang/pkg/mip"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/roster"
	"github.com/paigang/paigang/pkg/validator"
)

// RosterHandler 排班处理器
type RosterHandler struct {
	solver mip.Solver
	repo   repository.RosterRepositoryInterface // 可为 nil（未接数据库）
}

// NewRosterHandler 创建排班处理器
func NewRosterHandler(solver mip.Solver, repo repository.RosterRepositoryInterface) *RosterHandler {
	return &RosterHandler{solver: solver, repo: repo}
}

// ConfigInput 排班配置输入（线上契约为 camelCase）
type ConfigInput struct {
	ProductivityRate   int     `json:"productivityRate"`
	PartTimerCapPct    float64 `json:"partTimerCapPct"`
	WeekenderCapPct    float64 `json:"weekenderCapPct"`
	AllowWeekendDayOff bool    `json:"allowWeekendDayOff"`
}

// SolveRequest 排班求解请求
type SolveRequest struct {
	OPH    [][]int     `json:"oph"` // 7×24 需求矩阵（单/小时）
	Config ConfigInput `json:"config"`
	Save   bool        `json:"save,omitempty"` // 是否持久化结果
}

// SolveResponse 排班求解响应
type SolveResponse struct {
	*model.Result
	RosterID string `json:"rosterId,omitempty"`
}

// parseSolveInput 解析并校验求解输入
func parseSolveInput(req *SolveRequest) (model.Matrix, model.Config, *errors.AppError) {
	demand, ok := model.MatrixFromRows(req.OPH)
	if !ok {
		return demand, model.Config{}, errors.New(errors.CodeInvalidDemand, "需求矩阵必须为 7×24")
	}
	if demand.HasNegative() {
		return demand, model.Config{}, errors.New(errors.CodeInvalidDemand, "需求矩阵包含负值")
	}

	cfg := model.NewConfig(
		req.Config.ProductivityRate,
		req.Config.PartTimerCapPct,
		req.Config.WeekenderCapPct,
		req.Config.AllowWeekendDayOff,
	)
	if err := cfg.Validate(); err != nil {
		return demand, cfg, errors.Wrap(err, errors.CodeInvalidConfig, "排班配置无效")
	}

	return demand, cfg, nil
}

// Solve 执行排班求解
func (h *RosterHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	demand, cfg, appErr := parseSolveInput(&req)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	engine := roster.NewEngine(h.solver)

	start := time.Now()
	result, err := engine.Solve(r.Context(), &demand, cfg)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInternal, "排班请求已取消"))
		return
	}

	metrics.RecordRosterSolve(h.solver.Name(), string(result.Status), time.Since(start))
	if result.Status == model.StatusOptimal {
		metrics.SetWorkerCounts(result.TotalWorkers, result.FTCount, result.PTCount, result.WFTCount, result.WPTCount)
	}

	resp := SolveResponse{Result: result}

	// 最优结果按需持久化
	if req.Save && h.repo != nil && result.Status == model.StatusOptimal {
		id, err := h.repo.Create(r.Context(), result)
		if err != nil {
			logger.WithError(err).Msg("排班结果持久化失败")
		} else {
			resp.RosterID = id.String()
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// ValidateRequest 排班验证请求
type ValidateRequest struct {
	OPH    [][]int       `json:"oph"`
	Config ConfigInput   `json:"config"`
	Result *model.Result `json:"result"`
}

// ValidateResponse 排班验证响应
type ValidateResponse struct {
	Valid      bool                  `json:"valid"`
	Violations []validator.Violation `json:"violations,omitempty"`
}

// Validate 审计已有排班结果的不变式
func (h *RosterHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Result == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少待验证的排班结果"))
		return
	}

	demand, cfg, appErr := parseSolveInput(&SolveRequest{OPH: req.OPH, Config: req.Config})
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	report := validator.Audit(req.Result, &demand, cfg)
	respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:      report.Valid,
		Violations: report.Violations,
	})
}

// Get 查询已持久化的排班记录
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}
	if h.repo == nil {
		respondError(w, errors.New(errors.CodeInternal, "未配置数据库"))
		return
	}

	idStr := r.URL.Query().Get("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的排班ID格式"))
		return
	}

	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeNotFound, "排班记录不存在"))
		return
	}
	workers, err := h.repo.GetWorkers(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询工人明细失败"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roster":  record,
		"workers": workers,
	})
}
