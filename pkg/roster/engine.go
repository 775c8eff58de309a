package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/paigang/paigang/pkg/logger"
	"github.com/paigang/paigang/pkg/mip"
	"github.com/paigang/paigang/pkg/model"
)

// Stage 流水线阶段（进度通知按阶段边界严格有序地发出）
type Stage string

const (
	StageCatalogue Stage = "catalogue" // 班次目录枚举
	StagePrune     Stage = "prune"     // 变量裁剪
	StagePhase1    Stage = "phase1"    // 阶段一：最小化总人数
	StagePhase2    Stage = "phase2"    // 阶段二：最大化兼职占比
	StageReify     Stage = "reify"     // 花名册还原
)

// ProgressFunc 进度回调
type ProgressFunc func(stage Stage, message string)

// Engine 排班优化引擎
// 单趟流水线：一次 Solve 调用是一个原子计算，调用之间不保留任何状态。
// 两次并发调用合法的前提是各自持有独立的求解器实例
type Engine struct {
	solver   mip.Solver
	progress ProgressFunc
	log      *logger.RosterLogger
}

// Option 引擎选项
type Option func(*Engine)

// WithProgress 注册进度回调
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// NewEngine 创建排班引擎
func NewEngine(solver mip.Solver, opts ...Option) *Engine {
	e := &Engine{
		solver: solver,
		log:    logger.NewRosterLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// notify 发出阶段进度通知
func (e *Engine) notify(stage Stage, message string) {
	if e.progress != nil {
		e.progress(stage, message)
	}
}

// Solve 执行两阶段排班求解
//
// 返回的 Result 永远非 nil；终态（optimal/infeasible/error）编码在
// Result.Status 中。error 仅在上下文取消时非 nil，此时不产出部分结果
func (e *Engine) Solve(ctx context.Context, demand *model.Matrix, cfg model.Config) (*model.Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return model.ZeroResult(model.StatusError, fmt.Sprintf("配置无效: %v", err)), nil
	}
	if demand.HasNegative() {
		return model.ZeroResult(model.StatusError, "需求矩阵包含负值"), nil
	}

	required := model.Required(demand, cfg.ProductivityRate)
	e.log.SolveStart(demand.Total(), cfg.ProductivityRate)

	// 零需求直接返回空排班
	if demand.IsZero() {
		result := &model.Result{
			Status:      model.StatusOptimal,
			Workers:     []*model.Worker{},
			Required:    required,
			SolveTimeMs: time.Since(start).Milliseconds(),
		}
		e.log.SolveComplete(string(result.Status), 0, time.Since(start))
		return result, nil
	}

	e.notify(StageCatalogue, "枚举班次模板")
	universe := Catalogue(cfg)

	e.notify(StagePrune, "裁剪无效模板")
	templates := Prune(universe, demand)
	e.log.TemplatesPruned(len(universe), len(templates))

	// 阶段一：最小化总人数
	e.notify(StagePhase1, "阶段一：最小化总人数")
	model1, uncovered := BuildModel(Phase1, templates, demand, &required, cfg, 0)
	if len(uncovered) > 0 {
		s := uncovered[0]
		msg := fmt.Sprintf("阶段一不可行: 周%d %02d:00 的需求无任何合法班次可覆盖", s.Day+1, s.Hour)
		return e.terminal(model.StatusInfeasible, msg, start), nil
	}
	e.log.PhaseStart(1, model1.NumVars(), len(model1.Constraints))

	sol1, err := e.solver.Solve(ctx, model1)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return e.terminal(model.StatusError, fmt.Sprintf("阶段一求解失败: %v", err), start), nil
	}
	switch sol1.Status {
	case mip.StatusOptimal:
	case mip.StatusInfeasible:
		return e.terminal(model.StatusInfeasible, "阶段一不可行: 覆盖与占比约束无法同时满足", start), nil
	default:
		return e.terminal(model.StatusError, "阶段一求解器返回异常状态", start), nil
	}

	// N* = round(Σ 原始值)
	sum := 0.0
	for _, v := range model1.Vars() {
		sum += sol1.Value(v)
	}
	headcount := ClampCount(sum)

	// 阶段二：固定总人数上限，最小化全职人数
	// 任何故障都静默回退到阶段一解（其总人数已是最优）
	chosen := sol1
	if cfg.AllowPartTime() && hasPartTime(templates) && headcount > 0 {
		e.notify(StagePhase2, "阶段二：最大化兼职占比")
		model2, _ := BuildModel(Phase2, templates, demand, &required, cfg, headcount)
		e.log.PhaseStart(2, model2.NumVars(), len(model2.Constraints))

		sol2, err := e.solver.Solve(ctx, model2)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil && sol2.Status == mip.StatusOptimal {
			chosen = sol2
		} else {
			e.log.PhaseFallback(2, err)
		}
	}

	e.notify(StageReify, "构建花名册")
	workers := Reify(templates, chosen)
	coverage := BuildCoverage(workers)
	counts := CountByType(workers)

	result := &model.Result{
		Status:       model.StatusOptimal,
		Workers:      workers,
		TotalWorkers: len(workers),
		FTCount:      counts[model.WorkerFT],
		PTCount:      counts[model.WorkerPT],
		WFTCount:     counts[model.WorkerWFT],
		WPTCount:     counts[model.WorkerWPT],
		Coverage:     coverage,
		Required:     required,
		SolveTimeMs:  time.Since(start).Milliseconds(),
	}

	e.log.SolveComplete(string(result.Status), result.TotalWorkers, time.Since(start))
	return result, nil
}

// terminal 构建失败终态结果
func (e *Engine) terminal(status model.Status, message string, start time.Time) *model.Result {
	result := model.ZeroResult(status, message)
	result.SolveTimeMs = time.Since(start).Milliseconds()
	e.log.SolveComplete(string(status), 0, time.Since(start))
	return result
}

// hasPartTime 判断模板集中是否存在兼职模板
func hasPartTime(templates []model.ShiftTemplate) bool {
	for _, t := range templates {
		if t.Type.IsPartTime() {
			return true
		}
	}
	return false
}
