// Package scenario 提供场景测试
// 场景用例以真实 GLPK 后端驱动完整引擎流水线
package scenario

import (
	"context"
	"testing"

	"github.com/paigang/paigang/pkg/mip/glpksolver"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/roster"
	"github.com/paigang/paigang/pkg/validator"
)

// solve 以 GLPK 后端执行一次完整求解
func solve(t *testing.T, demand *model.Matrix, cfg model.Config) *model.Result {
	t.Helper()
	engine := roster.NewEngine(glpksolver.New())
	result, err := engine.Solve(context.Background(), demand, cfg)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	return result
}

// assertCoverageSufficient 校验覆盖充分性：C >= R 于每个正需求槽位
func assertCoverageSufficient(t *testing.T, result *model.Result, demand *model.Matrix, cfg model.Config) {
	t.Helper()
	required := model.Required(demand, cfg.ProductivityRate)
	for d := 0; d < model.DaysPerWeek; d++ {
		for h := 0; h < model.HoursPerDay; h++ {
			if demand[d][h] > 0 && result.Coverage[d][h] < required[d][h] {
				t.Errorf("槽位 (%d,%d) 覆盖 %d 低于需求 %d", d, h, result.Coverage[d][h], required[d][h])
			}
		}
	}
}

// TestZeroDemand 零需求：空排班
func TestZeroDemand(t *testing.T) {
	var demand model.Matrix
	cfg := model.NewConfig(12, 30, 30, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}
	if result.TotalWorkers != 0 || len(result.Workers) != 0 {
		t.Errorf("零需求不应雇佣工人, 实际 %d", result.TotalWorkers)
	}
	if !result.Coverage.IsZero() || !result.Required.IsZero() {
		t.Error("零需求下覆盖与需求矩阵应全零")
	}
}

// TestSingleHourSpike 单小时尖峰：一名兼职覆盖
// 兼职上限放开到 100，否则占比约束会迫使唯一工人改为全职
func TestSingleHourSpike(t *testing.T) {
	var demand model.Matrix
	demand[0][10] = 12
	cfg := model.NewConfig(12, 100, 30, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}
	if result.TotalWorkers != 1 {
		t.Fatalf("总人数期望 1, 实际 %d", result.TotalWorkers)
	}

	// 阶段二偏向兼职：唯一工人应为 PT 且班段覆盖 10 点
	w := result.Workers[0]
	if w.Type != model.WorkerPT {
		t.Errorf("工种期望 PT, 实际 %s", w.Type)
	}
	if w.ShiftStart > 10 || w.ShiftStart+3 < 10 {
		t.Errorf("班段 [%d,%d+3] 未覆盖 10 点", w.ShiftStart, w.ShiftStart)
	}
	if result.Coverage[0][10] < 1 {
		t.Errorf("C[0][10] 期望 >= 1, 实际 %d", result.Coverage[0][10])
	}
}

// TestUniformWeekdayDemand 工作日均匀需求
func TestUniformWeekdayDemand(t *testing.T) {
	var demand model.Matrix
	for d := 0; d <= 4; d++ {
		for h := 9; h <= 17; h++ {
			demand[d][h] = 24
		}
	}
	cfg := model.NewConfig(12, 30, 30, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}

	for d := 0; d <= 4; d++ {
		for h := 9; h <= 17; h++ {
			if result.Required[d][h] != 2 {
				t.Fatalf("R[%d][%d] 期望 2, 实际 %d", d, h, result.Required[d][h])
			}
		}
	}
	assertCoverageSufficient(t, result, &demand, cfg)

	// 周末无需求，不应雇佣周末工
	if result.WFTCount != 0 || result.WPTCount != 0 {
		t.Errorf("周末零需求不应雇佣周末工: WFT=%d WPT=%d", result.WFTCount, result.WPTCount)
	}

	// 全部不变式
	report := validator.Audit(result, &demand, cfg)
	if !report.Valid {
		t.Errorf("不变式审计失败: %+v", report.Violations)
	}
}

// TestPTForbidden 禁止兼职
func TestPTForbidden(t *testing.T) {
	var demand model.Matrix
	for d := 0; d <= 4; d++ {
		for h := 9; h <= 17; h++ {
			demand[d][h] = 24
		}
	}
	cfg := model.NewConfig(12, 0, 30, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}
	if result.PTCount != 0 || result.WPTCount != 0 {
		t.Errorf("禁止兼职时不应出现 PT/WPT: PT=%d WPT=%d", result.PTCount, result.WPTCount)
	}
	assertCoverageSufficient(t, result, &demand, cfg)
}

// TestOvernightDemand 凌晨需求由跨夜全职覆盖
func TestOvernightDemand(t *testing.T) {
	var demand model.Matrix
	demand[0][2] = 12 // 周一 02:00
	cfg := model.NewConfig(12, 30, 30, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}
	if result.Coverage[0][2] < 1 {
		t.Errorf("C[0][2] 期望 >= 1, 实际 %d", result.Coverage[0][2])
	}

	// 覆盖凌晨的只能是 20 点后开班的跨夜全职
	found := false
	for _, w := range result.Workers {
		if w.Type == model.WorkerFT && w.ShiftStart >= 20 {
			found = true
		}
	}
	if !found {
		t.Error("应雇佣至少一名 20 点后开班的跨夜全职")
	}
}

// TestWeekenderForced 周末尖峰、禁止兼职
func TestWeekenderForced(t *testing.T) {
	var demand model.Matrix
	demand[model.Saturday][10] = 60
	demand[model.Sunday][10] = 60
	cfg := model.NewConfig(12, 0, 100, false)

	result := solve(t, &demand, cfg)

	if result.Status != model.StatusOptimal {
		t.Fatalf("状态期望 optimal, 实际 %s: %s", result.Status, result.ErrorMessage)
	}
	if result.PTCount != 0 || result.WPTCount != 0 {
		t.Errorf("禁止兼职时不应出现 PT/WPT: PT=%d WPT=%d", result.PTCount, result.WPTCount)
	}
	// R = 60/12 = 5
	if result.TotalWorkers < 5 {
		t.Errorf("总人数期望 >= 5, 实际 %d", result.TotalWorkers)
	}
	for _, w := range result.Workers {
		if w.Type != model.WorkerFT && w.Type != model.WorkerWFT {
			t.Errorf("只应出现 FT/WFT, 实际 %s", w.Type)
		}
	}
	assertCoverageSufficient(t, result, &demand, cfg)
}

// TestIdempotence 同输入两次求解结论一致
func TestIdempotence(t *testing.T) {
	var demand model.Matrix
	for d := 0; d <= 4; d++ {
		for h := 9; h <= 13; h++ {
			demand[d][h] = 24
		}
	}
	cfg := model.NewConfig(12, 30, 30, false)

	r1 := solve(t, &demand, cfg)
	r2 := solve(t, &demand, cfg)

	if r1.TotalWorkers != r2.TotalWorkers {
		t.Errorf("两次求解总人数不一致: %d vs %d", r1.TotalWorkers, r2.TotalWorkers)
	}
	if r1.Coverage != r2.Coverage {
		t.Error("两次求解覆盖矩阵不一致")
	}

	// 由花名册重建覆盖矩阵必须与报告值一致
	if roster.BuildCoverage(r1.Workers) != r1.Coverage {
		t.Error("覆盖矩阵与花名册重建结果不一致")
	}
}
