// Package validator 提供排班结果的不变式审计
package validator

import (
	"fmt"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/roster"
)

// ViolationType 违反类型
type ViolationType string

const (
	ViolationCoverage      ViolationType = "coverage"       // 覆盖不足
	ViolationDayOff        ViolationType = "day_off"        // 休息日纪律
	ViolationWeekend       ViolationType = "weekend"        // 周末工纪律
	ViolationMixCap        ViolationType = "mix_cap"        // 占比上限
	ViolationShiftLegality ViolationType = "shift_legality" // 班次合法性
	ViolationBreakHours    ViolationType = "break_hours"    // 工时与休息核算
	ViolationWorkerID      ViolationType = "worker_id"      // 工人编号
	ViolationCoverageDrift ViolationType = "coverage_drift" // 覆盖矩阵与花名册不一致
)

// Violation 违反详情
type Violation struct {
	Type     ViolationType `json:"type"`
	Severity string        `json:"severity"` // error/warning
	WorkerID int           `json:"worker_id,omitempty"`
	Day      int           `json:"day,omitempty"`
	Hour     int           `json:"hour,omitempty"`
	Message  string        `json:"message"`
}

// Report 审计报告
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Audit 对排班结果执行全部不变式检查
// 仅对 optimal 终态有意义，失败终态直接视为通过（空结果无可审计内容）
func Audit(result *model.Result, demand *model.Matrix, cfg model.Config) *Report {
	report := &Report{Valid: true}
	if result == nil || result.Status != model.StatusOptimal {
		return report
	}

	checkCoverage(report, result, demand, cfg)
	checkDayOffDiscipline(report, result)
	checkWeekendDiscipline(report, result)
	checkMixCaps(report, result, cfg)
	checkShiftLegality(report, result)
	checkBreakAccounting(report, result)
	checkWorkerIDs(report, result)
	checkCoverageRebuild(report, result)

	report.Valid = len(report.Violations) == 0
	return report
}

// add 追加违反记录
func (r *Report) add(v Violation) {
	if v.Severity == "" {
		v.Severity = "error"
	}
	r.Violations = append(r.Violations, v)
}

// checkCoverage 覆盖充分性：每个正需求槽位 C >= R
func checkCoverage(r *Report, result *model.Result, demand *model.Matrix, cfg model.Config) {
	required := model.Required(demand, cfg.ProductivityRate)
	for d := 0; d < model.DaysPerWeek; d++ {
		for h := 0; h < model.HoursPerDay; h++ {
			if demand[d][h] > 0 && result.Coverage[d][h] < required[d][h] {
				r.add(Violation{
					Type: ViolationCoverage, Day: d, Hour: h,
					Message: fmt.Sprintf("槽位 (%d,%d) 覆盖 %d 低于需求 %d", d, h, result.Coverage[d][h], required[d][h]),
				})
			}
		}
	}
}

// checkDayOffDiscipline 休息日纪律：平日工在休息日当天不得有任何贡献
// 通过重建单人覆盖验证
func checkDayOffDiscipline(r *Report, result *model.Result) {
	for _, w := range result.Workers {
		if !w.Type.HasDayOff() {
			continue
		}
		if w.DayOff == nil {
			r.add(Violation{
				Type: ViolationDayOff, WorkerID: w.ID,
				Message: fmt.Sprintf("工人 %d (%s) 缺少休息日", w.ID, w.Type),
			})
			continue
		}
		c := roster.BuildCoverage([]*model.Worker{w})
		p := *w.DayOff
		for h := 0; h < model.HoursPerDay; h++ {
			// 休息日的贡献只允许来自前一天的跨夜小时
			if c[p][h] != 0 && h >= w.ShiftStart {
				r.add(Violation{
					Type: ViolationDayOff, WorkerID: w.ID, Day: p, Hour: h,
					Message: fmt.Sprintf("工人 %d 在休息日 %d 有同日贡献", w.ID, p),
				})
			}
		}
	}
}

// checkWeekendDiscipline 周末工纪律：WFT/WPT 只能在周六/周日出现贡献
func checkWeekendDiscipline(r *Report, result *model.Result) {
	for _, w := range result.Workers {
		if !w.Type.IsWeekender() {
			continue
		}
		c := roster.BuildCoverage([]*model.Worker{w})
		for d := 0; d < model.DaysPerWeek; d++ {
			if model.IsWeekend(d) {
				continue
			}
			for h := 0; h < model.HoursPerDay; h++ {
				if c[d][h] != 0 {
					r.add(Violation{
						Type: ViolationWeekend, WorkerID: w.ID, Day: d, Hour: h,
						Message: fmt.Sprintf("周末工 %d 在工作日 %d 有贡献", w.ID, d),
					})
				}
			}
		}
	}
}

// checkMixCaps 占比上限
// 0 < cap < 100 时按 ceil(cap·N/100) 校验；cap = 0 时对应工种必须为 0
func checkMixCaps(r *Report, result *model.Result, cfg model.Config) {
	n := result.TotalWorkers

	ptCount := result.PartTimeCount()
	switch {
	case cfg.PartTimerCapPct == 0:
		if ptCount != 0 {
			r.add(Violation{Type: ViolationMixCap, Message: fmt.Sprintf("兼职上限为 0 但雇佣了 %d 名兼职", ptCount)})
		}
	case cfg.PartTimerCapPct < 100:
		limit := (cfg.PartTimerCapPct*n + 99) / 100
		if ptCount > limit {
			r.add(Violation{Type: ViolationMixCap, Message: fmt.Sprintf("兼职 %d 超过上限 %d", ptCount, limit)})
		}
	}

	wkCount := result.WeekenderCount()
	switch {
	case cfg.WeekenderCapPct == 0:
		if wkCount != 0 {
			r.add(Violation{Type: ViolationMixCap, Message: fmt.Sprintf("周末工上限为 0 但雇佣了 %d 名周末工", wkCount)})
		}
	case cfg.WeekenderCapPct < 100:
		limit := (cfg.WeekenderCapPct*n + 99) / 100
		if wkCount > limit {
			r.add(Violation{Type: ViolationMixCap, Message: fmt.Sprintf("周末工 %d 超过上限 %d", wkCount, limit)})
		}
	}
}

// checkShiftLegality 班次合法性：开班集合与收班禁区
func checkShiftLegality(r *Report, result *model.Result) {
	inSet := func(set []int, v int) bool {
		for _, s := range set {
			if s == v {
				return true
			}
		}
		return false
	}

	for _, w := range result.Workers {
		var startOK bool
		switch w.Type {
		case model.WorkerFT:
			startOK = inSet(roster.FTStarts, w.ShiftStart)
		case model.WorkerPT:
			startOK = inSet(roster.PTStarts, w.ShiftStart)
		case model.WorkerWFT:
			startOK = inSet(roster.WFTStarts, w.ShiftStart)
		case model.WorkerWPT:
			startOK = inSet(roster.WPTStarts, w.ShiftStart)
		}
		if !startOK {
			r.add(Violation{
				Type: ViolationShiftLegality, WorkerID: w.ID,
				Message: fmt.Sprintf("工人 %d (%s) 开班 %d 不在合法集合", w.ID, w.Type, w.ShiftStart),
			})
		}

		if w.ShiftEnd != w.ShiftStart+w.Type.ShiftHours() {
			r.add(Violation{
				Type: ViolationShiftLegality, WorkerID: w.ID,
				Message: fmt.Sprintf("工人 %d 收班 %d 与班次时长不符", w.ID, w.ShiftEnd),
			})
		}

		// 收班不得落在凌晨禁区：9 小时班跨夜收班只允许 [29,32]，4 小时班最晚 24
		if w.ShiftEnd > 24 {
			if w.Type.HasBreak() {
				if w.ShiftEnd < 29 || w.ShiftEnd > 32 {
					r.add(Violation{
						Type: ViolationShiftLegality, WorkerID: w.ID,
						Message: fmt.Sprintf("工人 %d 跨夜收班 %d 落在凌晨禁区", w.ID, w.ShiftEnd),
					})
				}
			} else {
				r.add(Violation{
					Type: ViolationShiftLegality, WorkerID: w.ID,
					Message: fmt.Sprintf("工人 %d (%s) 不允许跨夜", w.ID, w.Type),
				})
			}
		}
	}
}

// checkBreakAccounting 工时核算：9 小时班 8 个有效工时，4 小时班 4 个
func checkBreakAccounting(r *Report, result *model.Result) {
	for _, w := range result.Workers {
		want := w.Type.ProductiveHourCount()
		if len(w.ProductiveHours) != want {
			r.add(Violation{
				Type: ViolationBreakHours, WorkerID: w.ID,
				Message: fmt.Sprintf("工人 %d (%s) 有效工时数 %d, 期望 %d", w.ID, w.Type, len(w.ProductiveHours), want),
			})
		}
	}
}

// checkWorkerIDs 编号唯一性：id 为 1..N 连续无重复
func checkWorkerIDs(r *Report, result *model.Result) {
	seen := make(map[int]bool, len(result.Workers))
	for _, w := range result.Workers {
		if w.ID < 1 || w.ID > len(result.Workers) || seen[w.ID] {
			r.add(Violation{
				Type: ViolationWorkerID, WorkerID: w.ID,
				Message: fmt.Sprintf("工人编号 %d 越界或重复", w.ID),
			})
			continue
		}
		seen[w.ID] = true
	}
	if len(seen) != len(result.Workers) {
		r.add(Violation{Type: ViolationWorkerID, Message: "工人编号存在缺口"})
	}
}

// checkCoverageRebuild 覆盖矩阵往返：由花名册重建的矩阵必须与报告值一致
func checkCoverageRebuild(r *Report, result *model.Result) {
	rebuilt := roster.BuildCoverage(result.Workers)
	if rebuilt != result.Coverage {
		r.add(Violation{Type: ViolationCoverageDrift, Message: "覆盖矩阵与花名册重建结果不一致"})
	}
}
