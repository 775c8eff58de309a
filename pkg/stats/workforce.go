// Package stats 提供排班结果的统计分析功能
package stats

import (
	"github.com/paigang/paigang/pkg/model"
)

// TypeBreakdown 单工种统计
type TypeBreakdown struct {
	Count                 int     `json:"count"`
	SharePct              float64 `json:"share_pct"`
	WeeklyProductiveHours int     `json:"weekly_productive_hours"`
}

// SlotSurplus 过剩覆盖槽位
type SlotSurplus struct {
	Day      int `json:"day"`
	Hour     int `json:"hour"`
	Required int `json:"required"`
	Covered  int `json:"covered"`
	Surplus  int `json:"surplus"`
}

// WorkforceMetrics 人力结构指标
type WorkforceMetrics struct {
	TotalWorkers int `json:"total_workers"`

	// 按工种统计
	ByType map[model.WorkerType]TypeBreakdown `json:"by_type"`

	// 占比
	PartTimeSharePct  float64 `json:"part_time_share_pct"`
	WeekenderSharePct float64 `json:"weekender_share_pct"`

	// 周工时核算（有效工时即有薪工时，休息无薪）
	WeeklyProductiveHours int `json:"weekly_productive_hours"`

	// 需求满足度与过剩
	DemandSatisfactionPct float64       `json:"demand_satisfaction_pct"`
	SlackHours            int           `json:"slack_hours"`
	Overstaffed           []SlotSurplus `json:"overstaffed,omitempty"`
}

// WeeklyCost 按小时工资推导周人力成本（仅作报表指标，不参与优化）
func (m *WorkforceMetrics) WeeklyCost(hourlyRate float64) float64 {
	return float64(m.WeeklyProductiveHours) * hourlyRate
}

// WorkforceAnalyzer 人力结构分析器
type WorkforceAnalyzer struct{}

// NewWorkforceAnalyzer 创建人力结构分析器
func NewWorkforceAnalyzer() *WorkforceAnalyzer {
	return &WorkforceAnalyzer{}
}

// weeklyProductiveHours 单个工人的周有效工时
func weeklyProductiveHours(t model.WorkerType) int {
	activeDays := 6
	if t.IsWeekender() {
		activeDays = 2
	}
	return t.ProductiveHourCount() * activeDays
}

// Analyze 分析排班结果的人力结构
func (a *WorkforceAnalyzer) Analyze(result *model.Result, demand *model.Matrix, cfg model.Config) *WorkforceMetrics {
	metrics := &WorkforceMetrics{
		ByType: make(map[model.WorkerType]TypeBreakdown, 4),
	}
	if result == nil {
		return metrics
	}

	metrics.TotalWorkers = result.TotalWorkers

	for _, t := range []model.WorkerType{model.WorkerFT, model.WorkerPT, model.WorkerWFT, model.WorkerWPT} {
		count := result.CountByType(t)
		share := 0.0
		if result.TotalWorkers > 0 {
			share = float64(count) / float64(result.TotalWorkers) * 100
		}
		hours := count * weeklyProductiveHours(t)
		metrics.ByType[t] = TypeBreakdown{
			Count:                 count,
			SharePct:              share,
			WeeklyProductiveHours: hours,
		}
		metrics.WeeklyProductiveHours += hours
	}

	if result.TotalWorkers > 0 {
		metrics.PartTimeSharePct = float64(result.PartTimeCount()) / float64(result.TotalWorkers) * 100
		metrics.WeekenderSharePct = float64(result.WeekenderCount()) / float64(result.TotalWorkers) * 100
	}

	// 需求满足度：按槽位截断的覆盖 / 需求
	required := model.Required(demand, cfg.ProductivityRate)
	totalRequired := 0
	totalSatisfied := 0
	for d := 0; d < model.DaysPerWeek; d++ {
		for h := 0; h < model.HoursPerDay; h++ {
			req := required[d][h]
			cov := result.Coverage[d][h]

			if req > 0 {
				totalRequired += req
				if cov >= req {
					totalSatisfied += req
				} else {
					totalSatisfied += cov
				}
			}

			if cov > req {
				metrics.SlackHours += cov - req
				if req > 0 {
					metrics.Overstaffed = append(metrics.Overstaffed, SlotSurplus{
						Day: d, Hour: h, Required: req, Covered: cov, Surplus: cov - req,
					})
				}
			}
		}
	}

	if totalRequired > 0 {
		metrics.DemandSatisfactionPct = float64(totalSatisfied) / float64(totalRequired) * 100
	} else {
		metrics.DemandSatisfactionPct = 100
	}

	return metrics
}
