package roster

import (
	"fmt"

	"github.com/paigang/paigang/pkg/mip"
	"github.com/paigang/paigang/pkg/model"
)

// Phase 求解阶段
type Phase int

const (
	// Phase1 最小化总人数
	Phase1 Phase = 1
	// Phase2 在总人数上限下最小化全职人数（即最大化兼职占比）
	Phase2 Phase = 2
)

// Slot 日历槽位
type Slot struct {
	Day  int
	Hour int
}

// BuildModel 构建指定阶段的整数规划模型
//
// 目标系数统一为 1（参考后端在非均匀目标系数下会破坏堆内存），
// 阶段一对全部模板变量求和，阶段二只对 FT/WFT 变量求和。
// headcount 仅阶段二使用：追加总人数上限行。
//
// 返回模型与无任何模板可覆盖的正需求槽位列表；
// 列表非空时模型必然不可行，调用方可以提前终止
func BuildModel(phase Phase, templates []model.ShiftTemplate, demand *model.Matrix, required *model.Matrix, cfg model.Config, headcount int) (*mip.Model, []Slot) {
	m := mip.NewModel(fmt.Sprintf("roster_phase%d", phase))

	// 目标函数
	for _, t := range templates {
		if phase == Phase1 || !t.Type.IsPartTime() {
			m.AddObjectiveTerm(1, t.VarName())
		} else {
			// 阶段二中兼职变量不进目标，仍需注册进模型
			m.AddVar(t.VarName())
		}
	}

	// 覆盖约束：对每个正需求槽位要求覆盖人数 >= 需求人数
	var uncovered []Slot
	for d := 0; d < model.DaysPerWeek; d++ {
		for h := 0; h < model.HoursPerDay; h++ {
			if demand[d][h] <= 0 {
				continue
			}
			var terms []mip.Term
			for _, t := range templates {
				if coversSlot(t, d, h) {
					terms = append(terms, mip.Term{Coef: 1, Var: t.VarName()})
				}
			}
			if len(terms) == 0 {
				uncovered = append(uncovered, Slot{Day: d, Hour: h})
				continue
			}
			m.AddConstraint(fmt.Sprintf("cov_d%d_h%d", d, h), terms, mip.SenseGE, float64(required[d][h]))
		}
	}

	addCapConstraints(m, templates, cfg)

	if phase == Phase2 {
		terms := make([]mip.Term, 0, len(templates))
		for _, t := range templates {
			terms = append(terms, mip.Term{Coef: 1, Var: t.VarName()})
		}
		m.AddConstraint("headcount", terms, mip.SenseLE, float64(headcount))
	}

	return m, uncovered
}

// addCapConstraints 追加工种占比上限约束
//
// 上限只在 (0,100) 开区间内有约束力；系数 ×100 缩放为整数，
// 避免小数系数。上限为 0 时对应工种在目录阶段已被整体排除，
// 此处不产生逐变量 <= 0 行
func addCapConstraints(m *mip.Model, templates []model.ShiftTemplate, cfg model.Config) {
	if cfg.PartTimerCapPct > 0 && cfg.PartTimerCapPct < 100 {
		cap := cfg.PartTimerCapPct
		var terms []mip.Term
		ptSeen, ftSeen := false, false
		for _, t := range templates {
			if t.Type.IsPartTime() {
				terms = append(terms, mip.Term{Coef: float64(100 - cap), Var: t.VarName()})
				ptSeen = true
			} else {
				terms = append(terms, mip.Term{Coef: float64(-cap), Var: t.VarName()})
				ftSeen = true
			}
		}
		// (100-cap)·Σ(PT+WPT) - cap·Σ(FT+WFT) <= 0
		if ptSeen && ftSeen {
			m.AddConstraint("cap_pt", terms, mip.SenseLE, 0)
		}
	}

	if cfg.WeekenderCapPct > 0 && cfg.WeekenderCapPct < 100 {
		cap := cfg.WeekenderCapPct
		var terms []mip.Term
		wkSeen, wdSeen := false, false
		for _, t := range templates {
			if t.Type.IsWeekender() {
				terms = append(terms, mip.Term{Coef: float64(100 - cap), Var: t.VarName()})
				wkSeen = true
			} else {
				terms = append(terms, mip.Term{Coef: float64(-cap), Var: t.VarName()})
				wdSeen = true
			}
		}
		// (100-cap)·Σ(WFT+WPT) - cap·Σ(FT+PT) <= 0
		if wkSeen && wdSeen {
			m.AddConstraint("cap_wk", terms, mip.SenseLE, 0)
		}
	}
}
