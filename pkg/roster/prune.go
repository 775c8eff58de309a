package roster

import "github.com/paigang/paigang/pkg/model"

// Prune 裁剪无效模板：只保留至少能覆盖一个正需求槽位的模板
// 零贡献模板在任何最优解中必然取 0，裁剪可显著缩小模型
func Prune(templates []model.ShiftTemplate, demand *model.Matrix) []model.ShiftTemplate {
	active := make([]model.ShiftTemplate, 0, len(templates))
	for _, t := range templates {
		if templateActive(t, demand) {
			active = append(active, t)
		}
	}
	return active
}

// templateActive 判断模板是否覆盖至少一个正需求槽位
func templateActive(t model.ShiftTemplate, demand *model.Matrix) bool {
	raw := t.RawProductiveHours()

	if t.Type.IsWeekender() {
		// 周末工只看周六/周日，WFT/WPT 均不跨夜
		for _, d := range []int{model.Saturday, model.Sunday} {
			for _, h := range raw {
				if h < model.HoursPerDay && demand[d][h] > 0 {
					return true
				}
			}
		}
		return false
	}

	for d := 0; d < model.DaysPerWeek; d++ {
		if d == t.DayOff {
			continue
		}
		for _, h := range raw {
			if h < model.HoursPerDay {
				if demand[d][h] > 0 {
					return true
				}
			} else {
				// 跨夜小时归属次日（次日即便是休息日也不影响：
				// 休息日只约束当天不开班）
				if demand[model.NextDay(d)][h-model.HoursPerDay] > 0 {
					return true
				}
			}
		}
	}
	return false
}

// coversSlot 判断模板是否覆盖 (day, hour) 槽位
// 覆盖条件：当天出勤且小时在同日有效工时中，
// 或前一天出勤的跨夜班其原始工时包含 hour+24
func coversSlot(t model.ShiftTemplate, day, hour int) bool {
	raw := t.RawProductiveHours()

	if t.Type.IsWeekender() {
		if day != model.Saturday && day != model.Sunday {
			return false
		}
		for _, h := range raw {
			if h == hour {
				return true
			}
		}
		return false
	}

	// 同日覆盖
	if day != t.DayOff {
		for _, h := range raw {
			if h == hour {
				return true
			}
		}
	}

	// 跨夜覆盖：班次开在前一天
	if t.Overnight() {
		prev := model.PrevDay(day)
		if prev != t.DayOff {
			for _, h := range raw {
				if h == hour+model.HoursPerDay {
					return true
				}
			}
		}
	}

	return false
}
