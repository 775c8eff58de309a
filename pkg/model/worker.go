package model

import "fmt"

// WorkerType 工种（封闭枚举）
type WorkerType string

const (
	WorkerFT  WorkerType = "FT"  // 全职：9小时班（含1小时无薪休息），每周固定休息一天
	WorkerPT  WorkerType = "PT"  // 兼职：连续4小时班，无休息，每周固定休息一天
	WorkerWFT WorkerType = "WFT" // 周末全职：仅周六/周日出勤的9小时班
	WorkerWPT WorkerType = "WPT" // 周末兼职：仅周六/周日出勤的4小时班
)

// NoDayOff 表示无休息日（周末工不持有休息日）
const NoDayOff = -1

// ShiftHours 班次总时长（小时）
func (t WorkerType) ShiftHours() int {
	switch t {
	case WorkerFT, WorkerWFT:
		return 9
	default:
		return 4
	}
}

// ProductiveHourCount 有效工时数（扣除休息）
func (t WorkerType) ProductiveHourCount() int {
	switch t {
	case WorkerFT, WorkerWFT:
		return 8
	default:
		return 4
	}
}

// HasBreak 是否持有1小时休息（仅9小时班）
func (t WorkerType) HasBreak() bool {
	return t == WorkerFT || t == WorkerWFT
}

// HasDayOff 是否持有每周休息日（周末工没有）
func (t WorkerType) HasDayOff() bool {
	return t == WorkerFT || t == WorkerPT
}

// IsPartTime 是否计入兼职占比（PT/WPT）
func (t WorkerType) IsPartTime() bool {
	return t == WorkerPT || t == WorkerWPT
}

// IsWeekender 是否计入周末工占比（WFT/WPT）
func (t WorkerType) IsWeekender() bool {
	return t == WorkerWFT || t == WorkerWPT
}

// Valid 判断工种是否合法
func (t WorkerType) Valid() bool {
	switch t {
	case WorkerFT, WorkerPT, WorkerWFT, WorkerWPT:
		return true
	}
	return false
}

// ShiftTemplate 班次模板：由优化器选择的排班等价类
// 同一模板下的工人完全可互换，解为每个模板的整数人数
// 字段仅在工种需要时有意义：DayOff 对 WFT/WPT 为 NoDayOff，
// BreakOffset 仅对 9 小时班有意义
type ShiftTemplate struct {
	Type        WorkerType `json:"type"`
	StartHour   int        `json:"startHour"`   // 开班小时（0-23）
	DayOff      int        `json:"dayOff"`      // 每周休息日（0-6），周末工为 NoDayOff
	BreakOffset int        `json:"breakOffset"` // 休息小时在9小时班内的偏移
}

// VarName 返回模板对应的 MIP 变量名
// 命名方案 x{TYPE}_{start}_{dayOff?}_{break?}，可选成分仅在工种需要时出现
func (t ShiftTemplate) VarName() string {
	switch t.Type {
	case WorkerFT:
		return fmt.Sprintf("xFT_%d_%d_%d", t.StartHour, t.DayOff, t.BreakOffset)
	case WorkerPT:
		return fmt.Sprintf("xPT_%d_%d", t.StartHour, t.DayOff)
	case WorkerWFT:
		return fmt.Sprintf("xWFT_%d_%d", t.StartHour, t.BreakOffset)
	default:
		return fmt.Sprintf("xWPT_%d", t.StartHour)
	}
}

// RawProductiveHours 返回模板的原始有效工时列表（可能 >= 24，表示跨入次日）
// 9 小时班扣除休息小时，4 小时班全部有效
func (t ShiftTemplate) RawProductiveHours() []int {
	if t.Type.HasBreak() {
		hours := make([]int, 0, 8)
		for i := 0; i < 9; i++ {
			if i == t.BreakOffset {
				continue
			}
			hours = append(hours, t.StartHour+i)
		}
		return hours
	}
	return []int{t.StartHour, t.StartHour + 1, t.StartHour + 2, t.StartHour + 3}
}

// ClockProductiveHours 返回钟点形式（mod 24）的有效工时列表
func (t ShiftTemplate) ClockProductiveHours() []int {
	raw := t.RawProductiveHours()
	hours := make([]int, len(raw))
	for i, h := range raw {
		hours[i] = h % HoursPerDay
	}
	return hours
}

// Overnight 是否为跨夜班（仅开班 >= 20 的 FT 可能跨夜）
func (t ShiftTemplate) Overnight() bool {
	return t.StartHour+t.Type.ShiftHours() > HoursPerDay
}

// ActiveDays 模板覆盖的出勤日集合
func (t ShiftTemplate) ActiveDays() []int {
	if t.Type.IsWeekender() {
		return []int{Saturday, Sunday}
	}
	days := make([]int, 0, 6)
	for d := 0; d < DaysPerWeek; d++ {
		if d != t.DayOff {
			days = append(days, d)
		}
	}
	return days
}

// Worker 排班结果中的单个工人记录
type Worker struct {
	ID         int        `json:"id"`
	Type       WorkerType `json:"type"`
	ShiftStart int        `json:"shiftStart"`
	ShiftEnd   int        `json:"shiftEnd"` // start + 班次时长，可能超过 24
	DayOff     *int       `json:"dayOff"`   // 周末工为 null

	// ProductiveHours 钟点形式（mod 24）的有效工时
	// 跨夜班中数值小于 shiftStart 的小时归属于次日
	ProductiveHours []int `json:"productiveHours"`
}

// ActiveDays 工人的出勤日集合
func (w *Worker) ActiveDays() []int {
	if w.Type.IsWeekender() {
		return []int{Saturday, Sunday}
	}
	days := make([]int, 0, 6)
	for d := 0; d < DaysPerWeek; d++ {
		if w.DayOff != nil && d == *w.DayOff {
			continue
		}
		days = append(days, d)
	}
	return days
}
