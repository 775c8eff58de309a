package model

import (
	"fmt"
	"math"
)

// Config 排班引擎配置
type Config struct {
	// ProductivityRate 生产率：每个拣货员每个有效工时可处理的订单数
	ProductivityRate int `json:"productivityRate"`

	// PartTimerCapPct 兼职占比上限（PT+WPT 占总人数的百分比，0-100）
	PartTimerCapPct int `json:"partTimerCapPct"`

	// WeekenderCapPct 周末工占比上限（WFT+WPT 占总人数的百分比，0-100）
	WeekenderCapPct int `json:"weekenderCapPct"`

	// AllowWeekendDayOff 是否允许平日工把休息日安排在周六/周日
	AllowWeekendDayOff bool `json:"allowWeekendDayOff"`
}

// RoundPct 百分比取整（四舍五入，0.5 进位）
func RoundPct(pct float64) int {
	return int(math.Floor(pct + 0.5))
}

// NewConfig 从原始输入构建配置，百分比按四舍五入取整
func NewConfig(rate int, ptCapPct, wkCapPct float64, allowWeekendDayOff bool) Config {
	return Config{
		ProductivityRate:   rate,
		PartTimerCapPct:    RoundPct(ptCapPct),
		WeekenderCapPct:    RoundPct(wkCapPct),
		AllowWeekendDayOff: allowWeekendDayOff,
	}
}

// Validate 校验配置合法性
func (c Config) Validate() error {
	if c.ProductivityRate <= 0 {
		return fmt.Errorf("生产率必须为正整数, 当前为 %d", c.ProductivityRate)
	}
	if c.PartTimerCapPct < 0 || c.PartTimerCapPct > 100 {
		return fmt.Errorf("兼职占比上限必须在 [0,100] 之间, 当前为 %d", c.PartTimerCapPct)
	}
	if c.WeekenderCapPct < 0 || c.WeekenderCapPct > 100 {
		return fmt.Errorf("周末工占比上限必须在 [0,100] 之间, 当前为 %d", c.WeekenderCapPct)
	}
	return nil
}

// AllowPartTime 是否允许雇佣兼职（PT/WPT）
func (c Config) AllowPartTime() bool {
	return c.PartTimerCapPct > 0
}

// AllowWeekender 是否允许雇佣周末工（WFT/WPT）
func (c Config) AllowWeekender() bool {
	return c.WeekenderCapPct > 0
}

// DayOffDays 可选休息日集合
func (c Config) DayOffDays() []int {
	if c.AllowWeekendDayOff {
		return []int{0, 1, 2, 3, 4, 5, 6}
	}
	return []int{0, 1, 2, 3, 4}
}
