// Package model 定义拣货排班引擎的核心数据模型
package model

// 周历模型：一周7天，周一=0，周日=6；每天24个小时槽位
const (
	DaysPerWeek = 7
	HoursPerDay = 24

	// RawHourLimit 原始小时上限：h_raw >= 24 表示跨入次日的小时
	RawHourLimit = 32

	Saturday = 5
	Sunday   = 6
)

// IsWeekend 判断是否为周末（周六/周日）
func IsWeekend(day int) bool {
	return day == Saturday || day == Sunday
}

// NextDay 返回下一个日历日（周日的下一天是周一）
func NextDay(day int) int {
	return (day + 1) % DaysPerWeek
}

// PrevDay 返回上一个日历日
func PrevDay(day int) int {
	return (day + DaysPerWeek - 1) % DaysPerWeek
}

// ValidDay 判断日索引是否合法
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// ValidHour 判断小时索引是否合法
func ValidHour(hour int) bool {
	return hour >= 0 && hour < HoursPerDay
}
