package roster

import (
	"math"
	"sort"

	"github.com/paigang/paigang/pkg/mip"
	"github.com/paigang/paigang/pkg/model"
)

// ClampCount 把原始变量值转换为人数：四舍五入并在 0 处截断
// 数值异常（负值、非整数）按此规则消化
func ClampCount(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}

// Reify 把原始解展开为具体工人记录
// 同一模板下的 k 个工人获得连续递增的 id（全局从 1 开始），
// 展开顺序跟随模板目录顺序，保证同输入同输出
func Reify(templates []model.ShiftTemplate, sol *mip.Solution) []*model.Worker {
	var workers []*model.Worker
	id := 1

	for _, t := range templates {
		count := ClampCount(sol.Value(t.VarName()))
		if count == 0 {
			continue
		}

		hours := t.ClockProductiveHours()
		sort.Ints(hours)

		var dayOff *int
		if t.Type.HasDayOff() {
			p := t.DayOff
			dayOff = &p
		}

		for i := 0; i < count; i++ {
			productive := make([]int, len(hours))
			copy(productive, hours)

			workers = append(workers, &model.Worker{
				ID:              id,
				Type:            t.Type,
				ShiftStart:      t.StartHour,
				ShiftEnd:        t.StartHour + t.Type.ShiftHours(),
				DayOff:          dayOff,
				ProductiveHours: productive,
			})
			id++
		}
	}

	return workers
}

// BuildCoverage 从工人记录重建覆盖矩阵
//
// 有效工时以钟点形式（mod 24）存储，归属规则：
// h >= shiftStart 归当天，h < shiftStart 只可能出现在跨夜班
// （开班 >= 20），归次日
func BuildCoverage(workers []*model.Worker) model.Matrix {
	var c model.Matrix
	for _, w := range workers {
		for _, d := range w.ActiveDays() {
			for _, h := range w.ProductiveHours {
				if !model.ValidHour(h) {
					continue
				}
				if h < w.ShiftStart {
					c[model.NextDay(d)][h]++
				} else {
					c[d][h]++
				}
			}
		}
	}
	return c
}

// CountByType 按工种统计工人数
func CountByType(workers []*model.Worker) map[model.WorkerType]int {
	counts := make(map[model.WorkerType]int, 4)
	for _, w := range workers {
		counts[w.Type]++
	}
	return counts
}
