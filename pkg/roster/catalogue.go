// Package roster 实现拣货排班优化引擎
//
// 引擎是一个五阶段的单趟流水线：
// 班次目录枚举 → 变量裁剪 → 模型构建 → 两阶段求解 → 花名册还原。
// 外部 MIP 求解器作为黑盒能力被消费。
package roster

import "github.com/paigang/paigang/pkg/model"

// 开班小时合法集合
// 班次不得在 00:00-04:59 之间开始或结束（24:00 整点允许）
var (
	// FTStarts 全职开班小时：{5..15} ∪ {20..23}，16..19 会落在凌晨收班被排除
	FTStarts = []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 20, 21, 22, 23}

	// PTStarts 兼职开班小时：{5..20}
	PTStarts = []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	// WFTStarts 周末全职开班小时：{5..15}，不跨夜以免溢出到周一
	WFTStarts = []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	// WPTStarts 周末兼职开班小时，同 PT
	WPTStarts = PTStarts

	// FTBreakOffsets 9小时班内可选的休息偏移
	FTBreakOffsets = []int{3, 4, 5}
)

// Catalogue 枚举全部可纳入模型的班次模板（裁剪前的全集）
// 占比上限为 0 的工种被整体排除：
// 兼职上限为 0 排除 PT/WPT，周末工上限为 0 排除 WFT/WPT
func Catalogue(cfg model.Config) []model.ShiftTemplate {
	dayOffs := cfg.DayOffDays()
	usePT := cfg.AllowPartTime()
	useWFT := cfg.AllowWeekender()
	useWPT := usePT && useWFT

	var templates []model.ShiftTemplate

	for _, s := range FTStarts {
		for _, p := range dayOffs {
			for _, b := range FTBreakOffsets {
				templates = append(templates, model.ShiftTemplate{
					Type: model.WorkerFT, StartHour: s, DayOff: p, BreakOffset: b,
				})
			}
		}
	}

	if usePT {
		for _, s := range PTStarts {
			for _, p := range dayOffs {
				templates = append(templates, model.ShiftTemplate{
					Type: model.WorkerPT, StartHour: s, DayOff: p,
				})
			}
		}
	}

	if useWFT {
		for _, s := range WFTStarts {
			for _, b := range FTBreakOffsets {
				templates = append(templates, model.ShiftTemplate{
					Type: model.WorkerWFT, StartHour: s, DayOff: model.NoDayOff, BreakOffset: b,
				})
			}
		}
	}

	if useWPT {
		for _, s := range WPTStarts {
			templates = append(templates, model.ShiftTemplate{
				Type: model.WorkerWPT, StartHour: s, DayOff: model.NoDayOff,
			})
		}
	}

	return templates
}
