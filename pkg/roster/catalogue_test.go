package roster

import (
	"testing"

	"github.com/paigang/paigang/pkg/model"
)

func TestStartSetsLegality(t *testing.T) {
	// 班次不得在 00:00-04:59 开始
	for _, s := range FTStarts {
		if s >= 0 && s <= 4 {
			t.Errorf("全职开班小时 %d 落在凌晨禁区", s)
		}
		// 班次不得在 00:00-04:59 收班（24:00 整点允许）
		end := s + 9
		if end > 24 && end < 29 {
			t.Errorf("全职开班 %d 的收班 %d 落在凌晨禁区", s, end)
		}
	}

	// 16..19 开班的 9 小时班会在凌晨收班，必须被排除
	for _, s := range FTStarts {
		if s >= 16 && s <= 19 {
			t.Errorf("全职开班小时 %d 不应出现", s)
		}
	}

	for _, s := range PTStarts {
		if s < 5 || s > 20 {
			t.Errorf("兼职开班小时 %d 超出 {5..20}", s)
		}
	}

	// 周末全职不跨夜
	for _, s := range WFTStarts {
		if s < 5 || s > 15 {
			t.Errorf("周末全职开班小时 %d 超出 {5..15}", s)
		}
	}

	// 休息偏移必须是 {1..7} 的子集
	for _, b := range FTBreakOffsets {
		if b < 1 || b > 7 {
			t.Errorf("休息偏移 %d 超出合法范围", b)
		}
	}
}

func TestCatalogueCapExclusions(t *testing.T) {
	// 兼职上限为 0：PT/WPT 整体排除
	cfg := model.NewConfig(12, 0, 30, false)
	for _, tmpl := range Catalogue(cfg) {
		if tmpl.Type == model.WorkerPT || tmpl.Type == model.WorkerWPT {
			t.Fatalf("兼职上限为 0 时不应出现 %s 模板", tmpl.Type)
		}
	}

	// 周末工上限为 0：WFT/WPT 整体排除
	cfg2 := model.NewConfig(12, 30, 0, false)
	for _, tmpl := range Catalogue(cfg2) {
		if tmpl.Type == model.WorkerWFT || tmpl.Type == model.WorkerWPT {
			t.Fatalf("周末工上限为 0 时不应出现 %s 模板", tmpl.Type)
		}
	}
}

func TestCatalogueDayOffSets(t *testing.T) {
	// 默认休息日只能落在工作日
	cfg := model.NewConfig(12, 30, 30, false)
	for _, tmpl := range Catalogue(cfg) {
		if tmpl.Type.HasDayOff() && model.IsWeekend(tmpl.DayOff) {
			t.Fatalf("默认配置下 %s 模板的休息日不应落在周末", tmpl.Type)
		}
	}

	// 允许周末休息时出现周六/周日休息日模板
	cfg2 := model.NewConfig(12, 30, 30, true)
	weekendDayOff := false
	for _, tmpl := range Catalogue(cfg2) {
		if tmpl.Type.HasDayOff() && model.IsWeekend(tmpl.DayOff) {
			weekendDayOff = true
			break
		}
	}
	if !weekendDayOff {
		t.Error("允许周末休息时应枚举出周末休息日模板")
	}
}

func TestCatalogueCompleteness(t *testing.T) {
	cfg := model.NewConfig(12, 30, 30, false)
	templates := Catalogue(cfg)

	counts := make(map[model.WorkerType]int)
	for _, tmpl := range templates {
		counts[tmpl.Type]++
	}

	// FT: 15 开班 × 5 休息日 × 3 休息偏移
	if counts[model.WorkerFT] != 15*5*3 {
		t.Errorf("全职模板数期望 %d, 实际 %d", 15*5*3, counts[model.WorkerFT])
	}
	// PT: 16 × 5
	if counts[model.WorkerPT] != 16*5 {
		t.Errorf("兼职模板数期望 %d, 实际 %d", 16*5, counts[model.WorkerPT])
	}
	// WFT: 11 × 3
	if counts[model.WorkerWFT] != 11*3 {
		t.Errorf("周末全职模板数期望 %d, 实际 %d", 11*3, counts[model.WorkerWFT])
	}
	// WPT: 16
	if counts[model.WorkerWPT] != 16 {
		t.Errorf("周末兼职模板数期望 %d, 实际 %d", 16, counts[model.WorkerWPT])
	}
}
