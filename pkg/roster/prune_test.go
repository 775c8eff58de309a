package roster

import (
	"testing"

	"github.com/paigang/paigang/pkg/model"
)

func TestPruneZeroDemand(t *testing.T) {
	cfg := model.NewConfig(12, 30, 30, false)
	var demand model.Matrix

	active := Prune(Catalogue(cfg), &demand)
	if len(active) != 0 {
		t.Errorf("零需求下不应保留任何模板, 实际保留 %d", len(active))
	}
}

func TestPruneSingleSlot(t *testing.T) {
	cfg := model.NewConfig(12, 30, 30, false)
	var demand model.Matrix
	demand[0][10] = 12 // 周一 10:00

	active := Prune(Catalogue(cfg), &demand)
	if len(active) == 0 {
		t.Fatal("正需求槽位应保留覆盖模板")
	}

	// 保留的每个模板必须覆盖该槽位
	for _, tmpl := range active {
		if !coversSlot(tmpl, 0, 10) {
			t.Errorf("模板 %s 不覆盖周一 10:00, 不应保留", tmpl.VarName())
		}
	}

	// 周末工覆盖不到周一，必须全部被裁剪
	for _, tmpl := range active {
		if tmpl.Type.IsWeekender() {
			t.Errorf("周末工模板 %s 不应保留", tmpl.VarName())
		}
	}
}

func TestPruneOvernightWrap(t *testing.T) {
	cfg := model.NewConfig(12, 30, 30, false)
	var demand model.Matrix
	demand[0][2] = 12 // 周一凌晨 02:00

	active := Prune(Catalogue(cfg), &demand)
	if len(active) == 0 {
		t.Fatal("凌晨需求应由跨夜全职覆盖")
	}

	for _, tmpl := range active {
		if tmpl.Type != model.WorkerFT {
			t.Errorf("凌晨需求只有跨夜全职可覆盖, 不应保留 %s", tmpl.VarName())
			continue
		}
		if tmpl.StartHour < 20 {
			t.Errorf("开班 %d 的全职覆盖不到凌晨 02:00", tmpl.StartHour)
		}
	}
}

func TestCoversSlotDayOff(t *testing.T) {
	// 休息日当天不覆盖
	tmpl := model.ShiftTemplate{Type: model.WorkerFT, StartHour: 9, DayOff: 2, BreakOffset: 3}
	if coversSlot(tmpl, 2, 10) {
		t.Error("休息日当天不应覆盖任何槽位")
	}
	if !coversSlot(tmpl, 3, 10) {
		t.Error("非休息日的有效工时应覆盖")
	}
	// 休息小时（9+3=12点）不覆盖
	if coversSlot(tmpl, 3, 12) {
		t.Error("休息小时不应覆盖")
	}
}

func TestCoversSlotOvernight(t *testing.T) {
	// 周一 22 点开班的跨夜全职覆盖周二凌晨
	tmpl := model.ShiftTemplate{Type: model.WorkerFT, StartHour: 22, DayOff: 3, BreakOffset: 3}

	// 22..30 去掉 25（休息）：周二覆盖 0,2,3,4,5,6（26..30 → 2..6，24→0；25 为休息）
	if !coversSlot(tmpl, 1, 2) {
		t.Error("跨夜班应覆盖次日凌晨 02:00")
	}
	if coversSlot(tmpl, 1, 1) {
		t.Error("休息小时 25（次日 01:00）不应覆盖")
	}

	// 前一天是休息日时跨夜覆盖失效
	restTmpl := model.ShiftTemplate{Type: model.WorkerFT, StartHour: 22, DayOff: 0, BreakOffset: 3}
	if coversSlot(restTmpl, 1, 2) {
		t.Error("开班日为休息日时不应产生跨夜覆盖")
	}
}

func TestCoversSlotWeekender(t *testing.T) {
	tmpl := model.ShiftTemplate{Type: model.WorkerWFT, StartHour: 8, DayOff: model.NoDayOff, BreakOffset: 4}

	if !coversSlot(tmpl, model.Saturday, 9) {
		t.Error("周末全职应覆盖周六工时")
	}
	if coversSlot(tmpl, 2, 9) {
		t.Error("周末全职不应覆盖工作日")
	}
	// 休息小时 8+4=12
	if coversSlot(tmpl, model.Saturday, 12) {
		t.Error("周末全职的休息小时不应覆盖")
	}
}
