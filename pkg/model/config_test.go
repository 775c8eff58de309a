package model

import "testing"

func TestRoundPct(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{30, 30},
		{30.4, 30},
		{30.5, 31}, // 0.5 进位
		{0, 0},
		{99.9, 100},
	}
	for _, c := range cases {
		if got := RoundPct(c.in); got != c.want {
			t.Errorf("RoundPct(%v) 期望 %d, 实际 %d", c.in, c.want, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(12, 30, 30, false)
	if err := cfg.Validate(); err != nil {
		t.Errorf("合法配置不应报错: %v", err)
	}

	bad := NewConfig(0, 30, 30, false)
	if err := bad.Validate(); err == nil {
		t.Error("生产率为 0 应校验失败")
	}

	bad2 := Config{ProductivityRate: 12, PartTimerCapPct: 101}
	if err := bad2.Validate(); err == nil {
		t.Error("百分比超过 100 应校验失败")
	}
}

func TestConfigDayOffDays(t *testing.T) {
	cfg := NewConfig(12, 30, 30, false)
	if len(cfg.DayOffDays()) != 5 {
		t.Errorf("默认休息日集合应为工作日 5 天, 实际 %d", len(cfg.DayOffDays()))
	}

	cfg2 := NewConfig(12, 30, 30, true)
	if len(cfg2.DayOffDays()) != 7 {
		t.Errorf("允许周末休息时集合应为 7 天, 实际 %d", len(cfg2.DayOffDays()))
	}
}

func TestConfigCapSwitches(t *testing.T) {
	cfg := NewConfig(12, 0, 50, false)
	if cfg.AllowPartTime() {
		t.Error("兼职上限为 0 时不应允许兼职")
	}
	if !cfg.AllowWeekender() {
		t.Error("周末工上限为 50 时应允许周末工")
	}
}
