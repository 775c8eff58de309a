// Package glpsol 提供基于 glpsol 命令行的黑盒求解器后端
// 耦合方式为标准 LP 文本输入、纯文本解报告输出，
// HiGHS/CBC 等命令行求解器可按相同方式接入
package glpsol

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/paigang/paigang/pkg/mip"
)

// Solver glpsol 子进程求解器
type Solver struct {
	// Path glpsol 可执行文件路径，空则从 PATH 查找
	Path string

	// TimeLimit 求解时间上限，0 表示不限
	TimeLimit time.Duration
}

// New 创建 glpsol 求解器
func New() *Solver {
	return &Solver{}
}

// Name 返回求解器名称
func (s *Solver) Name() string {
	return "glpsol"
}

// Solve 将模型渲染为 LP 文本，调用 glpsol 并解析解报告
func (s *Solver) Solve(ctx context.Context, m *mip.Model) (*mip.Solution, error) {
	if m.NumVars() == 0 {
		return &mip.Solution{Status: mip.StatusOptimal, Values: map[string]float64{}}, nil
	}

	dir, err := os.MkdirTemp("", "paigang-lp-")
	if err != nil {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer os.RemoveAll(dir)

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")

	f, err := os.Create(lpPath)
	if err != nil {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("写入模型文件失败: %w", err)
	}
	if err := m.WriteLP(f); err != nil {
		f.Close()
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("渲染 LP 文本失败: %w", err)
	}
	if err := f.Close(); err != nil {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("关闭模型文件失败: %w", err)
	}

	bin := s.Path
	if bin == "" {
		bin = "glpsol"
	}
	args := []string{"--lp", lpPath, "-o", solPath}
	if s.TimeLimit > 0 {
		args = append(args, "--tmlim", strconv.Itoa(int(s.TimeLimit.Seconds())))
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &mip.Solution{Status: mip.StatusError},
			fmt.Errorf("glpsol 执行失败: %w: %s", err, truncate(string(out), 200))
	}

	// 不可行时 glpsol 正常退出，结论在标准输出里
	stdout := string(out)
	if strings.Contains(stdout, "HAS NO PRIMAL FEASIBLE SOLUTION") ||
		strings.Contains(stdout, "HAS NO INTEGER FEASIBLE SOLUTION") {
		return &mip.Solution{Status: mip.StatusInfeasible, Values: map[string]float64{}}, nil
	}
	if strings.Contains(stdout, "TIME LIMIT EXCEEDED") {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("glpsol 求解超时")
	}

	report, err := os.ReadFile(solPath)
	if err != nil {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("读取解报告失败: %w", err)
	}

	return ParseReport(string(report), m)
}

// ParseReport 解析 glpsol 的纯文本解报告
func ParseReport(report string, m *mip.Model) (*mip.Solution, error) {
	known := make(map[string]bool, m.NumVars())
	for _, v := range m.Vars() {
		known[v] = true
	}

	sol := &mip.Solution{Values: make(map[string]float64, m.NumVars())}

	lines := strings.Split(report, "\n")
	inColumns := false
	pendingVar := ""

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "Status:") {
			status := strings.TrimSpace(strings.TrimPrefix(trimmed, "Status:"))
			switch {
			case strings.Contains(status, "OPTIMAL"):
				sol.Status = mip.StatusOptimal
			case strings.Contains(status, "EMPTY"):
				sol.Status = mip.StatusInfeasible
			default:
				sol.Status = mip.StatusError
			}
			continue
		}

		if strings.HasPrefix(trimmed, "Objective:") {
			// 形如 "Objective:  obj = 12 (MINimum)"
			fields := strings.Fields(trimmed)
			for i, f := range fields {
				if f == "=" && i+1 < len(fields) {
					if v, err := strconv.ParseFloat(fields[i+1], 64); err == nil {
						sol.Objective = v
					}
				}
			}
			continue
		}

		if strings.Contains(line, "Column name") {
			inColumns = true
			continue
		}
		if !inColumns {
			continue
		}
		if trimmed == "" {
			// 列节以空行结束（已解析到变量时）
			if len(sol.Values) > 0 {
				inColumns = false
			}
			continue
		}

		fields := strings.Fields(trimmed)

		// 长变量名会换行：名称独占一行，取值在下一行
		if pendingVar != "" {
			if v, err := parseActivity(fields, 0); err == nil {
				sol.Values[pendingVar] = v
			}
			pendingVar = ""
			continue
		}

		for i, f := range fields {
			if !known[f] {
				continue
			}
			if v, err := parseActivity(fields, i+1); err == nil {
				sol.Values[f] = v
			} else {
				pendingVar = f
			}
			break
		}
	}

	if sol.Status == "" {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("解报告缺少 Status 行")
	}
	return sol, nil
}

// parseActivity 从字段序列中取出变量取值
// 整数列的报告行形如 "1 xFT_5_0_3 * 2 0" 或不带星号
func parseActivity(fields []string, from int) (float64, error) {
	for i := from; i < len(fields); i++ {
		if fields[i] == "*" {
			continue
		}
		return strconv.ParseFloat(fields[i], 64)
	}
	return 0, fmt.Errorf("行内无取值字段")
}

// truncate 截断长输出
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
