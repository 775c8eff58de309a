// Package glpksolver 提供基于 GLPK 的整数规划求解器后端
package glpksolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/paigang/paigang/pkg/mip"
)

// Solver GLPK 进程内求解器
// 每次 Solve 创建并销毁独立的 glpk.Prob，调用之间无共享状态
type Solver struct{}

// New 创建 GLPK 求解器
func New() *Solver {
	return &Solver{}
}

// Name 返回求解器名称
func (s *Solver) Name() string {
	return "glpk"
}

// Solve 求解整数规划模型
func (s *Solver) Solve(ctx context.Context, m *mip.Model) (*mip.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lp := glpk.New()
	defer lp.Delete()

	lp.SetProbName(m.Name)
	lp.SetObjDir(glpk.ObjDir(glpk.MIN))

	// 变量列：整数、下界 0、无上界
	vars := m.Vars()
	if len(vars) == 0 {
		return &mip.Solution{Status: mip.StatusOptimal, Values: map[string]float64{}}, nil
	}
	lp.AddCols(len(vars))
	colOf := make(map[string]int32, len(vars))
	for i, v := range vars {
		j := i + 1
		lp.SetColName(j, v)
		lp.SetColKind(j, glpk.VarType(glpk.IV))
		lp.SetColBnds(j, glpk.BndsType(glpk.LO), 0.0, 0.0)
		colOf[v] = int32(j)
	}

	// 目标函数（同名变量的系数累加）
	objCoef := make(map[string]float64)
	for _, t := range m.Objective {
		objCoef[t.Var] += t.Coef
	}
	for v, coef := range objCoef {
		lp.SetObjCoef(int(colOf[v]), coef)
	}

	// 约束行
	if len(m.Constraints) > 0 {
		lp.AddRows(len(m.Constraints))
	}
	for i, c := range m.Constraints {
		r := i + 1
		lp.SetRowName(r, c.Name)
		switch c.Sense {
		case mip.SenseGE:
			lp.SetRowBnds(r, glpk.BndsType(glpk.LO), c.RHS, 0.0)
		case mip.SenseLE:
			lp.SetRowBnds(r, glpk.BndsType(glpk.UP), 0.0, c.RHS)
		default:
			lp.SetRowBnds(r, glpk.BndsType(glpk.FX), c.RHS, c.RHS)
		}

		rowCoef := make(map[string]float64, len(c.Terms))
		for _, t := range c.Terms {
			rowCoef[t.Var] += t.Coef
		}
		ind := make([]int32, 0, len(rowCoef))
		val := make([]float64, 0, len(rowCoef))
		for v, coef := range rowCoef {
			ind = append(ind, colOf[v])
			val = append(val, coef)
		}
		lp.SetMatRow(r, ind, val)
	}

	// 先解 LP 松弛，再做分支定界
	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))
	if err := lp.Simplex(smcp); err != nil {
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("单纯形求解失败: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glpk.MsgLev(glpk.MSG_ERR))
	if err := lp.Intopt(iocp); err != nil {
		// GLPK 对不可行模型以错误形式报告
		if strings.Contains(err.Error(), "no primal feasible") || strings.Contains(err.Error(), "NOPFS") {
			return &mip.Solution{Status: mip.StatusInfeasible, Values: map[string]float64{}}, nil
		}
		return &mip.Solution{Status: mip.StatusError}, fmt.Errorf("整数求解失败: %w", err)
	}

	switch status := lp.MipStatus(); status {
	case glpk.OPT, glpk.FEAS:
		values := make(map[string]float64, len(vars))
		for i, v := range vars {
			values[v] = lp.MipColVal(i + 1)
		}
		return &mip.Solution{
			Status:    mip.StatusOptimal,
			Objective: lp.MipObjVal(),
			Values:    values,
		}, nil
	case glpk.NOFEAS:
		return &mip.Solution{Status: mip.StatusInfeasible, Values: map[string]float64{}}, nil
	default:
		return &mip.Solution{Status: mip.StatusError, Values: map[string]float64{}},
			fmt.Errorf("GLPK 返回未知状态: %v", status)
	}
}
