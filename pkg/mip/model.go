// Package mip 提供后端无关的混合整数规划模型表示
package mip

import (
	"fmt"
	"io"
	"strings"
)

// Sense 约束方向
type Sense string

const (
	SenseLE Sense = "<=" // 小于等于
	SenseGE Sense = ">=" // 大于等于
	SenseEQ Sense = "="  // 等于
)

// Term 线性项：系数 × 变量
type Term struct {
	Coef float64
	Var  string
}

// Constraint 线性约束行
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model 最小化型整数规划模型
// 所有变量均为下界 0、无上界的整数变量
type Model struct {
	Name        string
	Objective   []Term
	Constraints []Constraint

	vars     []string
	varIndex map[string]int
}

// NewModel 创建空模型
func NewModel(name string) *Model {
	return &Model{
		Name:     name,
		varIndex: make(map[string]int),
	}
}

// AddVar 注册变量（幂等，保持首次注册顺序）
func (m *Model) AddVar(name string) {
	if _, exists := m.varIndex[name]; exists {
		return
	}
	m.varIndex[name] = len(m.vars)
	m.vars = append(m.vars, name)
}

// HasVar 判断变量是否已注册
func (m *Model) HasVar(name string) bool {
	_, exists := m.varIndex[name]
	return exists
}

// Vars 返回变量名列表（注册顺序）
func (m *Model) Vars() []string {
	return m.vars
}

// NumVars 变量个数
func (m *Model) NumVars() int {
	return len(m.vars)
}

// AddObjectiveTerm 向目标函数追加一项
func (m *Model) AddObjectiveTerm(coef float64, name string) {
	m.AddVar(name)
	m.Objective = append(m.Objective, Term{Coef: coef, Var: name})
}

// AddConstraint 追加约束行，引用的变量自动注册
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	for _, t := range terms {
		m.AddVar(t.Var)
	}
	m.Constraints = append(m.Constraints, Constraint{
		Name:  name,
		Terms: terms,
		Sense: sense,
		RHS:   rhs,
	})
}

// WriteLP 按 LP 文本格式输出模型
// 分节顺序固定：Minimize, Subject To, Bounds, General, End
func (m *Model) WriteLP(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Minimize\n")
	b.WriteString(" obj:")
	writeTerms(&b, m.Objective)
	b.WriteString("\n")

	b.WriteString("Subject To\n")
	for _, c := range m.Constraints {
		fmt.Fprintf(&b, " %s:", c.Name)
		writeTerms(&b, c.Terms)
		fmt.Fprintf(&b, " %s %s\n", c.Sense, formatCoef(c.RHS))
	}

	b.WriteString("Bounds\n")
	for _, v := range m.vars {
		fmt.Fprintf(&b, " %s >= 0\n", v)
	}

	b.WriteString("General\n")
	for _, v := range m.vars {
		fmt.Fprintf(&b, " %s\n", v)
	}

	b.WriteString("End\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// LP 返回模型的 LP 文本
func (m *Model) LP() string {
	var b strings.Builder
	m.WriteLP(&b)
	return b.String()
}

// writeTerms 输出线性项序列，系数为 1 时省略
func writeTerms(b *strings.Builder, terms []Term) {
	for i, t := range terms {
		coef := t.Coef
		if i == 0 {
			b.WriteString(" ")
			if coef < 0 {
				b.WriteString("- ")
				coef = -coef
			}
		} else {
			if coef < 0 {
				b.WriteString(" - ")
				coef = -coef
			} else {
				b.WriteString(" + ")
			}
		}
		if coef != 1 {
			b.WriteString(formatCoef(coef))
			b.WriteString(" ")
		}
		b.WriteString(t.Var)
	}
}

// formatCoef 格式化系数，整数值不带小数点
func formatCoef(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
