package model

// Matrix 7×24 稠密非负整数矩阵
// 用于表示需求（单/小时）、需求人数和覆盖人数
type Matrix [DaysPerWeek][HoursPerDay]int

// At 返回 (day, hour) 槽位的值，越界返回 0
func (m *Matrix) At(day, hour int) int {
	if !ValidDay(day) || !ValidHour(hour) {
		return 0
	}
	return m[day][hour]
}

// IsZero 判断矩阵是否全零
func (m *Matrix) IsZero() bool {
	for d := 0; d < DaysPerWeek; d++ {
		for h := 0; h < HoursPerDay; h++ {
			if m[d][h] != 0 {
				return false
			}
		}
	}
	return true
}

// HasNegative 判断矩阵是否包含负值
func (m *Matrix) HasNegative() bool {
	for d := 0; d < DaysPerWeek; d++ {
		for h := 0; h < HoursPerDay; h++ {
			if m[d][h] < 0 {
				return true
			}
		}
	}
	return false
}

// Total 返回矩阵所有槽位之和
func (m *Matrix) Total() int {
	sum := 0
	for d := 0; d < DaysPerWeek; d++ {
		for h := 0; h < HoursPerDay; h++ {
			sum += m[d][h]
		}
	}
	return sum
}

// Rows 转换为嵌套切片（JSON 序列化用）
func (m *Matrix) Rows() [][]int {
	rows := make([][]int, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		row := make([]int, HoursPerDay)
		copy(row, m[d][:])
		rows[d] = row
	}
	return rows
}

// MatrixFromRows 从嵌套切片构建矩阵
// 行数必须为 7，列数必须为 24
func MatrixFromRows(rows [][]int) (Matrix, bool) {
	var m Matrix
	if len(rows) != DaysPerWeek {
		return m, false
	}
	for d, row := range rows {
		if len(row) != HoursPerDay {
			return m, false
		}
		copy(m[d][:], row)
	}
	return m, true
}

// Required 根据生产率计算需求人数矩阵
// R[d][h] = ceil(D[d][h] / rate)，需求为 0 时结果为 0
func Required(demand *Matrix, rate int) Matrix {
	var r Matrix
	if rate <= 0 {
		return r
	}
	for d := 0; d < DaysPerWeek; d++ {
		for h := 0; h < HoursPerDay; h++ {
			if demand[d][h] > 0 {
				r[d][h] = (demand[d][h] + rate - 1) / rate
			}
		}
	}
	return r
}
