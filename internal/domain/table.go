package domain

// Table - сырые табличные данные источника: заголовок и строки ячеек.
// Пустая ячейка означает отсутствующее значение
type Table struct {
	Columns []string
	Rows    [][]string
}
