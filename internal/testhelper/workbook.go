// Package testhelper builds spreadsheet fixtures for tests.
package testhelper

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// NewWorkbook creates an xlsx file whose first sheet holds rows, the first row
// being the header. Empty strings are left unwritten so they load as missing cells.
func NewWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Fatalf("Failed to close workbook: %v", err)
		}
	})

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("Failed to build cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				t.Fatalf("Failed to set cell %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	return buf.Bytes()
}

// ColumnSuffixRows is a small export in the column-suffix layout: two
// questions, three students from two teachers.
func ColumnSuffixRows() [][]string {
	return [][]string{
		{"姓氏", "名", "教师", "班级", "试题 1", "回答1", "标准答案1", "试题2", "回答2", "标准答案2"},
		{"张", "三", "王老师", "一班", "1+1=?", "A", "A", "Capital of France?", "Paris", "Paris"},
		{"李", "四", "王老师", "二班", "1+1=?", "B", "A", "Capital of France?", "-", "Paris"},
		{"赵", "五", "刘老师", "一班", "1+1=?", "A", "A", "Capital of France?", "London", "Paris"},
	}
}

// RowScanRows is a small export in the row-scan layout: two metadata rows,
// then the "正确答案" anchor row, then the student rows.
func RowScanRows() [][]string {
	return [][]string{
		{"学号", "姓名", "第1题", "第2题", "第3题"},
		{"考试", "期中测验"},
		{"日期", "2024-05-01"},
		{"", "正确答案", "正确答案:A", "正确答案：C", "B"},
		{"1001", "张三", "A", "C", "B"},
		{"1002", "李四", "B", "- -", "B"},
		{"1003", "王五", "A", "D", ""},
	}
}
