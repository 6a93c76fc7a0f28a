package dataset

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const salesCSV = `region,month,revenue,units,active
North,Jan,1200.5,10,true
South,Jan,980,8,false
North,Feb,,12,TRUE
East,Feb,1500,NA,false
`

func TestReadCSVInfersKinds(t *testing.T) {
	f, err := Load("sales.csv", strings.NewReader(salesCSV))
	require.NoError(t, err)

	assert.Equal(t, "sales.csv", f.Name)
	assert.Equal(t, []string{"region", "month", "revenue", "units", "active"}, f.ColumnNames())
	assert.Equal(t, []string{"revenue", "units"}, f.NumericColumns())
	assert.Equal(t, KindBool, f.Columns[4].Kind)
	assert.Equal(t, KindText, f.Columns[0].Kind)
	assert.Len(t, f.Rows, 4)
}

func TestReadCSVPadsShortRows(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("a,b,c\n1,2\n3,4,5\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", ""}, f.Rows[0])
	assert.Equal(t, []string{"a", "b", "c"}, f.NumericColumns())
}

func TestReadCSVRejectsLongRows(t *testing.T) {
	_, err := ReadCSV("x.csv", strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 fields in line 2, saw 3")
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV("x.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Rows)
	assert.Empty(t, f.NumericColumns())
	assert.Equal(t, []string{"a", "b"}, f.ColumnNames())
}

func TestReadCSVRejectsBinary(t *testing.T) {
	_, err := ReadCSV("x.csv", bytes.NewReader([]byte{0xff, 0xfe, 0x00, 0x81}))
	require.Error(t, err)
}

func TestReadCSVStripsBOM(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("\xef\xbb\xbfid,v\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "id", f.Columns[0].Name)
}

func TestHeaderNormalisation(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("a,,a,a,a.1\n1,2,3,4,5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2", "a.1.1"}, f.ColumnNames())
}

func TestAllEmptyColumnIsNumeric(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("name,score\nann,\nbob,\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, f.NumericColumns())
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("notes.txt", strings.NewReader("a,b"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestHeadAndSummary(t *testing.T) {
	var b strings.Builder
	b.WriteString("n,label\n")
	for i := 0; i < 25; i++ {
		b.WriteString("1,x\n")
	}
	f, err := ReadCSV("x.csv", strings.NewReader(b.String()))
	require.NoError(t, err)

	assert.Len(t, f.Head(10), 10)
	assert.Len(t, f.Head(100), 25)
	assert.Len(t, f.Head(-1), 25)
	assert.Equal(t, "The user uploaded a file with columns: n, label. ", f.Summary())
}

func TestNumericValues(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader(salesCSV))
	require.NoError(t, err)

	values, ok := f.NumericValues("revenue")
	assert.Equal(t, []bool{true, true, false, true}, ok)
	assert.Equal(t, 980.0, values[1])

	values, ok = f.NumericValues("missing")
	assert.Nil(t, values)
	assert.Nil(t, ok)
}

func xlsxBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"product", "price", "qty"},
		{"pen", 1.5, 100},
		{"book", 12.25, 7},
		{"lamp", 30, nil},
	})

	f, err := Load("stock.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"product", "price", "qty"}, f.ColumnNames())
	assert.Equal(t, []string{"price", "qty"}, f.NumericColumns())
	require.Len(t, f.Rows, 3)
	assert.Equal(t, "book", f.Rows[1][0])
	assert.Equal(t, "", f.Rows[2][2])
}

func TestReadXLSXCorrupt(t *testing.T) {
	_, err := Load("broken.xlsx", strings.NewReader("this is not a zip archive"))
	require.Error(t, err)
}

func TestReadXLSXEmptySheet(t *testing.T) {
	data := xlsxBytes(t, nil)
	_, err := ReadXLSX("empty.xlsx", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestDescribe(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("v,w,label\n1,,a\n2,,b\n3,,c\n4,,d\n"))
	require.NoError(t, err)

	d := f.Describe()
	require.Len(t, d, 2)

	v := d[0]
	assert.Equal(t, "v", v.Column)
	assert.Equal(t, 4, v.Count)
	assertStat(t, 2.5, v.Mean)
	assertStat(t, 1.2909944, v.Std)
	assertStat(t, 1.0, v.Min)
	assertStat(t, 1.75, v.Q25)
	assertStat(t, 2.5, v.Median)
	assertStat(t, 3.25, v.Q75)
	assertStat(t, 4.0, v.Max)

	assert.Equal(t, ColumnStats{Column: "w"}, d[1])
}

func assertStat(t *testing.T, want float64, got *float64) {
	t.Helper()
	require.NotNil(t, got)
	assert.InDelta(t, want, *got, 1e-6)
}

func TestDescribeSingleValueHasNoStd(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("v\n7\n"))
	require.NoError(t, err)

	d := f.Describe()
	require.Len(t, d, 1)
	assert.Equal(t, 1, d[0].Count)
	assertStat(t, 7, d[0].Mean)
	assert.Nil(t, d[0].Std)
}

func TestDescribeInfinityEncodesAsNull(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("city,sales\na,1\nb,inf\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, f.NumericColumns())

	d := f.Describe()
	require.Len(t, d, 1)
	assert.Equal(t, 2, d[0].Count)
	assertStat(t, 1, d[0].Min)
	assert.Nil(t, d[0].Max)
	assert.Nil(t, d[0].Mean)

	body, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"max":null`)
	assert.Contains(t, string(body), `"min":1`)
}

func TestOutOfRangeNumberStaysNumeric(t *testing.T) {
	f, err := ReadCSV("x.csv", strings.NewReader("v\n1e999\n-1e999\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, f.NumericColumns())

	values, ok := f.NumericValues("v")
	assert.Equal(t, []bool{true, true, true}, ok)
	assert.True(t, math.IsInf(values[0], 1))
	assert.True(t, math.IsInf(values[1], -1))
}

func TestReadXLSXBooleans(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"active", "sales"},
		{true, 5},
		{false, 7},
	})

	f, err := ReadXLSX("flags.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []Column{{Name: "active", Kind: KindBool}, {Name: "sales", Kind: KindNumber}}, f.Columns)
	assert.Equal(t, []string{"sales"}, f.NumericColumns())
	assert.Equal(t, "true", f.Rows[0][0])
	assert.Equal(t, "false", f.Rows[1][0])
	assert.Equal(t, "5", f.Rows[0][1])
}
