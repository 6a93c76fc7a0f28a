package chart

import (
	"strings"
	"testing"

	"datachat/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, csv string) *dataset.Frame {
	t.Helper()
	f, err := dataset.ReadCSV("t.csv", strings.NewReader(csv))
	require.NoError(t, err)
	return f
}

func TestAxesSplitNumericColumns(t *testing.T) {
	f := frame(t, "city,sales,year,open\nOslo,10,2020,true\nRome,7,2021,false\n")

	a := AxesFor(f)
	assert.Equal(t, []string{"city", "sales", "year", "open"}, a.X)
	assert.Equal(t, []string{"sales", "year"}, a.Y)
	assert.Equal(t, "city", a.DefaultX)
	assert.Equal(t, "sales", a.DefaultY)
	assert.True(t, a.CanChart())
	assert.Empty(t, a.Warning)
}

func TestAxesWithoutNumericColumns(t *testing.T) {
	a := AxesFor(frame(t, "a,b\nx,y\n"))
	assert.False(t, a.CanChart())
	assert.Equal(t, NoNumericWarning, a.Warning)

	_, _, err := a.Resolve("a", "b")
	assert.EqualError(t, err, NoNumericWarning)
}

func TestResolve(t *testing.T) {
	a := AxesFor(frame(t, "city,sales\nOslo,10\n"))

	x, y, err := a.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, "city", x)
	assert.Equal(t, "sales", y)

	_, _, err = a.Resolve("nope", "sales")
	assert.Error(t, err)

	_, _, err = a.Resolve("sales", "city")
	assert.Error(t, err)

	x, y, err = a.Resolve("sales", "sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", x)
	assert.Equal(t, "sales", y)
}

func TestBarRendersTitleAndColor(t *testing.T) {
	f := frame(t, "city,sales\nOslo,10\nRome,\nLima,3.5\n")

	html, err := Bar(f, "city", "sales")
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "sales by city")
	assert.Contains(t, page, BarColor)
	assert.Contains(t, page, "Oslo")
	assert.Contains(t, page, "Lima")
}

func TestBarRejectsTextY(t *testing.T) {
	f := frame(t, "city,sales\nOslo,10\n")
	_, err := Bar(f, "sales", "city")
	assert.Error(t, err)
}

func TestBarSkipsInfiniteValues(t *testing.T) {
	f := frame(t, "city,sales\nOslo,10\nRome,inf\nLima,1e999\n")

	html, err := Bar(f, "", "")
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, "Oslo")
	assert.Contains(t, page, `"-"`)
}
