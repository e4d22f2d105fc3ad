package qb

type colKind int

const (
	colString colKind = iota
	colInteger
	colText
	colTimestamp
)

type column struct {
	name string
	kind colKind
	size int
}

// TableBuilder collects column and index definitions for CreateTable.
// The dialect renders them into DDL.
type TableBuilder struct {
	columns []column
	indexes [][]string
}

func (tb *TableBuilder) String(name string, size int) *TableBuilder {
	tb.columns = append(tb.columns, column{name: name, kind: colString, size: size})
	return tb
}

func (tb *TableBuilder) Integer(name string) *TableBuilder {
	tb.columns = append(tb.columns, column{name: name, kind: colInteger})
	return tb
}

func (tb *TableBuilder) Text(name string) *TableBuilder {
	tb.columns = append(tb.columns, column{name: name, kind: colText})
	return tb
}

func (tb *TableBuilder) Timestamp(name string) *TableBuilder {
	tb.columns = append(tb.columns, column{name: name, kind: colTimestamp})
	return tb
}

func (tb *TableBuilder) Index(cols ...string) *TableBuilder {
	tb.indexes = append(tb.indexes, cols)
	return tb
}
