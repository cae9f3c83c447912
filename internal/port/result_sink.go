package port

// ResultSink receives report rows one at a time, in query order. Values are
// rendered as strings with NULL mapped to the empty string; Columns is the
// same slice for every row of one result set.
type ResultSink interface {
	WriteRow(columns []string, values []string) error
}

// ResultSinkFunc adapts a function to the ResultSink interface.
type ResultSinkFunc func(columns []string, values []string) error

func (f ResultSinkFunc) WriteRow(columns []string, values []string) error {
	return f(columns, values)
}
