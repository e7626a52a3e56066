package db

// ListQuery is the input for a sorted, windowed FT.SEARCH.
type ListQuery struct {
	IndexName    string
	Query        string
	SortBy       string // schema alias; empty means store-native order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// LoadField names a pipeline attribute for FT.AGGREGATE LOAD: either a
// schema alias ("@owner", "@__key") or a JSONPath with an alias.
type LoadField struct {
	Identifier string
	As         string
}

// ApplyStep is a derived-field computation in an aggregation pipeline.
type ApplyStep struct {
	Expression string
	As         string
}

// AggregateQuery is the input for an FT.AGGREGATE pipeline: load fields,
// compute derived fields, sort, and window the result.
type AggregateQuery struct {
	IndexName string
	Query     string
	Load      []LoadField
	Apply     []ApplyStep
	SortBy    string
	SortDesc  bool
	Offset    int
	Limit     int
}

// Row is a single aggregation result row of attribute name/value pairs.
type Row map[string]string

// AggregateResult is the output of an aggregation pipeline.
type AggregateResult struct {
	Total int
	Rows  []Row
}
