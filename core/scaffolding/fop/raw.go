package fop

// RawFind is the option set of findRaw. Filter is a SQL boolean expression
// over the model's table using @name placeholders bound from Args.
type RawFind struct {
	Filter     string
	Args       map[string]any
	Projection []Field
	OrderBy    string
	Limit      int
}

// RawPipeline is the stage list of aggregateRaw, applied in SQL clause order
// to the model's table. Select is required.
type RawPipeline struct {
	Select  string
	Where   string
	GroupBy string
	Having  string
	OrderBy string
	Limit   int
	Args    map[string]any
}
