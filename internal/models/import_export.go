package models

// ImportValidationError describes one rejected row of a question import file.
type ImportValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ImportSummary aggregates the outcome of a question import run.
type ImportSummary struct {
	TotalRows     int                     `json:"total_rows"`
	ProcessedRows int                     `json:"processed_rows"`
	SuccessCount  int                     `json:"success_count"`
	ErrorCount    int                     `json:"error_count"`
	Errors        []ImportValidationError `json:"errors"`
}
