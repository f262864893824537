package tabular

// Config holds the dataset source settings the reader needs.
type Config struct {
	// Path to the dataset file, .csv or .xlsx by extension.
	Path string
	// SheetName selects the worksheet for xlsx sources. Empty picks the
	// workbook's first sheet.
	SheetName string
}
