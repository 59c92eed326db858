package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for local storage.
	StoreBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// Report shape constants.
const (
	// MaxReportCommits caps the commit list included in a report payload.
	// Selection is first-N in accumulation order, which equals discovery order.
	MaxReportCommits = 1000

	// HourBuckets is the length of the hour-of-day distribution.
	HourBuckets = 24

	// DayBuckets is the length of the day-of-week distribution, Sunday first.
	DayBuckets = 7

	// OtherFileType is the histogram key for files without a usable extension.
	OtherFileType = "other"

	// DefaultAuthorName is used when the ambient VCS config has no user name.
	DefaultAuthorName = "Developer"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
