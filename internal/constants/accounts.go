package constants

const (
	MaxNameLen  = 100
	MaxNotesLen = 4096
)

// The virtual account every new ledger starts with.
const (
	DefaultVirtualName  = "Default Virtual Account"
	DefaultVirtualNotes = "A virtual account is required for most transactions, but many of them don't need a dedicated budget, so this one is the default to use."
)

const (
	DefaultCurrency = "EUR"
	DefaultDataDir  = ".tally"
	DBFileName      = "tally.db"
	FilesDirName    = "ledger"
)

const (
	BackendSQLite = "sqlite"
	BackendFiles  = "files"
)

// NameColumnWidth caps account names in table views.
const NameColumnWidth = 30
