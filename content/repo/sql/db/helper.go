package db

type Helper interface {
	SQL() SqlStmts
	InitSQL() []string

	Upgrade(db *DB, old, new int) error
}

type FeedStmts struct {
	Get string
	All string

	Create string
	Update string
	Delete string
}

type ArticleStmts struct {
	GetTemplate string
	Upsert      string
}

type StatusStmts struct {
	Get           string
	Create        string
	UpdateRead    string
	UpdateStarred string

	CountTemplate  string
	IDsTemplate    string
	MarkReadBefore string
	StaleIDs       string
	DeleteStale    string
	DeleteForFeed  string
}

type SqlStmts struct {
	Feed    FeedStmts
	Article ArticleStmts
	Status  StatusStmts
}

func Register(driver string, helper Helper) {
	if helper == nil {
		panic("No helper provided")
	}

	if _, ok := helpers[driver]; ok {
		panic("Helper " + driver + " already registered")
	}

	helpers[driver] = helper
}

// Can't recover from missing driver or statement, panic
func (db *DB) SQL() SqlStmts {
	driver := db.DriverName()

	if h, ok := helpers[driver]; ok {
		return h.SQL()
	} else {
		panic("No helper registered for " + driver)
	}
}
