package postgres

import (
	_ "github.com/lib/pq"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	"github.com/urandom/feedkeeper/content/repo/sql/db/base"
)

type Helper struct {
	*base.Helper
}

func (h Helper) InitSQL() []string {
	return initSQL
}

func init() {
	db.Register("postgres", &Helper{Helper: base.NewHelper()})
}
