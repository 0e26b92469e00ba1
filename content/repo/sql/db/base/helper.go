package base

import (
	"reflect"

	"github.com/urandom/feedkeeper/content/repo/sql/db"
)

type Helper struct {
	sql db.SqlStmts
}

func NewHelper() *Helper {
	return &Helper{sql: sqlStmts}
}

func (h Helper) SQL() db.SqlStmts {
	return h.sql
}

// Set overrides every non-empty statement of override.
func (h *Helper) Set(override db.SqlStmts) {
	oursPtr := reflect.ValueOf(&h.sql)
	ours := oursPtr.Elem()
	theirs := reflect.ValueOf(override)

	for i := 0; i < ours.NumField(); i++ {
		ourInner := ours.Field(i)
		theirInner := theirs.Field(i)

		if theirInner.IsValid() {
			for j := 0; j < theirInner.NumField(); j++ {
				ourField := ourInner.Field(j)
				theirField := theirInner.Field(j)

				if theirField.IsValid() && ourField.CanSet() && ourField.Kind() == reflect.String {
					s := theirField.String()
					if s != "" {
						ourField.SetString(s)
					}
				}
			}
		}
	}
}

func (h Helper) Upgrade(db *db.DB, old, new int) error {
	return nil
}

var (
	sqlStmts = db.SqlStmts{}
)
