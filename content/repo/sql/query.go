package sql

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
)

type queryParts struct {
	Where string
	Limit string
}

// queryBuilder collects ? placeholder conditions. Slice arguments are
// expanded by db.In.
type queryBuilder struct {
	where []string
	args  []interface{}
	limit int
}

func (b *queryBuilder) add(cond string, args ...interface{}) {
	b.where = append(b.where, cond)
	b.args = append(b.args, args...)
}

func (b *queryBuilder) parts() queryParts {
	p := queryParts{}
	if len(b.where) > 0 {
		p.Where = "WHERE " + strings.Join(b.where, " AND ")
	}

	if b.limit > 0 {
		p.Limit = fmt.Sprintf("LIMIT %d", b.limit)
	}

	return p
}

func statusQuery(o content.QueryOptions, prefix string) *queryBuilder {
	b := &queryBuilder{limit: o.Limit}

	if len(o.FeedIDs) > 0 {
		b.add(prefix+"feed_id IN (?)", o.FeedIDs)
	}

	if o.UnreadOnly {
		b.add(prefix+"read = ?", false)
	}

	if o.StarredOnly {
		b.add(prefix+"starred = ?", true)
	}

	if !o.ArrivedAfter.IsZero() {
		b.add(prefix+"date_arrived > ?", toNano(o.ArrivedAfter))
	}

	if !o.ArrivedBefore.IsZero() {
		b.add(prefix+"date_arrived < ?", toNano(o.ArrivedBefore))
	}

	return b
}

var (
	templatesMu sync.Mutex
	templates   = map[string]*template.Template{}
)

func renderTemplate(name, text string, parts queryParts) (string, error) {
	templatesMu.Lock()
	t, ok := templates[name]
	if !ok {
		var err error
		if t, err = template.New(name).Parse(text); err != nil {
			templatesMu.Unlock()
			return "", errors.Wrapf(err, "generating %s template", name)
		}
		templates[name] = t
	}
	templatesMu.Unlock()

	buf := &bytes.Buffer{}
	if err := t.Execute(buf, parts); err != nil {
		return "", errors.Wrapf(err, "executing %s template", name)
	}

	return buf.String(), nil
}

// chunks splits ids into slices of at most size elements.
func chunks(ids []content.ArticleID, size int) [][]content.ArticleID {
	var ret [][]content.ArticleID
	for len(ids) > size {
		ret = append(ret, ids[:size])
		ids = ids[size:]
	}

	if len(ids) > 0 {
		ret = append(ret, ids)
	}

	return ret
}
