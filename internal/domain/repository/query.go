package repository

import (
	"net/url"
	"strconv"
	"strings"

	"campdir/internal/common"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// reserved query params that shape the result set rather than filter it
var reservedParams = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

var comparisonOps = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev entries only when such pages exist.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// ListQuery is the database-shaped form of an advanced query request:
// filter, projection, sort and paging derived from the raw query string.
type ListQuery struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
	Page       int
	Limit      int
}

func (q *ListQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// SelectedKeys lists the projected field names, nil when no select was
// given.
func (q *ListQuery) SelectedKeys() []string {
	if q.Projection == nil {
		return nil
	}
	keys := make([]string, 0, len(q.Projection))
	for k := range q.Projection {
		keys = append(keys, k)
	}
	return keys
}

// ParseListQuery translates a flat query-string mapping into a ListQuery.
// Filter keys may embed comparison operators in bracket form, e.g.
// averageCost[lte]=10000 or careers[in]=Business, which are rewritten to
// the native $-prefixed operators.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{
		Filter: bson.M{},
		Page:   defaultPage,
		Limit:  defaultLimit,
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]

		field, op, hasOp := splitOperator(key)
		if _, ok := reservedParams[field]; ok {
			continue
		}

		if !hasOp {
			q.Filter[field] = equalityValue(value)
			continue
		}

		cond, ok := q.Filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			q.Filter[field] = cond
		}
		if op == "$in" {
			parts := strings.Split(value, ",")
			list := make(bson.A, 0, len(parts))
			for _, p := range parts {
				list = append(list, typedCandidates(p)...)
			}
			cond[op] = list
		} else {
			cond[op] = coerceValue(value)
		}
	}

	if sel := values.Get("select"); sel != "" {
		q.Projection = bson.M{}
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				q.Projection[field] = 1
			}
		}
	}

	if sortBy := values.Get("sort"); sortBy != "" {
		for _, field := range strings.Split(sortBy, ",") {
			if field = strings.TrimSpace(field); field == "" {
				continue
			}
			order := 1
			if strings.HasPrefix(field, "-") {
				order = -1
				field = field[1:]
			}
			q.Sort = append(q.Sort, bson.E{Key: field, Value: order})
		}
	}
	if len(q.Sort) == 0 {
		q.Sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	var err error
	if q.Page, err = positiveIntParam(values, "page", defaultPage); err != nil {
		return nil, err
	}
	if q.Limit, err = positiveIntParam(values, "limit", defaultLimit); err != nil {
		return nil, err
	}

	return q, nil
}

// splitOperator breaks "field[op]" into its parts when op is a known
// comparison operator.
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	native, known := comparisonOps[key[open+1:len(key)-1]]
	if !known {
		return key, "", false
	}
	return key[:open], native, true
}

// coerceValue maps numeric and boolean literals to their typed form so
// comparison operands apply against numeric and boolean fields.
func coerceValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// equalityValue builds the filter value for a bare field=value pair. The
// stored field may be a string even when the literal looks numeric (weeks,
// zipcode), so numeric and boolean literals become an $in over every
// reading instead of a lossy cast.
func equalityValue(s string) interface{} {
	candidates := typedCandidates(s)
	if len(candidates) == 1 {
		return candidates[0]
	}
	return bson.M{"$in": bson.A(candidates)}
}

// typedCandidates returns the literal string plus any numeric and boolean
// readings of it.
func typedCandidates(s string) []interface{} {
	out := []interface{}{s}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		out = append(out, n)
	} else if f, err := strconv.ParseFloat(s, 64); err == nil {
		out = append(out, f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		out = append(out, b)
	}
	return out
}

func positiveIntParam(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, common.Errorf("invalid %s value %q: %w", key, raw, common.ErrBadRequest)
	}
	return n, nil
}

// NewPagination computes the next/prev entries for a page against the
// total count of matching records.
func NewPagination(page, limit int, total int64) *Pagination {
	p := &Pagination{}
	if int64(page*limit) < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return p
}
