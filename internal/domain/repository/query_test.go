package repository

import (
	"net/url"
	"testing"

	"campdir/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, int64(0), q.Skip())
	assert.Empty(t, q.Filter)
	assert.Nil(t, q.Projection)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
}

func TestParseListQuery_ComparisonOperators(t *testing.T) {
	values, err := url.ParseQuery("averageCost[lte]=10000&averageCost[gt]=1000&housing=true&careers[in]=Business,UI/UX")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$lte": int64(10000), "$gt": int64(1000)}, q.Filter["averageCost"])
	assert.Equal(t, bson.M{"$in": bson.A{"true", true}}, q.Filter["housing"])
	assert.Equal(t, bson.M{"$in": bson.A{"Business", "UI/UX"}}, q.Filter["careers"])
}

func TestParseListQuery_BareEqualityKeepsStrings(t *testing.T) {
	values, err := url.ParseQuery("weeks=8&location.zipcode=02215&name=Devworks")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)

	// weeks and zipcode are stored as strings, so the literal must stay a
	// match candidate; the numeric reading rides along for numeric fields
	assert.Equal(t, bson.M{"$in": bson.A{"8", int64(8)}}, q.Filter["weeks"])
	assert.Equal(t, bson.M{"$in": bson.A{"02215", int64(2215)}}, q.Filter["location.zipcode"])
	assert.Equal(t, "Devworks", q.Filter["name"])
}

func TestParseListQuery_InOperatorKeepsStrings(t *testing.T) {
	values, err := url.ParseQuery("weeks[in]=8,10")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$in": bson.A{"8", int64(8), "10", int64(10)}}, q.Filter["weeks"])
}

func TestParseListQuery_ReservedWithOperatorIsStripped(t *testing.T) {
	values, err := url.ParseQuery("limit[gt]=5&page[in]=1,2")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)
	assert.Empty(t, q.Filter)
	assert.Equal(t, defaultLimit, q.Limit)
	assert.Equal(t, defaultPage, q.Page)
}

func TestParseListQuery_UnknownOperatorIsLiteralKey(t *testing.T) {
	values := url.Values{"name[regex]": {"dev"}}
	q, err := ParseListQuery(values)
	require.NoError(t, err)

	// not a supported comparison token, so the bracketed key is taken as-is
	assert.Equal(t, "dev", q.Filter["name[regex]"])
}

func TestParseListQuery_SelectAndSort(t *testing.T) {
	values, err := url.ParseQuery("select=name,description&sort=-name,tuition")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"name": 1, "description": 1}, q.Projection)
	assert.Equal(t, bson.D{{Key: "name", Value: -1}, {Key: "tuition", Value: 1}}, q.Sort)
	// reserved params never leak into the filter
	assert.Empty(t, q.Filter)
}

func TestParseListQuery_Paging(t *testing.T) {
	values, err := url.ParseQuery("page=3&limit=5")
	require.NoError(t, err)

	q, err := ParseListQuery(values)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, int64(10), q.Skip())
}

func TestParseListQuery_MalformedPaging(t *testing.T) {
	for _, raw := range []string{"page=abc", "limit=0", "page=-1", "limit=x"} {
		values, err := url.ParseQuery(raw)
		require.NoError(t, err)

		_, err = ParseListQuery(values)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, common.ErrBadRequest, raw)
	}
}

func TestNewPagination(t *testing.T) {
	// page 2 of 6 records at limit 5: a prev page exists, no next
	p := NewPagination(2, 5, 6)
	require.NotNil(t, p.Prev)
	assert.Equal(t, Page{Page: 1, Limit: 5}, *p.Prev)
	assert.Nil(t, p.Next)

	// more than 10 records: a next page appears
	p = NewPagination(2, 5, 11)
	require.NotNil(t, p.Next)
	assert.Equal(t, Page{Page: 3, Limit: 5}, *p.Next)
	require.NotNil(t, p.Prev)

	// first page of a small set: neither
	p = NewPagination(1, 10, 6)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)
}
