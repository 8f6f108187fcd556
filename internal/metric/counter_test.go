package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutations_RecordAndServe(t *testing.T) {
	m := NewMutations()
	m.Record("move", "reordered")
	m.Record("move", "reordered")
	m.Record("delete", "deleted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Counter.With("move", "reordered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter.With("delete", "deleted")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `navtree_mutations_total{op="move",outcome="reordered"} 2`), string(body))
}

func TestMutations_NilIsNoop(t *testing.T) {
	var m *Mutations
	assert.NotPanics(t, func() { m.Record("move", "none") })
}
