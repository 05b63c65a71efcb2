package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func mustParse(t *testing.T, kind types.Kind, fields map[string]string) types.Record {
	t.Helper()
	rec, err := types.ParseRecord(kind, fields)
	require.NoError(t, err)
	return rec
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	for _, k := range types.Kinds() {
		assert.Empty(t, s.List(k), "kind %s", k)
		assert.Zero(t, s.Len(k))
	}
}

// A biobank record added with id 1 and name Alpha is listed back unchanged.
func TestAddSingleBiobank(t *testing.T) {
	s := New(WithLogger(zaptest.NewLogger(t)))
	rec := mustParse(t, types.KindBiobank, map[string]string{"biobank_id": "1", "biobank_name": "Alpha"})
	require.NoError(t, s.Add(types.KindBiobank, rec))

	got := s.List(types.KindBiobank)
	require.Len(t, got, 1)
	id, ok := got[0].At(0).Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	assert.True(t, got[0].Equal(rec))
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := New()
	var want []types.Record
	for _, id := range []string{"3", "1", "2", "1"} {
		rec := mustParse(t, types.KindPerson, map[string]string{"person_id": id})
		require.NoError(t, s.Add(types.KindPerson, rec))
		want = append(want, rec)
	}
	got := s.List(types.KindPerson)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, got[i].Equal(want[i]), "position %d", i)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(types.KindPerson, mustParse(t, types.KindPerson, map[string]string{"person_id": "1"})))
	got := s.List(types.KindPerson)
	got[0] = mustParse(t, types.KindPerson, map[string]string{"person_id": "99"})
	v, _ := s.List(types.KindPerson)[0].Get("person_id")
	assert.Equal(t, "1", v.String())
}

func TestAddRejectsWrongTable(t *testing.T) {
	s := New()
	rec := mustParse(t, types.KindPerson, map[string]string{"person_id": "1"})
	assert.ErrorIs(t, s.Add(types.KindCondition, rec), types.ErrKindMismatch)
	assert.ErrorIs(t, s.Add("visit", rec), types.ErrUnknownKind)
	assert.Zero(t, s.Len(types.KindCondition))
}

func TestAddKeepsDuplicateKeys(t *testing.T) {
	s := New()
	rec := mustParse(t, types.KindBiobank, map[string]string{"biobank_id": "1"})
	require.NoError(t, s.Add(types.KindBiobank, rec))
	require.NoError(t, s.Add(types.KindBiobank, rec))
	assert.Equal(t, 2, s.Len(types.KindBiobank))
}

// Two conditions for person 42 and one for person 7: filtering by 42
// returns exactly the two, in insertion order.
func TestFilterByPerson(t *testing.T) {
	s := New()
	a := mustParse(t, types.KindCondition, map[string]string{"condition_occurrence_id": "1", "person_id": "42"})
	b := mustParse(t, types.KindCondition, map[string]string{"condition_occurrence_id": "2", "person_id": "7"})
	c := mustParse(t, types.KindCondition, map[string]string{"condition_occurrence_id": "3", "person_id": "42"})
	for _, rec := range []types.Record{a, b, c} {
		require.NoError(t, s.Add(types.KindCondition, rec))
	}

	got, err := s.Filter(types.KindCondition, "person_id", "42")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(a))
	assert.True(t, got[1].Equal(c))
}

func TestFilterIsSubsequenceOfList(t *testing.T) {
	s := New()
	for _, pid := range []string{"1", "2", "", "1", "3", "1"} {
		require.NoError(t, s.Add(types.KindProcedure, mustParse(t, types.KindProcedure, map[string]string{
			"procedure_occurrence_id": "10",
			"person_id":               pid,
		})))
	}
	all := s.List(types.KindProcedure)
	for _, v := range []string{"1", "2", "3", "4"} {
		got, err := s.Filter(types.KindProcedure, "person_id", v)
		require.NoError(t, err)
		var want []types.Record
		for _, rec := range all {
			if pv, _ := rec.Get("person_id"); pv.String() == v {
				want = append(want, rec)
			}
		}
		require.Len(t, got, len(want), "value %q", v)
		for i := range want {
			assert.True(t, got[i].Equal(want[i]))
		}
	}
}

func TestFilterEmptyValueEqualsList(t *testing.T) {
	s := New()
	for _, pid := range []string{"1", "", "2"} {
		require.NoError(t, s.Add(types.KindCondition, mustParse(t, types.KindCondition, map[string]string{"person_id": pid})))
	}
	got, err := s.Filter(types.KindCondition, "person_id", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFilterComparesStoredRepresentation(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(types.KindCondition, mustParse(t, types.KindCondition, map[string]string{"person_id": "0042"})))
	got, err := s.Filter(types.KindCondition, "person_id", "42")
	require.NoError(t, err)
	assert.Len(t, got, 1, "integer 0042 is stored as 42")

	got, err = s.Filter(types.KindCondition, "person_id", "0042")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterErrors(t *testing.T) {
	s := New()
	_, err := s.Filter(types.KindCondition, "biobank_id", "1")
	assert.ErrorIs(t, err, types.ErrUnknownField)
	_, err = s.Filter("visit", "person_id", "1")
	assert.ErrorIs(t, err, types.ErrUnknownKind)
}

func TestLinked(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(types.KindSample, mustParse(t, types.KindSample, map[string]string{"sample_id": "1", "biobank_id": "5", "person_id": "42"})))
	require.NoError(t, s.Add(types.KindSample, mustParse(t, types.KindSample, map[string]string{"sample_id": "2", "biobank_id": "6", "person_id": "42"})))
	require.NoError(t, s.Add(types.KindCondition, mustParse(t, types.KindCondition, map[string]string{"condition_occurrence_id": "1", "person_id": "42"})))

	// No person 42 exists; dangling links are still followed.
	got, err := s.Linked(types.KindPerson, "42", types.KindCondition)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Linked(types.KindBiobank, "6", types.KindSample)
	require.NoError(t, err)
	require.Len(t, got, 1)
	id, _ := got[0].Get("sample_id")
	assert.Equal(t, "2", id.String())

	got, err = s.Linked(types.KindPerson, "42", types.KindSample)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Linked(types.KindBiobank, "6", types.KindProcedure)
	assert.ErrorIs(t, err, types.ErrNoLink)
}

func TestLinkedTo(t *testing.T) {
	s := New()
	person := mustParse(t, types.KindPerson, map[string]string{"person_id": "42"})
	require.NoError(t, s.Add(types.KindPerson, person))
	require.NoError(t, s.Add(types.KindProcedure, mustParse(t, types.KindProcedure, map[string]string{"procedure_occurrence_id": "9", "person_id": "42"})))
	require.NoError(t, s.Add(types.KindProcedure, mustParse(t, types.KindProcedure, map[string]string{"procedure_occurrence_id": "8", "person_id": "41"})))

	got, err := s.LinkedTo(person, types.KindProcedure)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = s.LinkedTo(types.Record{}, types.KindProcedure)
	assert.ErrorIs(t, err, types.ErrUnknownKind)
}

func TestReplace(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(types.KindPerson, mustParse(t, types.KindPerson, map[string]string{"person_id": "1"})))
	repl := []types.Record{
		mustParse(t, types.KindPerson, map[string]string{"person_id": "2"}),
		mustParse(t, types.KindPerson, map[string]string{"person_id": "3"}),
	}
	require.NoError(t, s.Replace(types.KindPerson, repl))
	assert.Equal(t, 2, s.Len(types.KindPerson))

	bad := []types.Record{mustParse(t, types.KindBiobank, nil)}
	assert.ErrorIs(t, s.Replace(types.KindPerson, bad), types.ErrKindMismatch)
	assert.Equal(t, 2, s.Len(types.KindPerson), "failed replace leaves the table unchanged")

	assert.Equal(t, map[types.Kind]int{
		types.KindBiobank: 0, types.KindSample: 0, types.KindPerson: 2,
		types.KindCondition: 0, types.KindProcedure: 0,
	}, s.Counts())
}
