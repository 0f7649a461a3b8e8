package tsv

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsvwriter/emit"
	"tsvwriter/plan"
	"tsvwriter/store"
)

type person struct {
	Name string `tsv:"Name"`
}

type panicky struct {
	V explosive `tsv:"V"`
}

type explosive int

func (e explosive) String() string {
	if e < 0 {
		panic("negative")
	}
	return "fine"
}

type clashing struct {
	Tags []string `tsv:"Tags" tsvdelim:"\t"`
}

func TestToText(t *testing.T) {
	out, err := ToText([]person{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)
	assert.Equal(t, "Name\nA\nB", out)

	out, err = ToText[person](nil)
	require.NoError(t, err)
	assert.Equal(t, "Name", out)
}

func TestToBytes(t *testing.T) {
	b, err := ToBytes([]person{{Name: "Ünïcödé"}})
	require.NoError(t, err)
	assert.Equal(t, []byte("Name\nÜnïcödé"), b)
}

func TestToBytes_InvalidUTF8(t *testing.T) {
	type raw struct {
		Data []byte `tsv:"Data"`
	}

	b, err := ToBytes([]raw{{Data: []byte{'a', 0xff, 'b'}}})
	require.NoError(t, err)
	assert.Equal(t, []byte("Data\na\uFFFDb"), b)
}

type Audit struct {
	CreatedBy string `tsv:"Created by"`
}

type hiddenAudit struct {
	Audit `tsv:"-"`
	ID    int `tsv:"ID"`
}

type untagged struct {
	ID int
}

func TestToText_ExcludedEmbedded(t *testing.T) {
	out, err := ToText([]hiddenAudit{{Audit: Audit{CreatedBy: "x"}, ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, "ID\n1", out)
}

func TestToText_NoFields(t *testing.T) {
	out, err := ToText([]untagged{{1}, {2}})
	require.ErrorIs(t, err, plan.ErrNoFields)
	assert.Empty(t, out)
}

func TestToText_NotStruct(t *testing.T) {
	_, err := ToText([]int{1, 2})
	assert.ErrorIs(t, err, plan.ErrNotStruct)
}

func TestDefault_SharesCache(t *testing.T) {
	assert.Same(t, Default(), Default())

	_, err := ToText([]store.OrderItem{{Name: "x"}})
	require.NoError(t, err)

	first, err := Plan[store.OrderItem](Default())
	require.NoError(t, err)
	second, err := Plan[store.OrderItem](Default())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestWriter_DelimiterClash(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	_, _, err = Text(w, slices.Values([]clashing{{}}))
	assert.ErrorIs(t, err, emit.ErrDelimiterClash)
}

func TestWriter_Modes(t *testing.T) {
	items := []panicky{{V: 1}, {V: -1}, {V: 2}}

	strict, err := New()
	require.NoError(t, err)
	_, _, err = Text(strict, slices.Values(items))
	assert.ErrorIs(t, err, emit.ErrRender)

	lenient, err := New(WithMode(ModeBestEffort))
	require.NoError(t, err)
	out, report, err := Text(lenient, slices.Values(items))
	require.NoError(t, err)
	assert.Equal(t, "V\nfine\nfine", out)
	assert.Equal(t, 1, report.Skipped)
}

func TestWriter_SchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types:
  - type: tsvwriter/tsv.person
    fields:
      Name: {header: "Full name"}
`), 0o644))

	w, err := New(WithSchemaFile(path))
	require.NoError(t, err)

	out, _, err := Text(w, slices.Values([]person{{Name: "A"}}))
	require.NoError(t, err)
	assert.Equal(t, "Full name\nA", out)

	_, err = New(WithSchemaFile(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestWriter_Bytes(t *testing.T) {
	w, err := New(WithRowDelimiter(";"))
	require.NoError(t, err)

	b, report, err := Bytes(w, slices.Values([]store.Customer{{ID: 1, Email: "a@b", FullName: "A"}}))
	require.NoError(t, err)
	assert.Equal(t, "Customer ID;Email;Customer\n1;a@b;A", string(b))
	assert.Equal(t, 1, report.Rows)
}
