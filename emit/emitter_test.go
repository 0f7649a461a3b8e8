package emit

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsvwriter/plan"
	"tsvwriter/store"
)

type named struct {
	Name string `tsv:"Name"`
}

type tagged struct {
	Name string   `tsv:"Name"`
	Tags []string `tsv:"Tags"`
}

type city struct {
	City string `tsv:"X"`
}

type withGroup struct {
	ID   int  `tsv:"ID"`
	Home city `tsv:",inline"`
}

type withOwnColumn struct {
	Home *city `tsv:"Home"`
}

type line struct {
	SKU string `tsv:"SKU"`
	Qty int    `tsv:"Qty"`
}

type basket struct {
	ID    int    `tsv:"ID"`
	Lines []line `tsv:",inline" tsvdelim:";"`
}

type fragile struct {
	Name string `tsv:"Name"`
	Val  bomb   `tsv:"Val"`
}

type bomb struct {
	armed bool
}

func (b bomb) String() string {
	if b.armed {
		panic("boom")
	}
	return "ok"
}

type Base struct {
	Label string `tsv:"Label"`
}

type embeddedPtr struct {
	*Base
	ID int `tsv:"ID"`
}

type scalars struct {
	When  time.Time         `tsv:"When"`
	Ptr   *int              `tsv:"Ptr"`
	Raw   []byte            `tsv:"Raw"`
	Attrs map[string]int    `tsv:"Attrs"`
	Any   any               `tsv:"Any"`
	Err   error             `tsv:"Err"`
	State store.OrderStatus `tsv:"State"`
}

func planFor[T any](t *testing.T) *plan.Node {
	t.Helper()

	root, err := plan.Build(plan.Reflect(reflect.TypeFor[T]()))
	require.NoError(t, err)

	return root
}

func emitAll[T any](t *testing.T, e *Emitter, items ...T) (string, Report) {
	t.Helper()

	out, report, err := Text(e, planFor[T](t), slices.Values(items))
	require.NoError(t, err)

	return out, report
}

func TestText_SingleScalar(t *testing.T) {
	out, report := emitAll(t, New(Options{}), named{Name: "A"}, named{Name: "B"})

	assert.Equal(t, "Name\nA\nB", out)
	assert.Equal(t, 2, report.Rows)
	assert.Zero(t, report.Skipped)
}

func TestText_EmptyInput(t *testing.T) {
	out, report := emitAll[tagged](t, New(Options{}))

	assert.Equal(t, "Name\tTags", out)
	assert.Zero(t, report.Rows)
}

func TestText_CollectionDefaultDelimiter(t *testing.T) {
	out, _ := emitAll(t, New(Options{}), tagged{Name: "n", Tags: []string{"v1", "v2", "v3"}})

	assert.Equal(t, "Name\tTags\nn\tv1,v2,v3", out)
}

func TestText_EmptyCollection(t *testing.T) {
	out, _ := emitAll(t, New(Options{}), tagged{Name: "n"}, tagged{Name: "m", Tags: []string{}})

	assert.Equal(t, "Name\tTags\nn\t\nm\t", out)
}

func TestText_InlineGroup(t *testing.T) {
	out, _ := emitAll(t, New(Options{}), withGroup{ID: 1, Home: city{City: "Oslo"}})

	assert.Equal(t, "ID\tX\n1\tOslo", out)
}

func TestText_GroupOwnColumn(t *testing.T) {
	out, _ := emitAll(t, New(Options{}),
		withOwnColumn{Home: &city{City: "Rome"}},
		withOwnColumn{},
	)

	assert.Equal(t, "X\tHome\nRome\t{Rome}\n\t", out)
}

func TestText_CollectionOfStructs(t *testing.T) {
	out, _ := emitAll(t, New(Options{}),
		basket{ID: 7, Lines: []line{{SKU: "a", Qty: 1}, {SKU: "b", Qty: 2}}},
		basket{ID: 8},
	)

	assert.Equal(t, "ID\tSKU\tQty\n7\ta;b\t1;2\n8\t\t", out)
}

func TestText_StoreOrder(t *testing.T) {
	order := store.Order{
		ID:         1001,
		Customer:   store.Customer{ID: 7, Email: "ann@example.com", FullName: "Ann"},
		Status:     store.StatusPaid,
		TotalCents: 2500,
		Items: []store.OrderItem{
			{ProductID: 1, Name: "Pen", Quantity: 2},
			{ProductID: 2, Name: "Ink", Quantity: 1},
		},
		Notes: []string{"gift", "fragile"},
	}

	out, _ := emitAll(t, New(Options{RowDelimiter: "|"}), &order)

	assert.Equal(t,
		"Order ID|Customer ID|Email|Customer|Status|Total (cents)|Product ID|Item|Qty|Notes\n"+
			"1001|7|ann@example.com|Ann|PAID|2500|1;2|Pen;Ink|2;1|gift,fragile",
		out)
}

func TestText_NilPointerItem(t *testing.T) {
	out, _ := emitAll[*named](t, New(Options{}), nil, &named{Name: "x"})

	assert.Equal(t, "Name\n\nx", out)
}

func TestText_Scalars(t *testing.T) {
	n := 5
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out, _ := emitAll(t, New(Options{}),
		scalars{
			When:  when,
			Ptr:   &n,
			Raw:   []byte("raw"),
			Attrs: map[string]int{"b": 2, "a": 1},
			Any:   3.5,
			Err:   errors.New("bad"),
			State: store.StatusShipped,
		},
		scalars{},
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "When\tPtr\tRaw\tAttrs\tAny\tErr\tState", lines[0])
	assert.Equal(t, when.String()+"\t5\traw\tmap[a:1 b:2]\t3.5\tbad\tSHIPPED", lines[1])
	assert.Equal(t, time.Time{}.String()+"\t\t\t\t\t\t", lines[2])
}

func TestText_StrictModeFails(t *testing.T) {
	e := New(Options{})
	items := []fragile{{Name: "a"}, {Name: "b", Val: bomb{armed: true}}, {Name: "c"}}

	out, report, err := Text(e, planFor[fragile](t), slices.Values(items))
	require.ErrorIs(t, err, ErrRender)

	var itemErr *ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.Empty(t, out)
	assert.Equal(t, 1, report.Rows)
}

func TestText_BestEffortSkips(t *testing.T) {
	var logs bytes.Buffer
	e := New(Options{
		Mode:   ModeBestEffort,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})

	items := []fragile{{Name: "a"}, {Name: "b", Val: bomb{armed: true}}, {Name: "c"}}
	out, report, err := Text(e, planFor[fragile](t), slices.Values(items))
	require.NoError(t, err)

	assert.Equal(t, "Name\tVal\na\tok\nc\tok", out)
	assert.Equal(t, 2, report.Rows)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], ErrRender)
	assert.Contains(t, logs.String(), "skipping row")
	assert.Contains(t, logs.String(), "index=1")
}

func TestText_NilEmbeddedPointerIsAccessFailure(t *testing.T) {
	e := New(Options{Mode: ModeBestEffort})
	items := []embeddedPtr{{Base: &Base{Label: "l"}, ID: 1}, {ID: 2}}

	out, report, err := Text(e, planFor[embeddedPtr](t), slices.Values(items))
	require.NoError(t, err)

	assert.Equal(t, "Label\tID\nl\t1", out)
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0], ErrFieldAccess)
}

func TestText_Deterministic(t *testing.T) {
	items := []basket{{ID: 1, Lines: []line{{SKU: "x", Qty: 3}}}, {ID: 2}}
	root := planFor[basket](t)
	e := New(Options{})

	first, _, err := Text(e, root, slices.Values(items))
	require.NoError(t, err)
	second, _, err := Text(e, root, slices.Values(items))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestText_ColumnAlignment(t *testing.T) {
	root := planFor[store.Order](t)
	out, _, err := Text(New(Options{}), root, slices.Values([]store.Order{
		{ID: 1},
		{ID: 2, Items: []store.OrderItem{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
	}))
	require.NoError(t, err)

	for _, l := range strings.Split(out, "\n") {
		assert.Len(t, strings.Split(l, "\t"), root.Width(), l)
	}
}

func TestCheck(t *testing.T) {
	root := planFor[basket](t)

	assert.NoError(t, New(Options{}).Check(root))
	assert.ErrorIs(t, New(Options{RowDelimiter: ";"}).Check(root), ErrDelimiterClash)
	assert.ErrorIs(t, New(Options{RowDelimiter: "\n"}).Check(root), ErrDelimiterClash)
}

func TestCheck_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		rowDelim string
		delim    string
		clash    bool
	}{
		{name: "distinct", rowDelim: "\t", delim: ";"},
		{name: "equal", rowDelim: "\t", delim: "\t", clash: true},
		{name: "collection contains row", rowDelim: "\t", delim: ";\t", clash: true},
		{name: "row contains collection", rowDelim: "::", delim: ":", clash: true},
		{name: "empty", rowDelim: "\t", delim: "", clash: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &plan.Node{Kind: plan.KindGroup, Inline: true, Children: []*plan.Node{{
				Kind:      plan.KindCollection,
				Name:      "Tags",
				Delimiter: tt.delim,
				Children:  []*plan.Node{{Kind: plan.KindTerminal, Header: "Tags"}},
			}}}

			err := New(Options{RowDelimiter: tt.rowDelim}).Check(root)
			if tt.clash {
				assert.ErrorIs(t, err, ErrDelimiterClash)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Best-Effort")
	require.NoError(t, err)
	assert.Equal(t, ModeBestEffort, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	_, err = ParseMode("lenient")
	assert.ErrorIs(t, err, ErrInvalidMode)

	assert.Equal(t, "BestEffort", ModeBestEffort.String())
}
