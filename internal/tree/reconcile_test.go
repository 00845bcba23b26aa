package tree

import (
	"testing"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSchema_Congruent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"options": {"default": 0}}`,
		familyTree,
		`{"a": {"b": {"c": {"d": 7}}}, "e": {}}`,
	}
	for _, src := range inputs {
		data := mustTree(t, src)
		schema := DeriveSchema(data)
		assert.True(t, KeysEqual(schema, data), "schema ⊆ data for %s", src)
		assert.True(t, KeysEqual(data, schema), "data ⊆ schema for %s", src)
		assert.True(t, Congruent(data, schema))
	}
}

func TestDeriveSchema_ResetsLeavesAndCopies(t *testing.T) {
	data := mustTree(t, `{"work": {"code": 90, "mail": 15}}`)
	schema := DeriveSchema(data)

	out, err := Marshal(schema, StyleSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"work": {"code": null, "mail": null}}`, string(out))

	work, _ := schema.Child("work")
	require.NoError(t, AddLeaf(work, "calls"))
	assert.Equal(t, 2, mustChild(t, data, "work").Len(), "schema must not alias data")
}

func TestDeriveSchema_Empty(t *testing.T) {
	schema := DeriveSchema(NewBranch())
	assert.True(t, schema.IsBranch())
	assert.Equal(t, 0, schema.Len())
}

func TestKeysEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: familyTree, b: familyTree, want: true},
		{name: "subset", a: `{"x": 0}`, b: `{"x": 0, "y": 0}`, want: true},
		{name: "superset", a: `{"x": 0, "y": 0}`, b: `{"x": 0}`, want: false},
		{name: "empty vs anything", a: `{}`, b: `{"x": 0}`, want: true},
		{name: "branch facing leaf", a: `{"x": {"y": 0}}`, b: `{"x": 0}`, want: false},
		{name: "leaf facing branch", a: `{"x": 0}`, b: `{"x": {"y": 0}}`, want: true},
		{
			name: "mismatch in a later sibling branch",
			a:    `{"first": {"a": 0}, "second": {"b": 0}}`,
			b:    `{"first": {"a": 0}, "second": {"c": 0}}`,
			want: false,
		},
		{
			name: "missing key after a matching branch",
			a:    `{"first": {"a": 0}, "second": 0}`,
			b:    `{"first": {"a": 0}}`,
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KeysEqual(mustTree(t, tc.a), mustTree(t, tc.b)))
		})
	}
}

func TestCongruent_IgnoresValues(t *testing.T) {
	a := mustTree(t, `{"x": 5, "y": {"z": 1}}`)
	b := mustTree(t, `{"y": {"z": 0}, "x": 0}`)
	assert.True(t, Congruent(a, b))

	c := mustTree(t, `{"x": {"x": 5}, "y": {"z": 1}}`)
	assert.False(t, Congruent(a, c))
}

func TestCollapseBranchValue(t *testing.T) {
	root := mustTree(t, familyTree)
	total, err := CollapseBranchValue(root)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	sub, err := Resolve(root, domain.Path{"RyanAndViolet", "JohnAndAnn"})
	require.NoError(t, err)
	total, err = CollapseBranchValue(sub)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	total, err = CollapseBranchValue(NewBranch())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCollapseBranchValue_TypeMismatch(t *testing.T) {
	root := NewBranch()
	require.NoError(t, root.Insert("broken", &Node{}))
	_, err := CollapseBranchValue(root)
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestConformData(t *testing.T) {
	schema := mustTree(t, `{"options": {"default": null, "run": null, "new": null, "grp": {"a": null}}}`)
	data := mustTree(t, `{"options": {"default": 3, "run": {"run": 10, "trail": 5}, "stale": 9, "grp": 4}}`)

	got, err := ConformData(schema, data)
	require.NoError(t, err)
	assert.Equal(t,
		`{"options":{"default":3,"run":15,"new":0,"grp":{"a":0}}}`,
		compact(t, got))
	assert.True(t, Congruent(got, schema))
}

func mustChild(t *testing.T, n *Node, name string) *Node {
	t.Helper()
	c, ok := n.Child(name)
	require.True(t, ok, "missing child %q", name)
	return c
}

func TestMissing(t *testing.T) {
	data := mustTree(t, `{"options": {"default": 1, "run": {"run": 2, "trail": 3}, "swim": 0}}`)
	schema := mustTree(t, `{"options": {"default": null, "run": null, "bike": null}}`)

	assert.Equal(t,
		[]domain.Path{{"options", "run"}, {"options", "swim"}},
		Missing(data, schema))
	assert.Equal(t,
		[]domain.Path{{"options", "bike"}},
		Missing(schema, data))
	assert.Empty(t, Missing(data, DeriveSchema(data)))
}
