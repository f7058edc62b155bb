package slumber

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notRunnable struct{}

type hiddenTx struct {
	tx *Tick
}

func (*hiddenTx) Run() {}

type valueResource struct {
	Config Config `slumber:"res"`
}

func (*valueResource) Run() {}

type withPayload struct {
	Sessions []*Session
	Count    int
	note     string

	_ With[MovementStates]
}

func (*withPayload) Run() {}

func TestAnalyzeSleepSystem(t *testing.T) {
	registry := newComponentRegistry()
	meta, err := analyzeSystem(reflect.TypeFor[*SleepSystem](), nil, registry)
	require.NoError(t, err)

	assert.Equal(t, "SleepSystem", meta.Name)
	kinds := make(map[string]FieldKind)
	for _, f := range meta.Fields {
		kinds[f.Name] = f.Kind
	}
	assert.Equal(t, map[string]FieldKind{
		"Tx":         KindTx,
		"World":      KindWorld,
		"Manager":    KindManager,
		"Sessions":   KindSessions,
		"Somnolence": KindResource,
		"Clock":      KindResource,
		"Config":     KindResource,
		"_":          KindPhantomWithout,
	}, kinds)

	sleepless := registry.register(reflect.TypeFor[Sleepless]())
	assert.True(t, meta.ExcludeMask.Has(sleepless))
	assert.True(t, meta.RequireMask.IsZero())

	for _, f := range meta.Fields {
		if f.Name == "Somnolence" {
			assert.True(t, f.Mutable)
			assert.Equal(t, reflect.TypeFor[Somnolence](), f.ResourceType)
		}
	}
}

func TestAnalyzeSlumberSystem(t *testing.T) {
	meta, err := analyzeSystem(reflect.TypeFor[SlumberSystem](), nil, newComponentRegistry())
	require.NoError(t, err)
	assert.Len(t, meta.Fields, 6)
	assert.True(t, meta.ExcludeMask.IsZero())
}

func TestAnalyzeSystemPayload(t *testing.T) {
	registry := newComponentRegistry()
	meta, err := analyzeSystem(reflect.TypeFor[withPayload](), nil, registry)
	require.NoError(t, err)

	require.Len(t, meta.Fields, 3)
	assert.Equal(t, KindSessions, meta.Fields[0].Kind)
	assert.Equal(t, KindPayload, meta.Fields[1].Kind)
	assert.Equal(t, KindPhantomWith, meta.Fields[2].Kind)
	assert.True(t, meta.RequireMask.Has(registry.register(reflect.TypeFor[MovementStates]())))
}

func TestAnalyzeSystemErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"not a struct", reflect.TypeFor[int](), "must be a struct"},
		{"not runnable", reflect.TypeFor[notRunnable](), "does not implement Runnable"},
		{"unexported injected field", reflect.TypeFor[hiddenTx](), "must be exported"},
		{"non-pointer resource", reflect.TypeFor[valueResource](), "must be a pointer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzeSystem(tt.typ, nil, newComponentRegistry())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseTag(t *testing.T) {
	assert.Equal(t, TagInfo{}, parseTag(""))
	assert.Equal(t, TagInfo{Resource: true}, parseTag("res"))
	assert.Equal(t, TagInfo{Resource: true, Mutable: true, Optional: true}, parseTag("res, mut,opt"))
	assert.Equal(t, TagInfo{Optional: true}, parseTag("opt,unknown"))
}

func TestGetPhantomInfo(t *testing.T) {
	typ, without, ok := getPhantomInfo(reflect.TypeFor[Without[Sleepless]]())
	require.True(t, ok)
	assert.True(t, without)
	assert.Equal(t, reflect.TypeFor[Sleepless](), typ)

	_, _, ok = getPhantomInfo(reflect.TypeFor[Sleepless]())
	assert.False(t, ok)
}

// clockWriter writes Somnolence like SleepSystem does.
type clockWriter struct {
	Somnolence *Somnolence `slumber:"res,mut"`
}

func (*clockWriter) Run() {}

func TestCheckWriters(t *testing.T) {
	registry := newComponentRegistry()
	analyze := func(typ reflect.Type, stage Stage) *SystemMeta {
		meta, err := analyzeSystem(typ, nil, registry)
		require.NoError(t, err)
		meta.Stage = stage
		return meta
	}

	sleep := analyze(reflect.TypeFor[SleepSystem](), Default)
	slumber := analyze(reflect.TypeFor[SlumberSystem](), After)
	assert.NoError(t, checkWriters([]*SystemMeta{sleep, slumber}))

	other := analyze(reflect.TypeFor[clockWriter](), Default)
	err := checkWriters([]*SystemMeta{sleep, slumber, other})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SleepSystem and clockWriter both write slumber.Somnolence in stage Default")

	other.Stage = Before
	assert.NoError(t, checkWriters([]*SystemMeta{sleep, slumber, other}))
}

func TestBuildRejectsConflictingWriters(t *testing.T) {
	m := testManager(t)
	m.bundles = []*Bundle{
		NewBundle("a").System(&SleepSystem{}, 0, Default),
		NewBundle("b").System(&clockWriter{}, 0, Default),
	}
	assert.Error(t, m.build())
	assert.Empty(t, m.scheduler.dueLoops(time.Now()))

	ok := testManager(t)
	ok.bundles = []*Bundle{NewBundle("slumber").
		System(&MovementSystem{}, 0, Before).
		System(&SleepSystem{}, 0, Default).
		System(&SlumberSystem{}, 0, After)}
	require.NoError(t, ok.build())
	assert.Len(t, ok.scheduler.dueLoops(time.Now()), 3)
}
