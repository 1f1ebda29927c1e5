package paradigma

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ModelStore {
	t.Helper()
	s, err := OpenModelStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestModelStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	models := Cluster([]*Paradigm{
		paradigmOf(t, present("amare", "am")),
		paradigmOf(t, present("laudare", "laud")),
		paradigmOf(t, []WordForm{
			NewWordForm("puella", "puella", ParseGrammeme("nom|s")),
			NewWordForm("puellae", "puella", ParseGrammeme("gen|s")),
		}),
	}, DefaultThreshold)
	require.NoError(t, s.Save(ctx, models))

	got, err := s.Load(ctx, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range models {
		assertSameModel(t, models[i], got[i])
	}
}

func TestModelStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, []*Model{amoModel(t)}))
	require.NoError(t, s.Save(ctx, nil))
	got, err := s.Load(ctx, DefaultThreshold)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestModelStoreTransducer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.LoadTransducer(ctx)
	require.ErrorIs(t, err, ErrNoTransducer)

	an := buildAnalyzer(t, "amare", "am")
	require.NoError(t, s.SaveTransducer(ctx, an))
	require.NoError(t, s.SaveTransducer(ctx, an))

	data, err := s.LoadTransducer(ctx)
	require.NoError(t, err)
	loaded, err := LoadAnalyzer(data, nil, testConfig())
	require.NoError(t, err)
	assert.Equal(t, an.AnalyzeWord("amat"), loaded.AnalyzeWord("amat"))
}

func TestModelStoreFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models.db")

	s, err := OpenModelStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, []*Model{amoModel(t)}))
	require.NoError(t, s.Close())

	s, err = OpenModelStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "amare", got[0].Name)
}

func TestModelStoreHomographs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	verb := paradigmOf(t, present("edo", "ed"))
	noun := paradigmOf(t, edoNoun())
	models := Cluster([]*Paradigm{verb, noun}, DefaultThreshold)
	require.NoError(t, s.Save(ctx, models))
	got, err := s.Load(ctx, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range models {
		assertSameModel(t, models[i], got[i])
	}

	// Models read from hand-written files may still share a name.
	same := []*Model{
		NewModel("edo", []Morpheme{verb.Stem}, verb.Affixes, DefaultThreshold),
		NewModel("edo", []Morpheme{noun.Stem}, noun.Affixes, DefaultThreshold),
	}
	require.NoError(t, s.Save(ctx, same))
	got, err = s.Load(ctx, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "edo", got[0].Name)
	assert.Equal(t, "edo", got[1].Name)
	assert.Equal(t, verb.Stem.Form, got[0].Stems[0].Form)
	assert.Equal(t, noun.Stem.Form, got[1].Stems[0].Form)
	assert.Equal(t, len(noun.Affixes), got[1].Size())
}
