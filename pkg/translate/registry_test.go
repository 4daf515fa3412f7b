package translate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/pkg/config"
	"github.com/yaklabco/markconv/pkg/source"
	"github.com/yaklabco/markconv/pkg/translate"
)

type upperTranslator struct{}

func (upperTranslator) Dialect() translate.Dialect { return "test-upper" }

func (upperTranslator) Translate(_ context.Context, doc *source.Document) ([]byte, error) {
	out := []byte(doc.String())
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return out, nil
}

func newTestRegistry() *translate.Registry {
	reg := translate.NewRegistry()
	reg.Register(translate.Registration{
		Dialect:     "test-upper",
		Command:     "upper",
		Description: "uppercase",
		Factory: func(*config.Config) (translate.Translator, error) {
			return upperTranslator{}, nil
		},
	})
	reg.Register(translate.Registration{
		Dialect: "a-first",
		Factory: func(*config.Config) (translate.Translator, error) {
			return nil, errors.New("not built")
		},
	})
	return reg
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()

	byDialect, ok := reg.Resolve("test-upper")
	require.True(t, ok)
	assert.Equal(t, "upper", byDialect.Command)

	byCommand, ok := reg.Resolve("upper")
	require.True(t, ok)
	assert.Equal(t, translate.Dialect("test-upper"), byCommand.Dialect)

	_, ok = reg.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistryNew(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()

	tr, err := reg.New("upper", nil)
	require.NoError(t, err)

	out, err := tr.Translate(context.Background(), source.FromString("x", "abc"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", string(out))

	_, err = reg.New("nope", nil)
	require.ErrorIs(t, err, translate.ErrUnknownDialect)
}

func TestRegistrationsSorted(t *testing.T) {
	t.Parallel()

	regs := newTestRegistry().Registrations()
	require.Len(t, regs, 2)
	assert.Equal(t, translate.Dialect("a-first"), regs[0].Dialect)
	assert.Equal(t, translate.Dialect("test-upper"), regs[1].Dialect)
}

func TestCheckContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, translate.CheckContext(ctx, translate.DialectGeoGebraAsy))

	cancel()
	err := translate.CheckContext(ctx, translate.DialectGeoGebraAsy)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "ggb-asy")
}
