package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

func TestIDGeneratorRange(t *testing.T) {
	gen := NewIDGenerator(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		id := gen.Next()
		require.Len(t, id, 6)
		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestIDGeneratorDeterministicWithSource(t *testing.T) {
	a := NewIDGenerator(rand.NewPCG(7, 7))
	b := NewIDGenerator(rand.NewPCG(7, 7))
	assert.Equal(t, a.Next(), b.Next())
	assert.Len(t, NewIDGenerator(nil).Next(), 6)
}

type stubLedger struct {
	taken map[string]bool
	calls int
	err   error
	deny  bool
}

func (l *stubLedger) Reserve(ctx context.Context, id string) (bool, error) {
	l.calls++
	if l.err != nil {
		return false, l.err
	}
	if l.deny || l.taken[id] {
		return false, nil
	}
	if l.taken == nil {
		l.taken = map[string]bool{}
	}
	l.taken[id] = true
	return true, nil
}

func TestIDIssuerRegeneratesOnCollision(t *testing.T) {
	gen := NewIDGenerator(rand.NewPCG(3, 4))
	first := NewIDGenerator(rand.NewPCG(3, 4)).Next()
	ledger := &stubLedger{taken: map[string]bool{first: true}}

	id, err := NewIDIssuer(gen, ledger, 5, nil).Issue(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, id)
	assert.Equal(t, 2, ledger.calls)
}

func TestIDIssuerExhaustion(t *testing.T) {
	ledger := &stubLedger{deny: true}
	_, err := NewIDIssuer(nil, ledger, 3, nil).Issue(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, 3, ledger.calls)
}

func TestIDIssuerLedgerError(t *testing.T) {
	ledger := &stubLedger{err: errors.New("db down")}
	_, err := NewIDIssuer(nil, ledger, 3, nil).Issue(context.Background())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInternal.Code))
}

func TestIDIssuerWithoutLedger(t *testing.T) {
	id, err := NewIDIssuer(nil, nil, 0, nil).Issue(context.Background())
	require.NoError(t, err)
	assert.Len(t, id, 6)
}
