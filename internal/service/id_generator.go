package service

import (
	"context"
	"math/rand/v2"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

const (
	minApplicationID = 100000
	maxApplicationID = 999999
)

// IDGenerator issues six-digit application identifiers from a uniform source.
// It does not check for collisions on its own.
type IDGenerator struct {
	rng *rand.Rand
}

// NewIDGenerator builds a generator. A nil source uses the runtime's seeded generator.
func NewIDGenerator(src rand.Source) *IDGenerator {
	if src == nil {
		return &IDGenerator{}
	}
	return &IDGenerator{rng: rand.New(src)}
}

// Next returns a value in [100000, 999999].
func (g *IDGenerator) Next() string {
	span := maxApplicationID - minApplicationID + 1
	var n int
	if g.rng == nil {
		n = rand.IntN(span)
	} else {
		n = g.rng.IntN(span)
	}
	return strconv.Itoa(minApplicationID + n)
}

type idLedger interface {
	Reserve(ctx context.Context, id string) (bool, error)
}

// IDIssuer pairs the generator with an optional ledger that rejects previously issued IDs.
type IDIssuer struct {
	gen         *IDGenerator
	ledger      idLedger
	maxAttempts int
	logger      *zap.Logger
}

// NewIDIssuer constructs an issuer. A nil ledger issues unchecked IDs.
func NewIDIssuer(gen *IDGenerator, ledger idLedger, maxAttempts int, logger *zap.Logger) *IDIssuer {
	if gen == nil {
		gen = NewIDGenerator(nil)
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IDIssuer{gen: gen, ledger: ledger, maxAttempts: maxAttempts, logger: logger}
}

// Issue returns a fresh identifier, regenerating on ledger collisions.
func (i *IDIssuer) Issue(ctx context.Context) (string, error) {
	if i.ledger == nil {
		return i.gen.Next(), nil
	}
	for attempt := 1; attempt <= i.maxAttempts; attempt++ {
		id := i.gen.Next()
		ok, err := i.ledger.Reserve(ctx, id)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reserve application id")
		}
		if ok {
			return id, nil
		}
		i.logger.Warn("application id collision", zap.String("application_id", id), zap.Int("attempt", attempt))
	}
	return "", appErrors.Clone(appErrors.ErrConflict, "could not allocate a unique application id")
}
