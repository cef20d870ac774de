package we

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

// Revision identifies a committed value of a store. Revisions sort in commit order.
type Revision string

const InitialRevision = Revision("00000000000000000000000000")

type RevisionGenerator struct {
	lk      sync.Mutex
	entropy io.Reader
}

func NewRevisionGenerator() *RevisionGenerator {
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &RevisionGenerator{
		entropy: ulid.Monotonic(seed, 0),
	}
}

func (g *RevisionGenerator) NewRevision(at time.Time) Revision {
	g.lk.Lock()
	defer g.lk.Unlock()

	return Revision(ulid.MustNew(ulid.Timestamp(at), g.entropy).String())
}

// CommittedAt is the time encoded in the revision; zero time for InitialRevision.
func (revision Revision) CommittedAt() (time.Time, error) {
	if revision == InitialRevision || revision == "" {
		return time.Time{}, nil
	}

	id, err := ulid.ParseStrict(string(revision))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid revision %q", string(revision))
	}

	return ulid.Time(id.Time()), nil
}

// Timestamp renders CommittedAt, or an empty timestamp when nothing was committed.
func (revision Revision) Timestamp() Timestamp {
	at, err := revision.CommittedAt()
	if err != nil || at.IsZero() {
		return ""
	}

	return TimestampOf(at)
}

func (revision Revision) String() string {
	return string(revision)
}
