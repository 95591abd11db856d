package corpus

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/concolic-labs/pathfinder/logging"
	"github.com/concolic-labs/pathfinder/utils"
	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// DatabaseFileName is the name of the corpus database inside the corpus directory.
const DatabaseFileName = "corpus.db"

// Entry describes a generated test input together with the path it drives the program along.
type Entry struct {
	// PathHash is the fingerprint of Path and the key of the entry
	PathHash string `cbor:"pathHash"`

	// Path lists the blocks visited under Input
	Path []string `cbor:"path"`

	// Input is the assignment of input variables
	Input map[string]int64 `cbor:"input"`

	// RunID identifies the exploration run that discovered the entry
	RunID string `cbor:"runId"`

	// Iteration is the driver iteration the entry was discovered in
	Iteration int `cbor:"iteration"`

	// DiscoveredAt is the unix timestamp of the discovery
	DiscoveredAt int64 `cbor:"discoveredAt"`
}

// Corpus persists generated entries in a bbolt database, with one bucket per program. Entries are unique per path.
type Corpus struct {
	// db is the underlying database
	db *bbolt.DB

	// logger describes the Corpus's log object that can be used to log important events
	logger *logging.Logger

	// closeOnce guards against closing the database twice
	closeOnce sync.Once
}

// Open opens, or creates, the corpus database in the given directory. A nil logger selects a sub-logger of
// logging.GlobalLogger.
func Open(directory string, logger *logging.Logger) (*Corpus, error) {
	if err := utils.MakeDirectory(directory); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.GlobalLogger.NewSubLogger("module", logging.CORPUS_SERVICE)
	}

	db, err := bbolt.Open(filepath.Join(directory, DatabaseFileName), 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open corpus in %s", directory)
	}
	return &Corpus{db: db, logger: logger}, nil
}

// Close closes the underlying database. Closing more than once is a no-op.
func (c *Corpus) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = errors.WithStack(c.db.Close())
	})
	return err
}

// Add stores an entry in the bucket of the given program. It returns false without modifying the corpus if an entry
// for the same path already exists.
func (c *Corpus) Add(programID string, entry Entry) (bool, error) {
	if programID == "" {
		return false, errors.New("program identifier cannot be empty")
	}
	if entry.PathHash == "" {
		return false, errors.New("entry path hash cannot be empty")
	}
	data, err := cbor.Marshal(entry, cbor.EncOptions{})
	if err != nil {
		return false, errors.WithStack(err)
	}

	added := false
	err = c.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(programID))
		if err != nil {
			return err
		}
		key := []byte(entry.PathHash)
		if bucket.Get(key) != nil {
			return nil
		}
		added = true
		return bucket.Put(key, data)
	})
	if err != nil {
		return false, errors.WithStack(err)
	}

	if added {
		c.logger.Debug("Stored corpus entry ", entry.PathHash, " for ", programID)
	}
	return added, nil
}

// Get returns the entry of the given program for a path hash. The boolean is false if no such entry exists.
func (c *Corpus) Get(programID string, pathHash string) (*Entry, bool, error) {
	var entry *Entry
	err := c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(programID))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(pathHash))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return cbor.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return entry, entry != nil, nil
}

// Entries returns every entry of the given program, ordered by path hash.
func (c *Corpus) Entries(programID string) ([]Entry, error) {
	entries := make([]Entry, 0)
	err := c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(programID))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := cbor.Unmarshal(v, &entry); err != nil {
				return errors.Wrapf(err, "corrupt corpus entry %s", k)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return entries, nil
}

// Programs returns the identifiers of every program with stored entries, in ascending order.
func (c *Corpus) Programs() ([]string, error) {
	programs := make([]string, 0)
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			programs = append(programs, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return programs, nil
}
