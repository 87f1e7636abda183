package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sweetshop/internal/common"
	"github.com/dmitrijs2005/sweetshop/internal/dbx"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// Record is the persisted half of an authenticated session.
type Record struct {
	Identity   models.Identity
	Credential string
}

// LoadStatus classifies what Store.Load found.
type LoadStatus int

const (
	// LoadEmpty: nothing usable was stored (or the store could not be read).
	LoadEmpty LoadStatus = iota
	// LoadFound: both entries are present and valid.
	LoadFound
	// LoadCorrupt: one entry is missing or the identity does not decode
	// into a complete account.
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadFound:
		return "found"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "empty"
	}
}

// Store keeps the identity and the credential across restarts.
//
// Load never fails; everything that is not a valid pair is reported as
// LoadEmpty or LoadCorrupt. Save, SaveIdentity and Clear are best effort:
// the session logs their errors and carries on.
type Store interface {
	Load(ctx context.Context) (Record, LoadStatus)
	Save(ctx context.Context, identity models.Identity, credential string) error
	SaveIdentity(ctx context.Context, identity models.Identity) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the two entries in the metadata table under the keys
// "token" and "user".
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log}
}

func (s *SQLiteStore) Load(ctx context.Context) (Record, LoadStatus) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		s.log.Warn(ctx, "reading stored credential failed", "error", err)
		return Record{}, LoadEmpty
	}
	user, err := repo.Get(ctx, common.UserMetadataKey)
	if err != nil {
		s.log.Warn(ctx, "reading stored identity failed", "error", err)
		return Record{}, LoadEmpty
	}

	switch {
	case token == nil && user == nil:
		return Record{}, LoadEmpty
	case len(token) == 0 || len(user) == 0:
		return Record{}, LoadCorrupt
	}

	var identity *models.Identity
	if err := json.Unmarshal(user, &identity); err != nil {
		return Record{}, LoadCorrupt
	}
	if identity == nil || !identity.Complete() {
		return Record{}, LoadCorrupt
	}
	return Record{Identity: *identity, Credential: string(token)}, LoadFound
}

func (s *SQLiteStore) Save(ctx context.Context, identity models.Identity, credential string) error {
	user, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(credential)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserMetadataKey, user)
	})
}

func (s *SQLiteStore) SaveIdentity(ctx context.Context, identity models.Identity) error {
	user, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return metadata.NewSQLiteRepository(s.db).Set(ctx, common.UserMetadataKey, user)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenMetadataKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UserMetadataKey)
	})
}
