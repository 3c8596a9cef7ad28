package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the per-entity repositories behind one transactional
// boundary. Transaction yields a Store whose repositories share a single
// database transaction; either every write inside the closure commits or
// none does.
type Store interface {
	Contests() ContestRepository
	Submissions() SubmissionRepository
	Users() UserRepository
	Judges() JudgeRepository
	Votes() VoteRepository
	Evaluations() EvaluationRepository
	WritingRequests() WritingRequestRepository
	Ledger() LedgerRepository

	Transaction(ctx context.Context, fn func(Store) error) error
}

// NewStore constructs a gorm-backed store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Contests() ContestRepository  { return &contestRepository{db: s.db} }
func (s *gormStore) Submissions() SubmissionRepository {
	return &submissionRepository{db: s.db}
}
func (s *gormStore) Users() UserRepository   { return &userRepository{db: s.db} }
func (s *gormStore) Judges() JudgeRepository { return &judgeRepository{db: s.db} }
func (s *gormStore) Votes() VoteRepository   { return &voteRepository{db: s.db} }
func (s *gormStore) Evaluations() EvaluationRepository {
	return &evaluationRepository{db: s.db}
}
func (s *gormStore) WritingRequests() WritingRequestRepository {
	return &writingRequestRepository{db: s.db}
}
func (s *gormStore) Ledger() LedgerRepository { return &ledgerRepository{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
