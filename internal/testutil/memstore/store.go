package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	acctdomain "auction-registration/internal/domain/account"
	aucdomain "auction-registration/internal/domain/auction"
	paydomain "auction-registration/internal/domain/payment"
	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
)

// Store is an in-memory stand-in for the MySQL schema, used by lifecycle
// tests that drive several usecases against shared state. One mutex plays the
// role of the row lock: WithinTx and WithinRegistrationTx hold it for the
// whole body, so read-decide-write sequences are serialized exactly like
// under SELECT ... FOR UPDATE. There is no rollback; tests only commit.
type Store struct {
	mu sync.Mutex

	registrations map[string]*regdomain.Registration // by public id
	pairIndex     map[string]string                  // auction_id/user_id -> public id
	payments      map[string]*paydomain.DepositPayment
	auctions      map[string]*aucdomain.Auction
	users         map[string]*acctdomain.User

	nextRowID uint64
}

var _ uow.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		registrations: map[string]*regdomain.Registration{},
		pairIndex:     map[string]string{},
		payments:      map[string]*paydomain.DepositPayment{},
		auctions:      map[string]*aucdomain.Auction{},
		users:         map[string]*acctdomain.User{},
	}
}

func pairKey(auctionID, userID string) string { return auctionID + "/" + userID }

func (s *Store) SeedAuction(a aucdomain.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRowID++
	a.ID = s.nextRowID
	s.auctions[a.AuctionID] = &a
}

func (s *Store) SeedUser(u acctdomain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRowID++
	u.ID = s.nextRowID
	s.users[u.UserID] = &u
}

// Registration returns a copy of the stored row, for assertions.
func (s *Store) Registration(registrationID string) (*regdomain.Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[registrationID]
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

// Payment returns a copy of the stored payment row, for assertions.
func (s *Store) Payment(paymentID string) (*paydomain.DepositPayment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Registrations: &registrationRepo{s: s},
		Payments:      &paymentRepo{s: s},
		Auctions:      &auctionRepo{s: s},
		Users:         &accountRepo{s: s},
	}
}

func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.repos())
}

func (s *Store) WithinRegistrationTx(ctx context.Context, registrationID string, fn func(r uow.Repos, reg *regdomain.Registration) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repos()
	reg, err := r.Registrations.GetByRegistrationIDForUpdate(ctx, registrationID)
	if err != nil {
		return err
	}
	return fn(r, reg)
}

// ---- repositories (no locking; only reachable while the store mutex is held) ----

type registrationRepo struct{ s *Store }

var _ regdomain.Repository = (*registrationRepo)(nil)

func (r *registrationRepo) Create(_ context.Context, reg *regdomain.Registration) error {
	pk := pairKey(reg.AuctionID, reg.UserID)
	if _, exists := r.s.pairIndex[pk]; exists {
		return fmt.Errorf("%w: registration exists for this auction and user", regdomain.ErrConflict)
	}
	if _, exists := r.s.registrations[reg.RegistrationID]; exists {
		return fmt.Errorf("%w: duplicate registration id", regdomain.ErrConflict)
	}
	r.s.nextRowID++
	reg.ID = r.s.nextRowID
	cp := *reg
	r.s.registrations[reg.RegistrationID] = &cp
	r.s.pairIndex[pk] = reg.RegistrationID
	return nil
}

func (r *registrationRepo) Save(_ context.Context, reg *regdomain.Registration) error {
	if _, ok := r.s.registrations[reg.RegistrationID]; !ok {
		return regdomain.ErrNotFound
	}
	cp := *reg
	r.s.registrations[reg.RegistrationID] = &cp
	return nil
}

func (r *registrationRepo) get(registrationID string) (*regdomain.Registration, error) {
	reg, ok := r.s.registrations[registrationID]
	if !ok {
		return nil, regdomain.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *registrationRepo) GetByPair(_ context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	id, ok := r.s.pairIndex[pairKey(auctionID, userID)]
	if !ok {
		return nil, regdomain.ErrNotFound
	}
	return r.get(id)
}

func (r *registrationRepo) GetByRegistrationID(_ context.Context, registrationID string) (*regdomain.Registration, error) {
	return r.get(registrationID)
}

func (r *registrationRepo) GetByPairForUpdate(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	return r.GetByPair(ctx, auctionID, userID)
}

func (r *registrationRepo) GetByRegistrationIDForUpdate(_ context.Context, registrationID string) (*regdomain.Registration, error) {
	return r.get(registrationID)
}

func (r *registrationRepo) List(_ context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error) {
	var rows []regdomain.Registration
	for _, reg := range r.s.registrations {
		if f.AuctionID != "" && reg.AuctionID != f.AuctionID {
			continue
		}
		if !f.Bucket.Matches(regdomain.ProjectState(reg)) {
			continue
		}
		rows = append(rows, *reg)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].RegisteredAt.Equal(rows[j].RegisteredAt) {
			return rows[i].RegisteredAt.After(rows[j].RegisteredAt)
		}
		return rows[i].ID > rows[j].ID
	})
	total := int64(len(rows))
	start := (f.Page - 1) * f.PageSize
	if start >= len(rows) {
		return nil, total, nil
	}
	end := start + f.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

func (r *registrationRepo) ListDepositOverdue(_ context.Context, cutoff time.Time, limit int) ([]string, error) {
	var ids []string
	for id, reg := range r.s.registrations {
		if reg.DocumentsVerifiedAt == nil || !reg.DocumentsVerifiedAt.Before(cutoff) {
			continue
		}
		if reg.DepositPaidAt != nil || reg.WithdrawnAt != nil || reg.ConfirmedAt != nil || reg.CheckedInAt != nil {
			continue
		}
		ids = append(ids, id)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type paymentRepo struct{ s *Store }

var _ paydomain.Repository = (*paymentRepo)(nil)

func (r *paymentRepo) Create(_ context.Context, p *paydomain.DepositPayment) error {
	if _, exists := r.s.payments[p.PaymentID]; exists {
		return fmt.Errorf("%w: duplicate payment id", regdomain.ErrConflict)
	}
	r.s.nextRowID++
	p.ID = r.s.nextRowID
	cp := *p
	r.s.payments[p.PaymentID] = &cp
	return nil
}

func (r *paymentRepo) Save(_ context.Context, p *paydomain.DepositPayment) error {
	if _, ok := r.s.payments[p.PaymentID]; !ok {
		return regdomain.ErrNotFound
	}
	cp := *p
	r.s.payments[p.PaymentID] = &cp
	return nil
}

func (r *paymentRepo) GetByPaymentID(_ context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	p, ok := r.s.payments[paymentID]
	if !ok {
		return nil, regdomain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	return r.GetByPaymentID(ctx, paymentID)
}

type auctionRepo struct{ s *Store }

var _ aucdomain.Repository = (*auctionRepo)(nil)

func (r *auctionRepo) GetByAuctionID(_ context.Context, auctionID string) (*aucdomain.Auction, error) {
	a, ok := r.s.auctions[auctionID]
	if !ok {
		return nil, regdomain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

type accountRepo struct{ s *Store }

var _ acctdomain.Repository = (*accountRepo)(nil)

func (r *accountRepo) GetByUserID(_ context.Context, userID string) (*acctdomain.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return nil, regdomain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *accountRepo) ListStaff(_ context.Context) ([]acctdomain.User, error) {
	var out []acctdomain.User
	for _, u := range r.s.users {
		if !u.IsDeleted && u.Staff() {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
