package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories. Each method holds the lock for the whole operation,
// which gives the same atomicity as the single-document Mongo updates.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *memUserRepo) add(u models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	stored := u
	r.users[u.ID] = &stored
	out := stored
	return &out
}

func (r *memUserRepo) get(id primitive.ObjectID) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	out := *u
	return &out
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(user.Email) || u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u := r.get(id); u != nil {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == strings.ToLower(email) })
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) SetPointsBalance(_ context.Context, id primitive.ObjectID, balance int, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.PointsVersion >= version {
		return nil
	}
	u.PointsBalance = balance
	u.PointsVersion = version
	return nil
}

func (r *memUserRepo) SetPointFlags(_ context.Context, id primitive.ObjectID, isTrial, hasUnlimitedPoints *bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if isTrial != nil {
		u.IsTrial = *isTrial
	}
	if hasUnlimitedPoints != nil {
		u.HasUnlimitedPoints = *hasUnlimitedPoints
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) MarkVerified(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			u.IsVerified = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memPointRepo struct {
	mu     sync.Mutex
	points map[primitive.ObjectID]*models.Point
}

func newMemPointRepo() *memPointRepo {
	return &memPointRepo{points: make(map[primitive.ObjectID]*models.Point)}
}

func (r *memPointRepo) findOrCreateLocked(userID primitive.ObjectID) *models.Point {
	p, ok := r.points[userID]
	if !ok {
		p = &models.Point{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: time.Now()}
		r.points[userID] = p
	}
	return p
}

func (r *memPointRepo) FindOrCreate(_ context.Context, userID primitive.ObjectID) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *r.findOrCreateLocked(userID)
	return &out, nil
}

func (r *memPointRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *memPointRepo) Debit(_ context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[userID]
	if !ok || p.Balance < amount {
		return nil, repositories.ErrInsufficientBalance
	}
	p.Balance -= amount
	p.TotalUsed += amount
	p.Version++
	out := *p
	return &out, nil
}

func (r *memPointRepo) ReverseDebit(_ context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Balance += amount
	p.TotalUsed -= amount
	p.Version++
	out := *p
	return &out, nil
}

func (r *memPointRepo) Credit(_ context.Context, userID primitive.ObjectID, amount int, kind models.TransactionType) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.findOrCreateLocked(userID)
	p.Balance += amount
	if kind == models.TransactionTypeRefund {
		p.TotalRefunded += amount
	} else {
		p.TotalPurchased += amount
	}
	p.Version++
	out := *p
	return &out, nil
}

func (r *memPointRepo) ReversePurchase(_ context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[userID]
	if !ok || p.Balance < amount {
		return nil, repositories.ErrInsufficientBalance
	}
	p.Balance -= amount
	p.TotalPurchased -= amount
	p.Version++
	out := *p
	return &out, nil
}

func (r *memPointRepo) FindAll(_ context.Context) ([]*models.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Point, 0, len(r.points))
	for _, p := range r.points {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPointRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.points, userID)
	return nil
}

func (r *memPointRepo) balance(userID primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.points[userID]; ok {
		return p.Balance
	}
	return 0
}

type memTxRepo struct {
	mu        sync.Mutex
	txs       []*models.PointTransaction
	createErr error
}

func newMemTxRepo() *memTxRepo {
	return &memTxRepo{}
}

func (r *memTxRepo) Create(_ context.Context, tx *models.PointTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if tx.PaymentReference != "" {
		for _, existing := range r.txs {
			if existing.PaymentReference == tx.PaymentReference {
				return repositories.ErrDuplicate
			}
		}
	}
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	stored := *tx
	r.txs = append(r.txs, &stored)
	return nil
}

func (r *memTxRepo) FindByPaymentReference(_ context.Context, reference string) (*models.PointTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.PaymentReference == reference {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// newestFirst returns copies of the user's transactions matching keep, newest first
func (r *memTxRepo) newestFirst(userID primitive.ObjectID, keep func(*models.PointTransaction) bool) []*models.PointTransaction {
	var out []*models.PointTransaction
	for i := len(r.txs) - 1; i >= 0; i-- {
		tx := r.txs[i]
		if tx.UserID == userID && (keep == nil || keep(tx)) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out
}

func (r *memTxRepo) FindByUserID(_ context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) ([]*models.PointTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.newestFirst(userID, func(tx *models.PointTransaction) bool {
		return txType == "" || tx.Type == txType
	})
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *memTxRepo) FindRecent(_ context.Context, userID primitive.ObjectID, n int) ([]*models.PointTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.newestFirst(userID, nil)
	if len(all) > n {
		all = all[:n]
	}
	if all == nil {
		all = []*models.PointTransaction{}
	}
	return all, nil
}

func (r *memTxRepo) FindRefundableDeduction(_ context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matches := r.newestFirst(userID, func(tx *models.PointTransaction) bool {
		return tx.Type == models.TransactionTypeDeduction &&
			tx.ListingID != nil && *tx.ListingID == listingID &&
			tx.RefundedByTransactionID == nil
	})
	if len(matches) == 0 {
		return nil, repositories.ErrNotFound
	}
	return matches[0], nil
}

func (r *memTxRepo) MarkRefunded(_ context.Context, deductionID, refundID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.ID == deductionID && tx.Type == models.TransactionTypeDeduction && tx.RefundedByTransactionID == nil {
			id := refundID
			tx.RefundedByTransactionID = &id
			return nil
		}
	}
	return repositories.ErrAlreadyRefunded
}

func (r *memTxRepo) UnmarkRefunded(_ context.Context, deductionID, refundID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.ID == deductionID && tx.RefundedByTransactionID != nil && *tx.RefundedByTransactionID == refundID {
			tx.RefundedByTransactionID = nil
		}
	}
	return nil
}

func (r *memTxRepo) Totals(_ context.Context, userID primitive.ObjectID) (*models.TransactionTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := &models.TransactionTotals{}
	for _, tx := range r.txs {
		if tx.UserID != userID {
			continue
		}
		switch tx.Type {
		case models.TransactionTypePurchase:
			totals.Purchased += tx.Amount
		case models.TransactionTypeDeduction:
			totals.Used += tx.Amount
		case models.TransactionTypeRefund:
			totals.Refunded += tx.Amount
		}
	}
	return totals, nil
}

func (r *memTxRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.txs[:0]
	for _, tx := range r.txs {
		if tx.UserID != userID {
			kept = append(kept, tx)
		}
	}
	r.txs = kept
	return nil
}

func (r *memTxRepo) all(userID primitive.ObjectID) []*models.PointTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newestFirst(userID, nil)
}

func (r *memTxRepo) setCreateErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
}

type memListingRepo struct {
	mu        sync.Mutex
	listings  map[primitive.ObjectID]*models.Listing
	createErr error
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[primitive.ObjectID]*models.Listing)}
}

func (r *memListingRepo) Create(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *memListingRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *l
	return &out, nil
}

func (r *memListingRepo) FindAll(_ context.Context, filter models.ListingFilter, page, limit int) ([]*models.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Listing
	for _, l := range r.listings {
		if filter.OwnerID != nil && l.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.PropertyType != "" && l.PropertyType != filter.PropertyType {
			continue
		}
		if filter.City != "" && l.City != filter.City {
			continue
		}
		cp := *l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *memListingRepo) Update(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *memListingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *memListingRepo) DeleteByOwnerID(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, l := range r.listings {
		if l.OwnerID == ownerID {
			delete(r.listings, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memListingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listings)
}

type memOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{codes: make(map[string]string)}
}

func (s *memOTPStore) Save(_ context.Context, key, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key] = code
	return nil
}

func (s *memOTPStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[key]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return code, nil
}

func (s *memOTPStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, key)
	return nil
}

var (
	_ repositories.UserRepository             = (*memUserRepo)(nil)
	_ repositories.PointRepository            = (*memPointRepo)(nil)
	_ repositories.PointTransactionRepository = (*memTxRepo)(nil)
	_ repositories.ListingRepository          = (*memListingRepo)(nil)
	_ repositories.OTPStore                   = (*memOTPStore)(nil)
)
