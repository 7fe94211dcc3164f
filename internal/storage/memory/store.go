// Package memory keeps hotels, room types, bookings and admission locks in
// process memory. It backs STORAGE_DRIVER=memory and the service tests.
//
// Transactions are serialized by a single mutex and are not rolled back on
// error; callers only write after every check has passed.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	bookingserrors "roomledger/internal/bookings/errors"
	bookingsrepository "roomledger/internal/bookings/repository"
	hotelserrors "roomledger/internal/hotels/errors"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/pkg/daterange"
	mongotx "roomledger/pkg/db/mongo"
	"roomledger/pkg/model"
	"roomledger/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	hotels    map[string]*model.Hotel
	roomTypes map[string]*model.RoomType
	bookings  map[string]*model.Booking
	locks     map[string]*model.BookingLock

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		hotels:    map[string]*model.Hotel{},
		roomTypes: map[string]*model.RoomType{},
		bookings:  map[string]*model.Booking{},
		locks:     map[string]*model.BookingLock{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps and lock expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Hotels() hotelsrepository.HotelRepository {
	return &hotelStore{s}
}

func (s *Store) RoomTypes() hotelsrepository.RoomTypeRepository {
	return &roomTypeStore{s}
}

func (s *Store) Bookings() bookingsrepository.BookingRepository {
	return &bookingStore{s}
}

func (s *Store) Locks() bookingsrepository.BookingLockRepository {
	return &lockStore{s}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) bool {
	return primitive.IsValidObjectID(id)
}

type hotelStore struct{ *Store }

func (s *hotelStore) Create(_ context.Context, hotel *model.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hotel.ID = newID()
	hotel.CreatedAt = s.now().Truncate(time.Millisecond)
	cp := *hotel
	s.hotels[hotel.ID] = &cp
	return nil
}

func (s *hotelStore) FindByID(_ context.Context, id string) (*model.Hotel, error) {
	if !validID(id) {
		return nil, hotelserrors.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	hotel, ok := s.hotels[id]
	if !ok {
		return nil, hotelserrors.ErrHotelNotFound
	}
	cp := *hotel
	return &cp, nil
}

func (s *hotelStore) FindAll(_ context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	all := s.sortedHotels(func(*model.Hotel) bool { return true })
	if offset >= int64(len(all)) {
		return []*model.Hotel{}, nil
	}
	end := min(int(offset)+limit, len(all))
	return all[offset:end], nil
}

func (s *hotelStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.hotels)), nil
}

func (s *hotelStore) SearchByLocation(_ context.Context, location string) ([]*model.Hotel, error) {
	needle := sanitizer.TrimAndLower(location)
	return s.sortedHotels(func(h *model.Hotel) bool {
		return strings.Contains(strings.ToLower(h.Location), needle)
	}), nil
}

func (s *hotelStore) sortedHotels(keep func(*model.Hotel) bool) []*model.Hotel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Hotel{}
	for _, h := range s.hotels {
		if keep(h) {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type roomTypeStore struct{ *Store }

func (s *roomTypeStore) Create(_ context.Context, roomType *model.RoomType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomType.ID = newID()
	roomType.CreatedAt = s.now().Truncate(time.Millisecond)
	roomType.InventoryVersion = 0
	cp := *roomType
	s.roomTypes[roomType.ID] = &cp
	return nil
}

func (s *roomTypeStore) FindByID(_ context.Context, id string) (*model.RoomType, error) {
	if !validID(id) {
		return nil, hotelserrors.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.roomTypes[id]
	if !ok {
		return nil, hotelserrors.ErrRoomTypeNotFound
	}
	cp := *rt
	return &cp, nil
}

func (s *roomTypeStore) FindByHotel(_ context.Context, hotelID string) ([]*model.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.RoomType{}
	for _, rt := range s.roomTypes {
		if rt.HotelID == hotelID {
			cp := *rt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price == out[j].Price {
			return out[i].ID < out[j].ID
		}
		return out[i].Price < out[j].Price
	})
	return out, nil
}

func (s *roomTypeStore) BumpInventoryVersion(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.roomTypes[id]
	if !ok {
		return hotelserrors.ErrRoomTypeNotFound
	}
	rt.InventoryVersion++
	return nil
}

type bookingStore struct{ *Store }

func (s *bookingStore) Create(_ context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Truncate(time.Millisecond)
	booking.ID = newID()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *bookingStore) FindByID(_ context.Context, id string) (*model.Booking, error) {
	if !validID(id) {
		return nil, bookingserrors.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *bookingStore) FindByHotel(_ context.Context, hotelID string) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Booking{}
	for _, b := range s.bookings {
		if b.HotelID == hotelID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *bookingStore) CountOverlapping(_ context.Context, roomTypeID string, status model.BookingStatus, dates daterange.Range) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, b := range s.bookings {
		if b.RoomTypeID != roomTypeID || b.Status != status {
			continue
		}
		if daterange.Overlap(b.CheckInDate, b.CheckOutDate, dates.Start, dates.End) {
			n++
		}
	}
	return n, nil
}

func (s *bookingStore) UpdateStatus(_ context.Context, id string, expected, next model.BookingStatus) (*model.Booking, error) {
	if !validID(id) {
		return nil, bookingserrors.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	if b.Status != expected {
		return nil, bookingserrors.ErrStatusConflict
	}
	b.Status = next
	b.UpdatedAt = s.now().Truncate(time.Millisecond)
	cp := *b
	return &cp, nil
}

func (s *bookingStore) ExpireCreatedBefore(_ context.Context, threshold time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Truncate(time.Millisecond)
	var n int64
	for _, b := range s.bookings {
		if b.Status == model.BookingStatusConfirmed && b.CreatedAt.Before(threshold) {
			b.Status = model.BookingStatusExpired
			b.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (s *bookingStore) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

type lockStore struct{ *Store }

func (s *lockStore) Acquire(_ context.Context, lock *model.BookingLock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[lock.ID]; ok && held.ExpiresAt.After(now) {
		return bookingserrors.ErrLockHeld
	}
	lock.CreatedAt = now
	cp := *lock
	s.locks[lock.ID] = &cp
	return nil
}

func (s *lockStore) Release(_ context.Context, lock *model.BookingLock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if held, ok := s.locks[lock.ID]; ok && held.Owner == lock.Owner {
		delete(s.locks, lock.ID)
	}
	return nil
}
