package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "hoteldesk/internal/domain/booking"
	domainpolicy "hoteldesk/internal/domain/policy"
	domainpricing "hoteldesk/internal/domain/pricing"
	domainrooms "hoteldesk/internal/domain/rooms"
)

// RoomRepository is the in-memory room store used by default and in tests.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainrooms.RoomID]*domainrooms.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainrooms.RoomID]*domainrooms.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainrooms.RoomID) (*domainrooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, domainrooms.ErrRoomNotFound
	}
	return room, nil
}

func (r *RoomRepository) ByType(ctx context.Context, roomType string) ([]*domainrooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainrooms.Room
	for _, room := range r.items {
		if room.Type == roomType {
			out = append(out, room)
		}
	}
	sortRooms(out)
	return out, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*domainrooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainrooms.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room)
	}
	sortRooms(out)
	return out, nil
}

func (r *RoomRepository) Save(ctx context.Context, room *domainrooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[room.ID] = room
	return nil
}

func sortRooms(list []*domainrooms.Room) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

// MealPlanRepository stores plans keyed by their globally unique code.
type MealPlanRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]*domainpolicy.MealPlan
}

func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{items: make(map[string]*domainpolicy.MealPlan)}
}

func (r *MealPlanRepository) ByCode(ctx context.Context, code string) (*domainpolicy.MealPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.items[code]
	if !ok {
		return nil, domainpolicy.ErrMealPlanNotFound
	}
	return plan, nil
}

func (r *MealPlanRepository) List(ctx context.Context) ([]*domainpolicy.MealPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpolicy.MealPlan, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.items[code])
	}
	return out, nil
}

func (r *MealPlanRepository) Save(ctx context.Context, plan *domainpolicy.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[plan.Code]; !ok {
		r.order = append(r.order, plan.Code)
	}
	r.items[plan.Code] = plan
	return nil
}

func (r *MealPlanRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[code]; !ok {
		return domainpolicy.ErrMealPlanNotFound
	}
	delete(r.items, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// SeasonRepository keeps seasons in creation order; the seasonal resolver's
// first-match-wins rule depends on that order staying deterministic.
type SeasonRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]*domainpolicy.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{items: make(map[string]*domainpolicy.Season)}
}

func (r *SeasonRepository) ByID(ctx context.Context, id string) (*domainpolicy.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	season, ok := r.items[id]
	if !ok {
		return nil, domainpolicy.ErrSeasonNotFound
	}
	return season, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]*domainpolicy.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpolicy.Season, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *SeasonRepository) Save(ctx context.Context, season *domainpolicy.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[season.ID]; !ok {
		r.order = append(r.order, season.ID)
	}
	r.items[season.ID] = season
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainpolicy.ErrSeasonNotFound
	}
	delete(r.items, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ChannelRepository stores the two-level channel hierarchy and the ad-hoc
// pricing rules.
type ChannelRepository struct {
	mu        sync.RWMutex
	main      map[string]*domainpolicy.MainChannel
	mainOrder []string
	sub       map[string]*domainpolicy.SubChannel
	subOrder  []string
	rules     map[string]*domainpolicy.ChannelPricingRule
	ruleOrder []string
}

func NewChannelRepository() *ChannelRepository {
	return &ChannelRepository{
		main:  make(map[string]*domainpolicy.MainChannel),
		sub:   make(map[string]*domainpolicy.SubChannel),
		rules: make(map[string]*domainpolicy.ChannelPricingRule),
	}
}

func (r *ChannelRepository) MainByID(ctx context.Context, id string) (*domainpolicy.MainChannel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.main[id]
	if !ok {
		return nil, domainpolicy.ErrChannelNotFound
	}
	return ch, nil
}

func (r *ChannelRepository) SubByID(ctx context.Context, id string) (*domainpolicy.SubChannel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.sub[id]
	if !ok {
		return nil, domainpolicy.ErrSubChannelNotFound
	}
	return sub, nil
}

func (r *ChannelRepository) ListMain(ctx context.Context) ([]*domainpolicy.MainChannel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpolicy.MainChannel, 0, len(r.mainOrder))
	for _, id := range r.mainOrder {
		out = append(out, r.main[id])
	}
	return out, nil
}

func (r *ChannelRepository) ListSub(ctx context.Context, mainChannelID string) ([]*domainpolicy.SubChannel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpolicy.SubChannel
	for _, id := range r.subOrder {
		sub := r.sub[id]
		if mainChannelID == "" || sub.MainChannelID == mainChannelID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *ChannelRepository) SaveMain(ctx context.Context, ch *domainpolicy.MainChannel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.main[ch.ID]; !ok {
		r.mainOrder = append(r.mainOrder, ch.ID)
	}
	r.main[ch.ID] = ch
	return nil
}

func (r *ChannelRepository) SaveSub(ctx context.Context, sub *domainpolicy.SubChannel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.main[sub.MainChannelID]; !ok {
		return domainpolicy.ErrChannelNotFound
	}
	if _, ok := r.sub[sub.ID]; !ok {
		r.subOrder = append(r.subOrder, sub.ID)
	}
	r.sub[sub.ID] = sub
	return nil
}

// DeleteMain cascades: a sub-channel cannot outlive its main channel.
func (r *ChannelRepository) DeleteMain(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.main[id]; !ok {
		return domainpolicy.ErrChannelNotFound
	}
	delete(r.main, id)
	r.mainOrder = removeID(r.mainOrder, id)
	var keep []string
	for _, sid := range r.subOrder {
		if r.sub[sid].MainChannelID == id {
			delete(r.sub, sid)
			continue
		}
		keep = append(keep, sid)
	}
	r.subOrder = keep
	return nil
}

func (r *ChannelRepository) DeleteSub(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sub[id]; !ok {
		return domainpolicy.ErrSubChannelNotFound
	}
	delete(r.sub, id)
	r.subOrder = removeID(r.subOrder, id)
	return nil
}

func (r *ChannelRepository) ListRules(ctx context.Context) ([]*domainpolicy.ChannelPricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpolicy.ChannelPricingRule, 0, len(r.ruleOrder))
	for _, id := range r.ruleOrder {
		out = append(out, r.rules[id])
	}
	return out, nil
}

// SaveRule enforces the single-active-rule invariant: an incoming active
// rule deactivates every colliding active rule for the same room type and
// channel.
func (r *ChannelRepository) SaveRule(ctx context.Context, rule *domainpolicy.ChannelPricingRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule.Active {
		for _, id := range r.ruleOrder {
			existing := r.rules[id]
			if existing.ID != rule.ID && existing.Active && existing.Collides(rule) {
				existing.Active = false
			}
		}
	}
	if _, ok := r.rules[rule.ID]; !ok {
		r.ruleOrder = append(r.ruleOrder, rule.ID)
	}
	r.rules[rule.ID] = rule
	return nil
}

// BookingRepository stores reservations and hall events.
type BookingRepository struct {
	mu    sync.RWMutex
	order []domainbooking.BookingID
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) ForResource(ctx context.Context, resourceID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, id := range r.order {
		b := r.items[id]
		if b.Occupies(resourceID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		r.order = append(r.order, b.ID)
	}
	r.items[b.ID] = b
	return nil
}

// OverrideRepository is the sparse committed-rate map keyed by the typed
// (stay type, day) cell.
type OverrideRepository struct {
	mu    sync.RWMutex
	items map[domainpricing.OverrideKey]*domainpricing.RateOverride
}

func NewOverrideRepository() *OverrideRepository {
	return &OverrideRepository{items: make(map[domainpricing.OverrideKey]*domainpricing.RateOverride)}
}

func (r *OverrideRepository) Get(ctx context.Context, key domainpricing.OverrideKey) (*domainpricing.RateOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[key], nil
}

func (r *OverrideRepository) List(ctx context.Context) ([]*domainpricing.RateOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainpricing.RateOverride, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.StayType != out[j].Key.StayType {
			return out[i].Key.StayType.Label() < out[j].Key.StayType.Label()
		}
		return out[i].Key.Day < out[j].Key.Day
	})
	return out, nil
}

func (r *OverrideRepository) Put(ctx context.Context, override *domainpricing.RateOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[override.Key] = override
	return nil
}

func removeID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
