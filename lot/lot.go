package lot

import (
	"log/slog"

	"github.com/moby/locker"

	"github.com/joshuapare/lotkit/internal/logger"
	"github.com/joshuapare/lotkit/pkg/types"
)

// Lot is the top-level allocator: it owns every floor and the registry of
// parked vehicles.
type Lot struct {
	floors   []*Floor
	reg      *registry
	ids      *locker.Locker // serializes commit/remove per vehicle id
	log      *slog.Logger
	observer Observer
	capacity int

	// beforeCommit, when set, runs between a successful reservation and the
	// registry commit. Tests use it to lose the duplicate-id race on purpose.
	beforeCommit func(types.Vehicle)
}

// New builds a lot with the floors described by opts. All floors start empty.
func New(opts Options) (*Lot, error) {
	sizes, err := opts.sizes()
	if err != nil {
		return nil, err
	}

	l := &Lot{
		floors:   make([]*Floor, len(sizes)),
		reg:      newRegistry(),
		ids:      locker.New(),
		log:      opts.Logger,
		observer: opts.Observer,
	}
	if l.log == nil {
		l.log = logger.L
	}
	if l.observer == nil {
		l.observer = noopObserver{}
	}
	for i, n := range sizes {
		l.floors[i] = newFloor(i, n)
		l.capacity += n
	}

	l.log.Debug("lot created", "floors", len(sizes), "capacity", l.capacity)
	return l, nil
}

// Park places v on the first floor, in floor order, that has a free run of
// v.Kind.Spots() contiguous spots, and returns the assigned spots.
//
// Errors: kind Input for an invalid vehicle, types.ErrAlreadyParked if v.ID
// already holds a placement, types.ErrLotFull if no floor can fit v.
func (l *Lot) Park(v types.Vehicle) (types.Placement, error) {
	p, err := l.park(v)
	l.observer.ObservePark(v.Kind, err)
	return p, err
}

func (l *Lot) park(v types.Vehicle) (types.Placement, error) {
	if err := v.Validate(); err != nil {
		return types.Placement{}, err
	}
	if l.reg.contains(v.ID) {
		return types.Placement{}, alreadyParked(v.ID)
	}

	for _, f := range l.floors {
		spots, ok := f.TryReserve(v)
		if !ok {
			continue
		}

		p := types.Placement{Floor: f.ID(), Spots: spots}
		if err := l.commit(v, p); err != nil {
			// A concurrent Park for the same id won; hand the spots back.
			if rerr := f.Release(v.ID, spots); rerr != nil {
				return types.Placement{}, l.defect("rollback", v.ID, rerr)
			}
			l.log.Debug("park lost duplicate race", "vehicle", v.ID, "floor", p.Floor, "spots", spots)
			return types.Placement{}, err
		}

		l.log.Debug("parked", "vehicle", v.ID, "kind", v.Kind.String(), "floor", p.Floor, "spots", spots)
		return p.Clone(), nil
	}

	return types.Placement{}, types.Errorf(types.ErrKindFull,
		"no space for %s %q: need %d contiguous spots", v.Kind, v.ID, v.Kind.Spots())
}

// commit records p for v unless another Park for v.ID committed first.
func (l *Lot) commit(v types.Vehicle, p types.Placement) error {
	l.ids.Lock(v.ID)
	defer l.ids.Unlock(v.ID) //nolint:errcheck // we hold the lock

	if l.beforeCommit != nil {
		l.beforeCommit(v)
	}
	if !l.reg.insert(v.ID, entry{vehicle: v, placement: p}) {
		return alreadyParked(v.ID)
	}
	return nil
}

// Remove frees every spot held by id.
//
// Errors: types.ErrNotFound if id holds no placement. A kind Inconsistent
// error means the registry and the floors disagree.
func (l *Lot) Remove(id string) error {
	err := l.remove(id)
	l.observer.ObserveRemove(err)
	return err
}

func (l *Lot) remove(id string) error {
	l.ids.Lock(id)
	defer l.ids.Unlock(id) //nolint:errcheck // we hold the lock

	e, ok := l.reg.get(id)
	if !ok {
		return types.Errorf(types.ErrKindNotFound, "vehicle %q not found", id)
	}

	f, ok := l.floor(e.placement.Floor)
	if !ok {
		return l.defect("remove", id, types.Errorf(types.ErrKindInconsistent,
			"registry references floor %d of %d", e.placement.Floor, len(l.floors)))
	}
	if err := f.Release(id, e.placement.Spots); err != nil {
		return l.defect("remove", id, err)
	}
	l.reg.remove(id)

	l.log.Debug("removed", "vehicle", id, "floor", e.placement.Floor, "spots", e.placement.Spots)
	return nil
}

// Locate returns the lowest spot held by id.
func (l *Lot) Locate(id string) (types.Location, bool) {
	e, ok := l.reg.get(id)
	if !ok {
		return types.Location{}, false
	}
	return e.placement.Location(), true
}

// Placement returns every spot held by id.
func (l *Lot) Placement(id string) (types.Placement, bool) {
	e, ok := l.reg.get(id)
	if !ok {
		return types.Placement{}, false
	}
	return e.placement.Clone(), true
}

// Vehicle returns the parked vehicle registered under id.
func (l *Lot) Vehicle(id string) (types.Vehicle, bool) {
	e, ok := l.reg.get(id)
	return e.vehicle, ok
}

// Available returns the free-spot count of every floor, in floor order.
// Each count is a snapshot taken under that floor's lock only.
func (l *Lot) Available() []types.FloorAvailability {
	out := make([]types.FloorAvailability, len(l.floors))
	for i, f := range l.floors {
		out[i] = types.FloorAvailability{
			Floor:     f.ID(),
			Available: f.Available(),
			Capacity:  f.Capacity(),
		}
	}
	return out
}

// IsFull reports whether every floor has zero free spots.
func (l *Lot) IsFull() bool {
	for _, f := range l.floors {
		if f.Available() > 0 {
			return false
		}
	}
	return true
}

// Floors returns the number of floors.
func (l *Lot) Floors() int { return len(l.floors) }

// Capacity returns the total number of spots across all floors.
func (l *Lot) Capacity() int { return l.capacity }

// Parked returns the number of vehicles currently holding a placement.
func (l *Lot) Parked() int { return l.reg.len() }

// Snapshot copies every floor's occupancy followed by the registry. Floors
// are locked one at a time, so the result is only guaranteed consistent
// when no Park or Remove is in flight.
func (l *Lot) Snapshot() Snapshot {
	floors := make([]FloorSnapshot, len(l.floors))
	for i, f := range l.floors {
		floors[i] = f.snapshot()
	}
	return Snapshot{Floors: floors, Placements: l.reg.placements()}
}

func (l *Lot) floor(id int) (*Floor, bool) {
	if id < 0 || id >= len(l.floors) {
		return nil, false
	}
	return l.floors[id], true
}

// defect logs an invariant violation and returns it as an Inconsistent error.
func (l *Lot) defect(op, id string, err error) error {
	l.log.Error("lot invariant violated", "op", op, "vehicle", id, "err", err)
	if types.IsDefect(err) {
		return err
	}
	return &types.Error{Kind: types.ErrKindInconsistent, Msg: op + " " + id, Err: err}
}

func alreadyParked(id string) error {
	return types.Errorf(types.ErrKindAlreadyAllocated, "vehicle %q already parked", id)
}
