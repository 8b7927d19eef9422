package registry

import (
	"sync"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/market"
	"main/internal/market/enum"
)

// Rename describes an instrument identity change caused by expiration
// rollover. Consumers resubscribe the instrument under the new symbol.
type Rename struct {
	Instrument *market.Instrument
	OldID      string
	NewID      string
}

// Registry owns the authoritative instrument set for every venue and
// drives the daily expiration check for futures categories.
type Registry struct {
	mu          sync.RWMutex
	instruments []*market.Instrument
	onRename    []func(Rename)
	logging     bool
}

// New creates an empty registry.
func New(logging bool) *Registry {
	return &Registry{logging: logging}
}

// Add registers an instrument built from its parts and assigns the
// current expiration suffix when the category rolls over.
func (r *Registry) Add(venue enum.Venue, category enum.Category, base string) *market.Instrument {
	inst := market.NewInstrument(venue, category, market.Name{Base: base}, r.logging)
	if category.IsExpiring() && venue != enum.VenueTerminal {
		if suffix := expirationSuffix(venue, category, base, time.Now().UTC()); suffix != "" {
			inst.SetExpiration(suffix)
		}
	}

	r.mu.Lock()
	r.instruments = append(r.instruments, inst)
	r.mu.Unlock()
	return inst
}

// Ensure returns the instrument for the venue/category/symbol, creating
// it when the terminal bridge reports one the registry has not seen.
func (r *Registry) Ensure(venue enum.Venue, category enum.Category, id string) *market.Instrument {
	if inst := r.Find(venue, category, id); inst != nil {
		return inst
	}
	return r.Add(venue, category, id)
}

// Find returns the instrument matching the full market symbol, nil when
// absent.
func (r *Registry) Find(venue enum.Venue, category enum.Category, id string) *market.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inst := range r.instruments {
		if inst.Venue == venue && inst.Category == category && inst.Name().ID() == id {
			return inst
		}
	}
	return nil
}

// FindByBase returns the expiring instrument with the given base symbol,
// regardless of the suffix currently assigned.
func (r *Registry) FindByBase(venue enum.Venue, category enum.Category, base string) *market.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inst := range r.instruments {
		if inst.Venue == venue && inst.Category == category && inst.Name().Base == base {
			return inst
		}
	}
	return nil
}

// Instruments returns a copy of the instrument list.
func (r *Registry) Instruments() []*market.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*market.Instrument, len(r.instruments))
	copy(out, r.instruments)
	return out
}

// ByVenue returns the instruments belonging to one venue.
func (r *Registry) ByVenue(venue enum.Venue) []*market.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*market.Instrument
	for _, inst := range r.instruments {
		if inst.Venue == venue {
			out = append(out, inst)
		}
	}
	return out
}

// OnRename registers a listener for rollover identity changes.
func (r *Registry) OnRename(fn func(Rename)) {
	r.mu.Lock()
	r.onRename = append(r.onRename, fn)
	r.mu.Unlock()
}

// Deactivate flags every instrument of the venue inactive after a feed
// disconnect.
func (r *Registry) Deactivate(venue enum.Venue) {
	for _, inst := range r.ByVenue(venue) {
		inst.SetActive(false)
	}
}

// RollExpirations recomputes the standing expiration at ref and updates
// the suffix of every futures instrument whose encoding changed. The
// call is idempotent: an unchanged suffix mutates nothing and emits no
// rename.
func (r *Registry) RollExpirations(ref time.Time) []Rename {
	r.mu.RLock()
	instruments := make([]*market.Instrument, len(r.instruments))
	copy(instruments, r.instruments)
	listeners := make([]func(Rename), len(r.onRename))
	copy(listeners, r.onRename)
	r.mu.RUnlock()

	var renames []Rename
	for _, inst := range instruments {
		if !inst.Category.IsExpiring() || inst.Venue == enum.VenueTerminal {
			continue
		}
		name := inst.Name()
		suffix := expirationSuffix(inst.Venue, inst.Category, name.Base, ref)
		if suffix == "" {
			continue
		}
		oldID := name.ID()
		if inst.SetExpiration(suffix) {
			rename := Rename{Instrument: inst, OldID: oldID, NewID: inst.ID()}
			renames = append(renames, rename)
			logs.Infof("rollover %s %s -> %s", inst.Venue, rename.OldID, rename.NewID)
			for _, fn := range listeners {
				fn(rename)
			}
		}
	}
	return renames
}

// expirationSuffix encodes the standing expiration in the venue's symbol
// convention. Binance only qualifies bases ending in an underscore; the
// other bases of its futures categories are perpetuals.
func expirationSuffix(venue enum.Venue, category enum.Category, base string, ref time.Time) string {
	expiration := QuarterExpiration(ref)
	switch venue {
	case enum.VenueOkx:
		if category == enum.CategoryFutures {
			return DateSuffix(expiration)
		}
	case enum.VenueBybit:
		if category == enum.CategoryInverseFutures {
			return BybitCode(expiration)
		}
	case enum.VenueBinance:
		if category == enum.CategoryUsdFutures || category == enum.CategoryCoinFutures {
			if len(base) > 0 && base[len(base)-1] == '_' {
				return DateSuffix(expiration)
			}
		}
	}
	return ""
}
