package session

import (
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"main/internal/market/enum"
	"main/pkg/conn"
)

type clientRow struct {
	Login      string  `gorm:"column:login;primaryKey"`
	Password   string  `gorm:"column:password"`
	Deposit    int     `gorm:"column:deposit"`
	Payment    int     `gorm:"column:payment"`
	Percentage float64 `gorm:"column:percentage"`
}

func (clientRow) TableName() string { return "clients" }

type subscriptionRow struct {
	Login      string `gorm:"column:login;primaryKey"`
	Code       string `gorm:"column:code;primaryKey"`
	Venue      string `gorm:"column:venue"`
	TradeLimit int    `gorm:"column:trade_limit"`
	Payment    int    `gorm:"column:payment"`
}

func (subscriptionRow) TableName() string { return "subscriptions" }

// Ledger persists client balances and subscriptions to PostgreSQL.
type Ledger struct {
	client *conn.Client
}

// NewLedger opens the database and prepares the schema.
func NewLedger(option conn.Option) (*Ledger, error) {
	client, err := conn.New(option)
	if err != nil {
		return nil, errors.Wrap(err, "open ledger database")
	}

	if err := client.DB().AutoMigrate(&clientRow{}, &subscriptionRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate ledger schema")
	}

	return &Ledger{client: client}, nil
}

// Close releases the connection pool.
func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}

// Hydrate loads every persisted client and its subscriptions into the
// store. Persisted subscriptions start deactivated so delivery resumes
// only when the client asks for it.
func (l *Ledger) Hydrate(store *Store) error {
	var rows []clientRow
	if err := l.client.DB().Find(&rows).Error; err != nil {
		return errors.Wrap(err, "load clients")
	}

	for _, row := range rows {
		c := NewClient(row.Login, row.Password, row.Deposit, row.Payment, row.Percentage)

		var subs []subscriptionRow
		if err := l.client.DB().Where("login = ?", row.Login).Find(&subs).Error; err != nil {
			return errors.Wrap(err, "load subscriptions")
		}
		for _, sub := range subs {
			venue, ok := enum.ParseVenue(sub.Venue)
			if !ok {
				logs.Errorf("skip subscription %s/%s: unknown venue %q", sub.Login, sub.Code, sub.Venue)
				continue
			}
			c.strategies = append(c.strategies, StrategySummary{
				Venue:      venue,
				Code:       sub.Code,
				TradeLimit: sub.TradeLimit,
				Payment:    sub.Payment,
			})
		}

		if err := store.AddClient(c); err != nil {
			return errors.Wrap(err, "hydrate client")
		}
	}
	return nil
}

// Attach registers the ledger as a store listener so every mutation is
// written through. Persistence failures are logged, not propagated;
// the in-memory state stays authoritative for the running process.
func (l *Ledger) Attach(store *Store) {
	store.OnChange(func(ev ChangeEvent) {
		if err := l.record(store, ev); err != nil {
			logs.Errorf("persist %s for %s: %v", eventName(ev.Kind), ev.Login, err)
		}
	})
}

func (l *Ledger) record(store *Store, ev ChangeEvent) error {
	c, ok := store.ByLogin(ev.Login)
	if !ok {
		return errors.New("client vanished before persist")
	}

	switch ev.Kind {
	case EventClientAdded:
		row := clientRow{
			Login:      c.Login,
			Password:   c.Password,
			Deposit:    c.Deposit(),
			Payment:    c.Payment(),
			Percentage: c.Percentage(),
		}
		return l.client.DB().Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error

	case EventDeposit, EventPayment:
		return l.client.DB().Model(&clientRow{}).
			Where("login = ?", c.Login).
			Updates(map[string]any{"deposit": c.Deposit(), "payment": c.Payment()}).Error

	case EventSubscribed:
		sum, found := c.Summary(ev.Code)
		if !found {
			return errors.New("subscription vanished before persist")
		}
		row := subscriptionRow{
			Login:      c.Login,
			Code:       sum.Code,
			Venue:      sum.Venue.String(),
			TradeLimit: sum.TradeLimit,
			Payment:    sum.Payment,
		}
		return l.client.DB().Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return err
			}
			return tx.Model(&clientRow{}).
				Where("login = ?", c.Login).
				Updates(map[string]any{"deposit": c.Deposit(), "payment": c.Payment()}).Error
		})

	case EventUnsubscribed:
		return l.client.DB().Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("login = ? AND code = ?", c.Login, ev.Code).
				Delete(&subscriptionRow{}).Error; err != nil {
				return err
			}
			return tx.Model(&clientRow{}).
				Where("login = ?", c.Login).
				Update("payment", c.Payment()).Error
		})

	case EventActivation:
		// Activation is a live-session toggle, nothing to persist.
		return nil
	}
	return nil
}

func eventName(kind EventKind) string {
	switch kind {
	case EventClientAdded:
		return "client"
	case EventDeposit:
		return "deposit"
	case EventPayment:
		return "payment"
	case EventSubscribed:
		return "subscription"
	case EventUnsubscribed:
		return "unsubscription"
	case EventActivation:
		return "activation"
	}
	return "change"
}
