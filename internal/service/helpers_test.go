package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
)

type recordingPublisher struct {
	events []queue.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ReservationEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

type fixture struct {
	db           *memDB
	pub          *recordingPublisher
	catalog      *CatalogService
	identity     *IdentityService
	reservations *ReservationLedger
	payments     *PaymentLedger
	booking      *BookingWorkflow
	reports      *ReportingService

	guest    auth.Session
	employee auth.Session
	admin    auth.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	pub := &recordingPublisher{}
	log := zaptest.NewLogger(t)
	m := metrics.New()

	f := &fixture{
		db:      db,
		pub:     pub,
		catalog: NewCatalogService(db, log, m),
		identity: NewIdentityService(db, IdentityConfig{
			JWTSecret:  "test-secret",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			BcryptCost: 4,
		}, log),
		reservations: NewReservationLedger(db, pub, log, m),
		payments:     NewPaymentLedger(db, log, m),
		booking:      NewBookingWorkflow(db, pub, log, m),
		reports:      NewReportingService(db),
	}
	g := db.addAccount("alice", model.RoleGuest)
	e := db.addAccount("eve", model.RoleEmployee)
	a := db.addAccount("root", model.RoleAdmin)
	f.guest = auth.Session{AccountID: g.ID, Username: g.Username, Role: g.Role}
	f.employee = auth.Session{AccountID: e.ID, Username: e.Username, Role: e.Role}
	f.admin = auth.Session{AccountID: a.ID, Username: a.Username, Role: a.Role}
	return f
}

func date(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
